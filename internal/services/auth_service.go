package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"unimart/internal/domain"
	"unimart/internal/repos"
	"unimart/internal/validate"
)

// IdentityProvider turns credentials into a session identity.
type IdentityProvider interface {
	Authenticate(c domain.Credentials) (domain.Session, error)
	Register(in domain.SignupInput) (domain.Session, error)
}

// StubProvider accepts any well-formed campus credentials. Nothing is verified against a store.
type StubProvider struct {
	Domain string
}

func (p StubProvider) Authenticate(c domain.Credentials) (domain.Session, error) {
	email, err := checkCredentials(c, p.Domain, domain.ErrBadCredentials)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Email: email, Name: localPart(email)}, nil
}

func (p StubProvider) Register(in domain.SignupInput) (domain.Session, error) {
	email, err := checkSignup(in, p.Domain)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		Email:      email,
		Name:       strings.TrimSpace(in.Name),
		Department: strings.TrimSpace(in.Department),
		Year:       strings.TrimSpace(in.Year),
	}, nil
}

// PasswordProvider keeps bcrypt-hashed accounts in the users table.
type PasswordProvider struct {
	Users  *repos.UserRepo
	Domain string
	Cost   int
}

func (p PasswordProvider) Authenticate(c domain.Credentials) (domain.Session, error) {
	email, err := checkCredentials(c, p.Domain, domain.ErrBadCredentials)
	if err != nil {
		return domain.Session{}, err
	}
	u, err := p.Users.ByEmail(email)
	if err != nil {
		return domain.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(c.Password)) != nil {
		return domain.Session{}, domain.ErrBadCredentials
	}
	return domain.Session{Email: u.Email, Name: u.Name, Department: u.Department, Year: u.Year}, nil
}

func (p PasswordProvider) Register(in domain.SignupInput) (domain.Session, error) {
	email, err := checkSignup(in, p.Domain)
	if err != nil {
		return domain.Session{}, err
	}
	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return domain.Session{}, err
	}
	u := domain.User{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       strings.TrimSpace(in.Name),
		Hash:       string(hash),
		Department: strings.TrimSpace(in.Department),
		Year:       strings.TrimSpace(in.Year),
	}
	if err := p.Users.Create(u); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Email: u.Email, Name: u.Name, Department: u.Department, Year: u.Year}, nil
}

func checkCredentials(c domain.Credentials, suffix string, kind error) (string, error) {
	email, ok := validate.CampusEmail(c.Email, suffix)
	if !ok {
		return "", fmt.Errorf("%w: please use your %s email", kind, suffix)
	}
	if !validate.Password(c.Password) {
		return "", fmt.Errorf("%w: password must be at least %d characters", kind, validate.MinPassword)
	}
	return email, nil
}

func checkSignup(in domain.SignupInput, suffix string) (string, error) {
	if _, ok := validate.Name(in.Name); !ok {
		return "", fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidSignup, validate.MinName)
	}
	email, err := checkCredentials(domain.Credentials{Email: in.Email, Password: in.Password}, suffix, domain.ErrInvalidSignup)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Department) == "" {
		return "", fmt.Errorf("%w: please select your department", domain.ErrInvalidSignup)
	}
	if strings.TrimSpace(in.Year) == "" {
		return "", fmt.Errorf("%w: please select your year", domain.ErrInvalidSignup)
	}
	return email, nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// AuthService keeps at most one session per profile in the key-value store.
type AuthService struct {
	Store    repos.Shim
	Provider IdentityProvider
}

func NewAuthService(store repos.Shim, p IdentityProvider) *AuthService {
	return &AuthService{Store: store, Provider: p}
}

func (s *AuthService) Login(profile string, c domain.Credentials) (domain.Session, error) {
	sess, err := s.Provider.Authenticate(c)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(profile, sess)
}

func (s *AuthService) Signup(profile string, in domain.SignupInput) (domain.Session, error) {
	sess, err := s.Provider.Register(in)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(profile, sess)
}

func (s *AuthService) persist(profile string, sess domain.Session) (domain.Session, error) {
	sess.IsLoggedIn = true
	if err := s.Store.Set(profile, repos.KeySession, sess); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) Logout(profile string) error {
	return s.Store.Delete(profile, repos.KeySession)
}

// CurrentUser returns nil for an anonymous profile, including one whose stored record is corrupt.
func (s *AuthService) CurrentUser(profile string) *domain.Session {
	var sess domain.Session
	if profile == "" || !s.Store.Get(profile, repos.KeySession, &sess) {
		return nil
	}
	if !sess.IsLoggedIn || sess.Email == "" {
		return nil
	}
	return &sess
}

func (s *AuthService) IsAuthenticated(profile string) bool { return s.CurrentUser(profile) != nil }

// Require returns the session or domain.ErrLoginRequired.
func (s *AuthService) Require(profile string) (domain.Session, error) {
	sess := s.CurrentUser(profile)
	if sess == nil {
		return domain.Session{}, domain.ErrLoginRequired
	}
	return *sess, nil
}

// IsUserError reports whether err is a message meant for the person filling the form.
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrBadCredentials) || errors.Is(err, domain.ErrInvalidSignup) ||
		errors.Is(err, domain.ErrEmailTaken)
}
