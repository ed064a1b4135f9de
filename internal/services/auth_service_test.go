package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"unimart/internal/domain"
	"unimart/internal/repos"
	"unimart/internal/services"
)

func TestStubProvider_Authenticate(t *testing.T) {
	p := services.StubProvider{Domain: campus}

	sess, err := p.Authenticate(domain.Credentials{Email: " Rahul.M@pccegoa.edu.in ", Password: "12345678"})
	require.NoError(t, err)
	require.Equal(t, "Rahul.M", sess.Name)

	tests := []domain.Credentials{
		{Email: "rahul@gmail.com", Password: "12345678"},
		{Email: "not-an-email", Password: "12345678"},
		{Email: "rahul@pccegoa.edu.in", Password: "short"},
	}
	for _, c := range tests {
		_, err := p.Authenticate(c)
		require.ErrorIs(t, err, domain.ErrBadCredentials, c.Email)
	}
}

func TestStubProvider_Register(t *testing.T) {
	p := services.StubProvider{Domain: campus}
	good := domain.SignupInput{Name: "Priya S", Email: "priya" + campus, Password: "password1", Department: "Chemical", Year: "2"}

	sess, err := p.Register(good)
	require.NoError(t, err)
	require.Equal(t, domain.Session{Email: good.Email, Name: "Priya S", Department: "Chemical", Year: "2"}, sess)

	for name, edit := range map[string]func(*domain.SignupInput){
		"name":       func(in *domain.SignupInput) { in.Name = "P" },
		"email":      func(in *domain.SignupInput) { in.Email = "priya@yahoo.com" },
		"password":   func(in *domain.SignupInput) { in.Password = "1234" },
		"department": func(in *domain.SignupInput) { in.Department = " " },
		"year":       func(in *domain.SignupInput) { in.Year = "" },
	} {
		in := good
		edit(&in)
		_, err := p.Register(in)
		require.ErrorIs(t, err, domain.ErrInvalidSignup, name)
		require.True(t, services.IsUserError(err), name)
	}
}

func TestPasswordProvider(t *testing.T) {
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	p := services.PasswordProvider{Users: repos.NewUserRepo(db), Domain: campus, Cost: bcrypt.MinCost}

	in := domain.SignupInput{Name: "Vikram", Email: "vikram" + campus, Password: "workshop99", Department: "Mechanical", Year: "3"}
	_, err = p.Register(in)
	require.NoError(t, err)

	_, err = p.Register(in)
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	sess, err := p.Authenticate(domain.Credentials{Email: in.Email, Password: in.Password})
	require.NoError(t, err)
	require.Equal(t, "Vikram", sess.Name)
	require.Equal(t, "Mechanical", sess.Department)

	_, err = p.Authenticate(domain.Credentials{Email: in.Email, Password: "workshop98"})
	require.ErrorIs(t, err, domain.ErrBadCredentials)
	_, err = p.Authenticate(domain.Credentials{Email: "nobody" + campus, Password: "workshop99"})
	require.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestAuthService_LoginLogout(t *testing.T) {
	a := newApp(t)
	require.False(t, a.auth.IsAuthenticated("p1"))
	require.Nil(t, a.auth.CurrentUser("p1"))

	sess := a.login(t, "p1")
	require.True(t, sess.IsLoggedIn)
	require.True(t, a.auth.IsAuthenticated("p1"))
	require.False(t, a.auth.IsAuthenticated("p2"), "sessions are per profile")

	got, err := a.auth.Require("p1")
	require.NoError(t, err)
	require.Equal(t, sess, got)

	require.NoError(t, a.auth.Logout("p1"))
	require.False(t, a.auth.IsAuthenticated("p1"))
	_, err = a.auth.Require("p1")
	require.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestAuthService_FailedLoginStoresNothing(t *testing.T) {
	a := newApp(t)
	_, err := a.auth.Login("p1", domain.Credentials{Email: "x@gmail.com", Password: "password1"})
	require.ErrorIs(t, err, domain.ErrBadCredentials)
	require.False(t, a.auth.IsAuthenticated("p1"))
}

func TestAuthService_CorruptSessionIsAnonymous(t *testing.T) {
	a := newApp(t)
	a.kv.putRaw(t, "p1", repos.KeySession, `{"email":`)
	require.Nil(t, a.auth.CurrentUser("p1"))

	a.kv.putRaw(t, "p1", repos.KeySession, `{"email":"a@pccegoa.edu.in","name":"a","isLoggedIn":false}`)
	require.Nil(t, a.auth.CurrentUser("p1"))
	require.Nil(t, a.auth.CurrentUser(""))
}

func TestAuthService_Signup(t *testing.T) {
	a := newApp(t)
	sess, err := a.auth.Signup("p1", domain.SignupInput{Name: "Sneha R", Email: "sneha" + campus, Password: "physics101", Department: "Physics", Year: "1"})
	require.NoError(t, err)
	require.Equal(t, "Sneha R", a.auth.CurrentUser("p1").Name)
	require.True(t, sess.IsLoggedIn)
}
