package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"unimart/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// ByEmail returns domain.ErrBadCredentials when no account matches.
func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,department,year FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the account, returning domain.ErrEmailTaken for a case-insensitive duplicate.
func (r *UserRepo) Create(u domain.User) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, u.Email); err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrEmailTaken
	}
	if _, err := tx.Exec(`INSERT INTO users(id,email,name,password_hash,department,year) VALUES(?,?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Hash, u.Department, u.Year); err != nil {
		return err
	}
	return tx.Commit()
}
