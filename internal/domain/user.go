package domain

// Session is the record kept for the logged-in identity of one profile.
type Session struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

type Credentials struct {
	Email    string
	Password string
}

type SignupInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Year       string
}

// User is an account row used by the password identity provider.
type User struct {
	ID         string `db:"id"`
	Email      string `db:"email"`
	Name       string `db:"name"`
	Hash       string `db:"password_hash"`
	Department string `db:"department"`
	Year       string `db:"year"`
}
