package repos

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend. The values double as database/sql driver names.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

// OpenDB connects, pings and makes sure the schema exists.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	d := Dialect(driver)
	if d != SQLite && d != MySQL {
		return nil, fmt.Errorf("open db: unsupported driver %q", driver)
	}
	db, err := sqlx.Open(string(d), dsn)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		// one connection keeps ":memory:" databases shared and serialises sqlite writers
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(db, d); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dialectOf(db *sqlx.DB) Dialect {
	if db.DriverName() == string(MySQL) {
		return MySQL
	}
	return SQLite
}

func ensureSchema(db *sqlx.DB, d Dialect) error {
	stmts := sqliteSchema
	if d == MySQL {
		stmts = mysqlSchema
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS kv(
  scope TEXT NOT NULL,
  k TEXT NOT NULL,
  v TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY(scope, k)
)`,
	`CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  department TEXT NOT NULL DEFAULT '',
  year TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email))`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS kv(
  scope VARCHAR(64) NOT NULL,
  k VARCHAR(128) NOT NULL,
  v MEDIUMTEXT NOT NULL,
  updated_at VARCHAR(40),
  PRIMARY KEY(scope, k)
)`,
	`CREATE TABLE IF NOT EXISTS users(
  id VARCHAR(64) PRIMARY KEY,
  email VARCHAR(255) NOT NULL UNIQUE,
  name VARCHAR(255) NOT NULL,
  password_hash VARCHAR(255) NOT NULL,
  department VARCHAR(255) NOT NULL DEFAULT '',
  year VARCHAR(32) NOT NULL DEFAULT '',
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}
