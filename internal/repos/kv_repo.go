package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	applog "unimart/internal/log"
)

// Well-known keys.
const (
	KeyListings = "unimart_products"
	KeySession  = "unimart_user"
	KeyWishlist = "unimart_wishlist"
	KeyVerified = "blockchain_verified"
)

// ScopeCatalog holds the shared listings collection. Every other scope is a profile id.
const ScopeCatalog = "catalog"

//go:generate mockgen -source=kv_repo.go -destination=mock_shim.go -package=repos

// Shim stores JSON values under (scope, key).
type Shim interface {
	// Get decodes the stored value into dst, which must be a non-nil pointer. It reports false,
	// leaving dst untouched, when the key is missing, the read fails, or the JSON does not decode.
	Get(scope, key string, dst any) bool
	Set(scope, key string, v any) error
	Delete(scope, key string) error
}

type KVRepo struct {
	db     *sqlx.DB
	upsert string
}

func NewKVRepo(db *sqlx.DB) *KVRepo {
	r := &KVRepo{db: db}
	switch dialectOf(db) {
	case MySQL:
		r.upsert = `INSERT INTO kv(scope, k, v, updated_at) VALUES(?, ?, ?, ?)
		  ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = VALUES(updated_at)`
	default:
		r.upsert = `INSERT INTO kv(scope, k, v, updated_at) VALUES(?, ?, ?, ?)
		  ON CONFLICT(scope, k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`
	}
	return r
}

func (r *KVRepo) Get(scope, key string, dst any) bool {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		applog.L().Error("kv.get.bad_dst", zap.String("scope", scope), zap.String("key", key))
		return false
	}
	var raw string
	err := r.db.Get(&raw, `SELECT v FROM kv WHERE scope = ? AND k = ?`, scope, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		applog.L().Warn("kv.read.fail", zap.String("scope", scope), zap.String("key", key), zap.Error(err))
		return false
	}
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		applog.L().Warn("kv.decode.fail", zap.String("scope", scope), zap.String("key", key), zap.Error(err))
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

func (r *KVRepo) Set(scope, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv set %s/%s: %w", scope, key, err)
	}
	if _, err := r.db.Exec(r.upsert, scope, key, string(b), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("kv set %s/%s: %w", scope, key, err)
	}
	return nil
}

func (r *KVRepo) Delete(scope, key string) error {
	if _, err := r.db.Exec(`DELETE FROM kv WHERE scope = ? AND k = ?`, scope, key); err != nil {
		return fmt.Errorf("kv delete %s/%s: %w", scope, key, err)
	}
	return nil
}
