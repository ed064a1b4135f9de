package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"unimart/internal/domain"
	"unimart/internal/repos"
	"unimart/internal/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const campus = "@pccegoa.edu.in"

// testKV is the sqlite-backed shim plus a way to plant values Set would never write.
type testKV struct {
	*repos.KVRepo
	db *sqlx.DB
}

func (k testKV) putRaw(t *testing.T, scope, key, raw string) {
	t.Helper()
	_, err := k.db.Exec(`INSERT OR REPLACE INTO kv(scope, k, v) VALUES(?, ?, ?)`, scope, key, raw)
	require.NoError(t, err)
}

func memkv(t *testing.T) testKV {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return testKV{KVRepo: repos.NewKVRepo(db), db: db}
}

type app struct {
	kv       testKV
	catalog  *services.CatalogService
	auth     *services.AuthService
	sell     *services.SellService
	wishlist *services.WishlistService
}

func newApp(t *testing.T) app {
	t.Helper()
	kv := memkv(t)
	catalog := services.NewCatalogService(kv)
	require.NoError(t, catalog.Initialize())
	auth := services.NewAuthService(kv, services.StubProvider{Domain: campus})
	return app{
		kv:       kv,
		catalog:  catalog,
		auth:     auth,
		sell:     services.NewSellService(auth, catalog),
		wishlist: services.NewWishlistService(kv, auth, catalog),
	}
}

func (a app) login(t *testing.T, profile string) domain.Session {
	t.Helper()
	sess, err := a.auth.Login(profile, domain.Credentials{Email: "asha.k" + campus, Password: "password1"})
	require.NoError(t, err)
	return sess
}

func sellInput() domain.ListingInput {
	return domain.ListingInput{
		Title:       "Drawing Board A2",
		Description: "Sturdy A2 drawing board with parallel bar, barely used.",
		Price:       "650",
		Category:    "Drafting Tools",
		Condition:   "Like New",
		Subject:     "Engineering Graphics",
		Location:    "Mechanical Block",
		Image:       "data:image/png;base64,AAA",
	}
}
