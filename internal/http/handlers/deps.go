package handlers

import (
	"github.com/jmoiron/sqlx"

	"unimart/internal/config"
	"unimart/internal/repos"
	"unimart/internal/services"
)

type Deps struct {
	Auth         *services.AuthService
	Catalog      *services.CatalogService
	Verification *services.VerificationService
	Ticker       *services.ActivityTicker

	CatalogHandler  *CatalogHandler
	SellHandler     *SellHandler
	AuthHandler     *AuthHandler
	WishlistHandler *WishlistHandler
	ProfileHandler  *ProfileHandler
	APIHandler      *APIHandler
}

// Provider picks the identity provider named by cfg.AuthMode.
func Provider(db *sqlx.DB, cfg config.Config) services.IdentityProvider {
	if cfg.AuthMode == config.AuthPassword {
		return services.PasswordProvider{Users: repos.NewUserRepo(db), Domain: cfg.CampusDomain}
	}
	return services.StubProvider{Domain: cfg.CampusDomain}
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	kv := repos.NewKVRepo(db)

	authSvc := services.NewAuthService(kv, Provider(db, cfg))
	catalogSvc := services.NewCatalogService(kv)
	sellSvc := services.NewSellService(authSvc, catalogSvc)
	wishSvc := services.NewWishlistService(kv, authSvc, catalogSvc)
	chatSvc := services.NewChatService(catalogSvc)
	verifySvc := services.NewVerificationService(kv)
	ticker := services.NewActivityTicker(catalogSvc, cfg.TickerInterval)

	return &Deps{
		Auth:         authSvc,
		Catalog:      catalogSvc,
		Verification: verifySvc,
		Ticker:       ticker,

		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc, Verify: verifySvc, Ticker: ticker},
		SellHandler:     &SellHandler{Sell: sellSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc, Campus: cfg.CampusDomain},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		ProfileHandler:  &ProfileHandler{Catalog: catalogSvc, Wish: wishSvc},
		APIHandler: &APIHandler{
			Catalog: catalogSvc, Sell: sellSvc, Auth: authSvc,
			Chat: chatSvc, Verify: verifySvc, Ticker: ticker,
		},
	}
}
