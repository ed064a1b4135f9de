package services

import "unimart/internal/domain"

// SellService is the guarded entry point for publishing a listing.
type SellService struct {
	Auth    *AuthService
	Catalog *CatalogService
}

func NewSellService(a *AuthService, c *CatalogService) *SellService {
	return &SellService{Auth: a, Catalog: c}
}

// Create checks the session before anything else, so an anonymous caller never reaches
// validation or the store.
func (s *SellService) Create(profile string, in domain.ListingInput) (domain.Listing, error) {
	sess, err := s.Auth.Require(profile)
	if err != nil {
		return domain.Listing{}, err
	}
	return s.Catalog.Create(in, sess.Name)
}
