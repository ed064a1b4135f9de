package services

import (
	"slices"

	"unimart/internal/domain"
	"unimart/internal/repos"
)

// WishlistService keeps a per-profile list of listing snapshots.
type WishlistService struct {
	Auth    *AuthService
	Catalog *CatalogService
	Store   repos.Shim
}

func NewWishlistService(store repos.Shim, a *AuthService, c *CatalogService) *WishlistService {
	return &WishlistService{Auth: a, Catalog: c, Store: store}
}

func (s *WishlistService) load(profile string) []domain.Listing {
	var items []domain.Listing
	if !s.Store.Get(profile, repos.KeyWishlist, &items) || items == nil {
		return []domain.Listing{}
	}
	return items
}

func (s *WishlistService) List(profile string) ([]domain.Listing, error) {
	if _, err := s.Auth.Require(profile); err != nil {
		return nil, err
	}
	return s.load(profile), nil
}

// Add stores a copy of the listing as it is now. Adding an id twice keeps one entry.
func (s *WishlistService) Add(profile, listingID string) error {
	if _, err := s.Auth.Require(profile); err != nil {
		return err
	}
	l, ok := s.Catalog.ByID(listingID)
	if !ok {
		return domain.ErrNotFound
	}
	items := s.load(profile)
	if slices.ContainsFunc(items, func(it domain.Listing) bool { return it.ID == l.ID }) {
		return nil
	}
	return s.Store.Set(profile, repos.KeyWishlist, append(items, l))
}

func (s *WishlistService) Remove(profile, listingID string) error {
	if _, err := s.Auth.Require(profile); err != nil {
		return err
	}
	items := s.load(profile)
	kept := slices.DeleteFunc(items, func(it domain.Listing) bool { return it.ID == listingID })
	return s.Store.Set(profile, repos.KeyWishlist, kept)
}

func (s *WishlistService) Clear(profile string) error {
	if _, err := s.Auth.Require(profile); err != nil {
		return err
	}
	return s.Store.Delete(profile, repos.KeyWishlist)
}
