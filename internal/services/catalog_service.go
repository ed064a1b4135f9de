package services

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/query"
	"unimart/internal/repos"
	"unimart/internal/validate"
)

const defaultRating = 5.0

// CatalogService owns the shared listings collection. The cache and every read-modify-write of
// the stored collection happen under mu.
type CatalogService struct {
	Store repos.Shim

	mu       sync.Mutex
	ready    bool
	listings []domain.Listing
}

func NewCatalogService(store repos.Shim) *CatalogService {
	return &CatalogService{Store: store}
}

// Initialize loads the stored collection, seeding it when it is missing or unreadable.
// Calling it again is a no-op.
func (s *CatalogService) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *CatalogService) initLocked() error {
	if s.ready {
		return nil
	}
	var raw json.RawMessage
	if s.Store.Get(repos.ScopeCatalog, repos.KeyListings, &raw) {
		ls, rejected, err := repos.DecodeListings(raw)
		if err == nil {
			if rejected > 0 {
				applog.L().Warn("catalog.load.rejected", zap.Int("rejected", rejected), zap.Int("kept", len(ls)))
			}
			s.listings, s.ready = ls, true
			return nil
		}
		applog.L().Warn("catalog.load.unusable", zap.Error(err))
	}

	seed := repos.SeedListings()
	if err := s.write(seed); err != nil {
		// serve the seed from memory; the next Initialize retries the write
		s.listings = seed
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.listings, s.ready = seed, true
	applog.L().Info("catalog.seeded", zap.Int("count", len(seed)))
	return nil
}

func (s *CatalogService) write(ls []domain.Listing) error {
	raw, err := repos.EncodeListings(ls)
	if err != nil {
		return err
	}
	return s.Store.Set(repos.ScopeCatalog, repos.KeyListings, raw)
}

// snapshot returns a copy of the cache, loading it first if needed.
func (s *CatalogService) snapshot() []domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		applog.L().Error("catalog.init.fail", zap.Error(err))
	}
	return slices.Clone(s.listings)
}

// All returns every listing, newest submissions first.
func (s *CatalogService) All() []domain.Listing {
	out := s.snapshot()
	if out == nil {
		out = []domain.Listing{}
	}
	return out
}

func (s *CatalogService) ByID(id string) (domain.Listing, bool) {
	id = strings.TrimSpace(id)
	for _, l := range s.snapshot() {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Listing{}, false
}

// Create validates input, stamps it as a fresh listing and prepends it to the stored collection.
// When the write fails the collection is left as it was. No session check happens here.
func (s *CatalogService) Create(input domain.ListingInput, seller string) (domain.Listing, error) {
	price, err := validate.Listing(input)
	if err != nil {
		return domain.Listing{}, err
	}
	rating := defaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}
	image := strings.TrimSpace(input.Image)
	l := domain.Listing{
		ID:                   ulid.Make().String(),
		Title:                strings.TrimSpace(input.Title),
		Description:          strings.TrimSpace(input.Description),
		Price:                price,
		Category:             strings.TrimSpace(input.Category),
		Subject:              strings.TrimSpace(input.Subject),
		Condition:            strings.TrimSpace(input.Condition),
		Seller:               strings.TrimSpace(seller),
		Rating:               rating,
		PostedDate:           domain.JustNow,
		IsBlockchainVerified: input.UseBlockchain,
		Image:                image,
		Images:               []string{image},
		Location:             strings.TrimSpace(input.Location),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return domain.Listing{}, err
	}
	next := make([]domain.Listing, 0, len(s.listings)+1)
	next = append(next, l)
	next = append(next, s.listings...)
	if err := s.write(next); err != nil {
		return domain.Listing{}, fmt.Errorf("store listing: %w", err)
	}
	s.listings = next
	return l, nil
}

// BySeller returns the listings published under the given display name, in catalog order.
func (s *CatalogService) BySeller(name string) []domain.Listing {
	name = strings.TrimSpace(name)
	out := []domain.Listing{}
	if name == "" {
		return out
	}
	for _, l := range s.snapshot() {
		if l.Seller == name {
			out = append(out, l)
		}
	}
	return out
}

func (s *CatalogService) Search(text string) []domain.Listing {
	return query.Search(s.All(), text)
}

// Query applies a full filter/sort spec to the current catalog.
func (s *CatalogService) Query(spec query.Spec) []domain.Listing {
	return query.Apply(s.All(), spec)
}

func (s *CatalogService) Count() int { return len(s.snapshot()) }

func (s *CatalogService) Facets() query.Facets { return query.FacetsOf(s.All()) }
