package query

import (
	"cmp"
	"slices"
	"strings"

	"unimart/internal/domain"
)

// Apply returns the listings that pass every active predicate of s, ordered by s.SortKey.
// The input slice is never modified. Unknown sort keys keep input order.
func Apply(listings []domain.Listing, s Spec) []domain.Listing {
	s = s.normalized()
	out := make([]domain.Listing, 0, len(listings))
	needle := strings.ToLower(s.SearchText)
	for _, l := range listings {
		if matches(l, s, needle) {
			out = append(out, l)
		}
	}
	sortListings(out, s.SortKey)
	return out
}

// Search keeps the listings whose searchable fields contain text, case-insensitively.
// Empty or whitespace-only text keeps everything.
func Search(listings []domain.Listing, text string) []domain.Listing {
	return Apply(listings, Spec{SearchText: text})
}

// MatchesText reports whether any searchable field of l contains the lower-cased needle.
func MatchesText(l domain.Listing, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range [...]string{l.Title, l.Description, l.Category, l.Subject, l.Seller} {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matches(l domain.Listing, s Spec, needle string) bool {
	if !MatchesText(l, needle) {
		return false
	}
	if !IsAll(s.Category) && l.Category != s.Category {
		return false
	}
	if !IsAll(s.Subject) && l.Subject != s.Subject {
		return false
	}
	if !IsAll(s.Condition) && l.Condition != s.Condition {
		return false
	}
	if s.MinPrice != nil && l.Price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && l.Price > *s.MaxPrice {
		return false
	}
	if s.VerifiedOnly && !l.IsBlockchainVerified {
		return false
	}
	return true
}

func sortListings(ls []domain.Listing, key string) {
	switch key {
	case SortPriceLowHigh:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHighLow:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int { return cmp.Compare(b.Price, a.Price) })
	case SortRating:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortNewest:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int {
			return cmp.Compare(recencyRank(a.PostedDate), recencyRank(b.PostedDate))
		})
	}
}
