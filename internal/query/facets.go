package query

import (
	"slices"

	"unimart/internal/domain"
)

// PriceRange is the cheapest and dearest price in a listing set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets lists the values the filter controls can offer for a listing set.
type Facets struct {
	Categories []string   `json:"categories"`
	Subjects   []string   `json:"subjects"`
	Conditions []string   `json:"conditions"`
	Price      PriceRange `json:"priceRange"`
}

// FacetsOf collects distinct, sorted facet values. Empty strings are skipped.
func FacetsOf(listings []domain.Listing) Facets {
	cats, subs, conds := map[string]struct{}{}, map[string]struct{}{}, map[string]struct{}{}
	var f Facets
	for i, l := range listings {
		add(cats, l.Category)
		add(subs, l.Subject)
		add(conds, l.Condition)
		if i == 0 || l.Price < f.Price.Min {
			f.Price.Min = l.Price
		}
		if i == 0 || l.Price > f.Price.Max {
			f.Price.Max = l.Price
		}
	}
	f.Categories = keys(cats)
	f.Subjects = keys(subs)
	f.Conditions = keys(conds)
	return f
}

func add(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
