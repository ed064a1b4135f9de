// Package query filters and orders catalog listings.
//
// Everything here is a pure function of its inputs: the same listings and the same Spec always
// produce the same ordered result, including a Spec decoded from the URL of a reloaded page.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// All is the sentinel facet value meaning "do not filter on this facet".
const All = "all"

// Sort keys.
const (
	SortPriceLowHigh = "price-low-high"
	SortPriceHighLow = "price-high-low"
	SortRating       = "rating"
	SortNewest       = "newest"
)

// URL query parameter names.
const (
	ParamSearch    = "search"
	ParamCategory  = "category"
	ParamSubject   = "subject"
	ParamCondition = "condition"
	ParamMinPrice  = "minPrice"
	ParamMaxPrice  = "maxPrice"
	ParamVerified  = "verified"
	ParamSort      = "sort"
)

// Spec is one filter/sort request. The zero value matches everything in input order.
// A nil price bound is open.
type Spec struct {
	SearchText   string   `json:"searchText,omitempty"`
	Category     string   `json:"category,omitempty"`
	Subject      string   `json:"subject,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	VerifiedOnly bool     `json:"verifiedOnly,omitempty"`
	SortKey      string   `json:"sortKey,omitempty"`
}

// IsAll reports whether a facet value is one of the "no filter" spellings, including the
// labels the catalog UI shows in its dropdowns.
func IsAll(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", All, "all categories", "all subjects", "all conditions":
		return true
	}
	return false
}

// Price returns a pointer for use as a Spec bound.
func Price(v float64) *float64 { return &v }

// SpecFromValues rebuilds a Spec from URL query parameters. Malformed numbers and booleans are
// ignored rather than rejected so a hand-edited URL still renders a catalog.
func SpecFromValues(v url.Values) Spec {
	s := Spec{
		SearchText: strings.TrimSpace(v.Get(ParamSearch)),
		Category:   facet(v.Get(ParamCategory)),
		Subject:    facet(v.Get(ParamSubject)),
		Condition:  facet(v.Get(ParamCondition)),
		SortKey:    strings.TrimSpace(v.Get(ParamSort)),
	}
	s.MinPrice = parseBound(v.Get(ParamMinPrice))
	s.MaxPrice = parseBound(v.Get(ParamMaxPrice))
	if b, err := strconv.ParseBool(strings.TrimSpace(v.Get(ParamVerified))); err == nil {
		s.VerifiedOnly = b
	}
	return s
}

// Values encodes the Spec as URL query parameters, omitting every default.
func (s Spec) Values() url.Values {
	s = s.normalized()
	v := url.Values{}
	if s.SearchText != "" {
		v.Set(ParamSearch, s.SearchText)
	}
	if !IsAll(s.Category) {
		v.Set(ParamCategory, s.Category)
	}
	if !IsAll(s.Subject) {
		v.Set(ParamSubject, s.Subject)
	}
	if !IsAll(s.Condition) {
		v.Set(ParamCondition, s.Condition)
	}
	if s.MinPrice != nil {
		v.Set(ParamMinPrice, strconv.FormatFloat(*s.MinPrice, 'f', -1, 64))
	}
	if s.MaxPrice != nil {
		v.Set(ParamMaxPrice, strconv.FormatFloat(*s.MaxPrice, 'f', -1, 64))
	}
	if s.VerifiedOnly {
		v.Set(ParamVerified, "true")
	}
	if s.SortKey != "" {
		v.Set(ParamSort, s.SortKey)
	}
	return v
}

// IsIdentity reports whether Apply would return its input unchanged.
func (s Spec) IsIdentity() bool {
	s = s.normalized()
	return s.SearchText == "" &&
		IsAll(s.Category) && IsAll(s.Subject) && IsAll(s.Condition) &&
		s.MinPrice == nil && s.MaxPrice == nil &&
		!s.VerifiedOnly && !knownSort(s.SortKey)
}

// normalized trims text, facet values and the sort key the way SpecFromValues does, so a Spec
// built in code and the same Spec decoded from a URL select the same listings.
func (s Spec) normalized() Spec {
	s.SearchText = strings.TrimSpace(s.SearchText)
	s.Category, s.Subject, s.Condition = facet(s.Category), facet(s.Subject), facet(s.Condition)
	s.SortKey = strings.TrimSpace(s.SortKey)
	return s
}

func facet(v string) string {
	v = strings.TrimSpace(v)
	if IsAll(v) {
		return ""
	}
	return v
}

func parseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f { // NaN
		return nil
	}
	return &f
}

func knownSort(k string) bool {
	switch k {
	case SortPriceLowHigh, SortPriceHighLow, SortRating, SortNewest:
		return true
	}
	return false
}
