package repos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"unimart/internal/domain"
)

// ListingsVersion is the current shape of the stored listings collection.
// Version 0 is the bare JSON array written by the first front-end.
const ListingsVersion = 1

type listingsEnvelope struct {
	Version  int               `json:"version"`
	Listings []json.RawMessage `json:"listings"`
}

// flexString accepts a JSON string or number (old records used numeric ids).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or a numeric string (the Sell form posted prices as text).
type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		f.v, f.set = v, true
		return nil
	}
	if err := json.Unmarshal(b, &f.v); err != nil {
		return err
	}
	f.set = true
	return nil
}

type wireListing struct {
	ID                   flexString `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Price                flexFloat  `json:"price"`
	Category             string     `json:"category"`
	Subject              string     `json:"subject"`
	Condition            string     `json:"condition"`
	Seller               string     `json:"seller"`
	Rating               flexFloat  `json:"rating"`
	PostedDate           string     `json:"postedDate"`
	IsBlockchainVerified bool       `json:"isBlockchainVerified"`
	Image                string     `json:"image"`
	Images               []string   `json:"images"`
	Location             string     `json:"location"`
}

// DecodeListings reads a stored collection of any known version and normalises every record.
// Records that cannot be coerced (no id, duplicate id, no title, missing or negative price) are
// dropped and counted in rejected. err is non-nil only when the blob as a whole is unusable.
func DecodeListings(raw []byte) (out []domain.Listing, rejected int, err error) {
	raw = bytes.TrimSpace(raw)
	var records []json.RawMessage
	switch {
	case len(raw) == 0:
		return nil, 0, fmt.Errorf("decode listings: empty value")
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, 0, fmt.Errorf("decode listings v0: %w", err)
		}
	default:
		var env listingsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, 0, fmt.Errorf("decode listings: %w", err)
		}
		if env.Version < 1 || env.Version > ListingsVersion {
			return nil, 0, fmt.Errorf("decode listings: unsupported version %d", env.Version)
		}
		records = env.Listings
	}

	seen := make(map[string]struct{}, len(records))
	out = make([]domain.Listing, 0, len(records))
	for _, rec := range records {
		var w wireListing
		if err := json.Unmarshal(rec, &w); err != nil {
			rejected++
			continue
		}
		l, ok := normalize(w)
		if !ok {
			rejected++
			continue
		}
		if _, dup := seen[l.ID]; dup {
			rejected++
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out, rejected, nil
}

// EncodeListings writes the current envelope version.
func EncodeListings(ls []domain.Listing) (json.RawMessage, error) {
	env := struct {
		Version  int              `json:"version"`
		Listings []domain.Listing `json:"listings"`
	}{Version: ListingsVersion, Listings: ls}
	if env.Listings == nil {
		env.Listings = []domain.Listing{}
	}
	return json.Marshal(env)
}

func normalize(w wireListing) (domain.Listing, bool) {
	l := domain.Listing{
		ID:                   strings.TrimSpace(string(w.ID)),
		Title:                strings.TrimSpace(w.Title),
		Description:          strings.TrimSpace(w.Description),
		Category:             strings.TrimSpace(w.Category),
		Subject:              strings.TrimSpace(w.Subject),
		Condition:            strings.TrimSpace(w.Condition),
		Seller:               strings.TrimSpace(w.Seller),
		PostedDate:           strings.TrimSpace(w.PostedDate),
		IsBlockchainVerified: w.IsBlockchainVerified,
		Image:                strings.TrimSpace(w.Image),
		Location:             strings.TrimSpace(w.Location),
	}
	if l.ID == "" || l.Title == "" {
		return domain.Listing{}, false
	}
	if !w.Price.set || math.IsNaN(w.Price.v) || math.IsInf(w.Price.v, 0) || w.Price.v < 0 {
		return domain.Listing{}, false
	}
	l.Price = w.Price.v
	if w.Rating.set && !math.IsNaN(w.Rating.v) {
		l.Rating = math.Min(5, math.Max(0, w.Rating.v))
	}
	for _, img := range w.Images {
		if img = strings.TrimSpace(img); img != "" {
			l.Images = append(l.Images, img)
		}
	}
	return l, true
}
