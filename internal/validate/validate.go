package validate

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"unimart/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

const (
	MinPassword    = 8
	MinName        = 2
	MinTitle       = 5
	MinDescription = 20
	MaxSearch      = 80
)

// Email trims and checks the general address shape.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// CampusEmail is Email plus a case-insensitive check on the institution suffix.
func CampusEmail(s, suffix string) (string, bool) {
	s, ok := Email(s)
	if !ok {
		return "", false
	}
	return s, strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
}

// Search trims catalog search text. Any printable text up to MaxSearch runes is accepted;
// "" means no search. Templates escape the echoed value, so punctuation is harmless.
func Search(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxSearch {
		return "", false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return "", false
		}
	}
	return s, true
}

// ID validates a listing identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if n := len([]rune(s)); n < MinName || n > 60 {
		return "", false
	}
	return s, true
}

func Password(s string) bool {
	return len(s) >= MinPassword && len(s) <= 72 // bcrypt input limit
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid listing: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == domain.ErrInvalidListing }

// Listing checks a Sell form submission and returns the parsed price.
// The error is a *FieldErrors listing every failing field.
func Listing(in domain.ListingInput) (float64, error) {
	fe := FieldErrors{}
	if len([]rune(strings.TrimSpace(in.Title))) < MinTitle {
		fe["title"] = "Title must be at least 5 characters"
	}
	if len([]rune(strings.TrimSpace(in.Description))) < MinDescription {
		fe["description"] = "Description must be at least 20 characters"
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	switch {
	case strings.TrimSpace(in.Price) == "":
		fe["price"] = "Price is required"
	case err != nil || math.IsNaN(price) || math.IsInf(price, 0):
		fe["price"] = "Price must be a number"
	case price <= 0:
		fe["price"] = "Price must be greater than 0"
	}
	required := []struct{ field, value, msg string }{
		{"category", in.Category, "Please select a category"},
		{"condition", in.Condition, "Please select a condition"},
		{"subject", in.Subject, "Please select a subject"},
		{"location", in.Location, "Location is required"},
		{"image", in.Image, "Please upload at least one image"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fe[r.field] = r.msg
		}
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5 || math.IsNaN(*in.Rating)) {
		fe["rating"] = "Rating must be between 0 and 5"
	}
	if len(fe) > 0 {
		return 0, &fe
	}
	return price, nil
}
