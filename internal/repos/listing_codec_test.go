package repos

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"unimart/internal/domain"
)

func userFixture(id, email string) domain.User {
	return domain.User{ID: id, Email: email, Name: "Asha", Hash: "$2a$12$x"}
}

func TestEncodeDecodeListings(t *testing.T) {
	seed := SeedListings()
	raw, err := EncodeListings(seed)
	require.NoError(t, err)

	got, rejected, err := DecodeListings(raw)
	require.NoError(t, err)
	require.Zero(t, rejected)
	if diff := cmp.Diff(seed, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeListings_LegacyArray(t *testing.T) {
	// shape written by the first front-end: bare array, numeric id, price as text
	raw := `[{"id": 1712000000000, "title": "Lab Coat", "price": "250", "rating": 7,
	          "postedDate": "Just now", "image": "data:image/png;base64,AAA"}]`

	got, rejected, err := DecodeListings([]byte(raw))
	require.NoError(t, err)
	require.Zero(t, rejected)
	require.Len(t, got, 1)
	require.Equal(t, "1712000000000", got[0].ID)
	require.Equal(t, 250.0, got[0].Price)
	require.Equal(t, 5.0, got[0].Rating, "rating is clamped")
	require.Equal(t, []string{"data:image/png;base64,AAA"}, got[0].Gallery())
}

func TestDecodeListings_RejectsBadRecords(t *testing.T) {
	raw := `{"version": 1, "listings": [
	  {"id": "a", "title": "Good", "price": 10},
	  {"id": "a", "title": "Duplicate id", "price": 11},
	  {"id": "",  "title": "No id", "price": 12},
	  {"id": "b", "title": "", "price": 13},
	  {"id": "c", "title": "Negative", "price": -1},
	  {"id": "d", "title": "No price"},
	  {"id": "e", "title": "Bad price", "price": "cheap"},
	  {"id": "f", "title": "  Trimmed  ", "price": 0, "images": ["", " x.png "]}
	]}`

	got, rejected, err := DecodeListings([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, 6, rejected)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "Trimmed", got[1].Title)
	require.Equal(t, []string{"x.png"}, got[1].Images)
}

func TestDecodeListings_Unusable(t *testing.T) {
	for _, raw := range []string{"", "   ", "{", `{"version": 9, "listings": []}`, `{"listings": []}`, `"text"`} {
		_, _, err := DecodeListings([]byte(raw))
		require.Error(t, err, "input %q", raw)
	}
}

func TestEncodeListings_EmptyIsArray(t *testing.T) {
	raw, err := EncodeListings(nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"version":1,"listings":[]}`, string(raw))
}
