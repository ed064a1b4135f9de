package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"unimart/internal/domain"
	"unimart/internal/http/handlers"
	"unimart/internal/query"
	"unimart/internal/repos"
)

type listingsResp struct {
	Listings []domain.Listing `json:"listings"`
	Count    int              `json:"count"`
	Spec     query.Spec       `json:"spec"`
}

func idsOf(ls []domain.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestRootRedirectsToProducts(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	resp := h.get(t, "/")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/products" {
		t.Fatalf("want 302 -> /products, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

// the page, the API and the engine agree for the same URL state
func TestProductsURLStateRoundTrip(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	const qs = "?category=Lab+Coats&search=white"

	page := readBody(t, h.get(t, "/products"+qs))
	if !strings.Contains(page, `data-id="2"`) || strings.Contains(page, `data-id="7"`) {
		t.Fatalf("page did not filter to the white coat; body=%s", page)
	}
	if !strings.Contains(page, `data-count="1"`) {
		t.Fatalf("count missing from page")
	}

	var api listingsResp
	decode(t, h.get(t, "/api/v1/listings"+qs), &api)
	engine := query.Apply(repos.SeedListings(), query.Spec{Category: "Lab Coats", SearchText: "white"})

	if got, want := strings.Join(idsOf(api.Listings), ","), strings.Join(idsOf(engine), ","); got != want || got != "2" {
		t.Fatalf("api %q, engine %q", got, want)
	}
	if api.Spec.Category != "Lab Coats" || api.Count != 1 {
		t.Fatalf("spec not echoed: %+v", api)
	}
}

func TestProductsPriceBandAndSort(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	var api listingsResp
	decode(t, h.get(t, "/api/v1/listings?category=Textbooks&minPrice=400&maxPrice=500&sort=price-high-low"), &api)
	if got := strings.Join(idsOf(api.Listings), ","); got != "3,8" {
		t.Fatalf("want 3,8 got %s", got)
	}
}

func TestProductsDefaultsShowEverything(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	var api listingsResp
	decode(t, h.get(t, "/api/v1/listings?category=all&subject=All+Subjects&minPrice=oops"), &api)
	if api.Count != 8 {
		t.Fatalf("want 8 got %d", api.Count)
	}
}

func TestProductDetail(t *testing.T) {
	h := newHarness(t, handlers.Options{})

	resp := h.get(t, "/product/1")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Engineering Graphics Drafting Kit") {
		t.Fatalf("detail: status %d", resp.StatusCode)
	}

	for _, path := range []string{"/product/does-not-exist", "/product/a%20b", "/product"} {
		resp := h.get(t, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(readBody(t, resp), "This item is no longer available") {
			t.Fatalf("%s: friendly message missing", path)
		}
	}

	var apiErr map[string]string
	resp = h.get(t, "/api/v1/listings/nope")
	decode(t, resp, &apiErr)
	if resp.StatusCode != http.StatusNotFound || apiErr["error"] != domain.ErrNotFound.Error() {
		t.Fatalf("api 404: %d %v", resp.StatusCode, apiErr)
	}
}

// punctuation is ordinary search text on both surfaces
func TestSearchWithPunctuation(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	const qs = "?search=Calculus%3A+Early"

	resp := h.get(t, "/products"+qs)
	page := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(page, `data-id="3"`) || !strings.Contains(page, `data-count="1"`) {
		t.Fatalf("page: status %d, want listing 3 only", resp.StatusCode)
	}

	var api listingsResp
	decode(t, h.get(t, "/api/v1/listings"+qs), &api)
	if got := strings.Join(idsOf(api.Listings), ","); got != "3" {
		t.Fatalf("api: want 3, got %q", got)
	}

	page = readBody(t, h.get(t, "/products?search=%3Cscript%3E"))
	if strings.Contains(page, "<script>") || !strings.Contains(page, "&lt;script&gt;") {
		t.Fatal("search text echoed unescaped")
	}
}

func TestBadSearchRejected(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	long := strings.Repeat("a", 81)

	resp := h.get(t, "/products?category=Textbooks&sort=rating&search="+long)
	page := readBody(t, resp)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("long search expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(page, `<option value="Textbooks" selected>`) || strings.Contains(page, long) {
		t.Fatal("rejected search should keep the other filters and drop the text")
	}

	resp = h.get(t, "/api/v1/listings?search=lab%09coat")
	var body map[string]string
	decode(t, resp, &body)
	if resp.StatusCode != http.StatusBadRequest || body["error"] == "" {
		t.Fatalf("api: control characters expected 400, got %d %v", resp.StatusCode, body)
	}
}

func TestFacetsAPI(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	var f query.Facets
	decode(t, h.get(t, "/api/v1/facets"), &f)
	if len(f.Categories) != 5 || f.Price.Min != 200 || f.Price.Max != 1200 {
		t.Fatalf("unexpected facets %+v", f)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t, handlers.Options{})
	resp := h.get(t, "/nowhere")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(readBody(t, resp), "Page not found") {
		t.Fatalf("expected friendly 404, got %d", resp.StatusCode)
	}
}
