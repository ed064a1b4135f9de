package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"unimart/internal/config"
	"unimart/internal/http/handlers"
	applog "unimart/internal/log"
	"unimart/internal/repos"
)

const campus = "@pccegoa.edu.in"

// harness drives the full app like a browser: it keeps the csrf_ and sid cookies between calls.
type harness struct {
	app  *fiber.App
	deps *handlers.Deps
	csrf string
	sid  string
}

func newHarness(t *testing.T, opt handlers.Options) *harness {
	t.Helper()
	cfg := config.Defaults()
	cfg.DBDSN = ":memory:"
	cfg.TemplatesDir = "../../web/templates"
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg)
	if err := deps.Catalog.Initialize(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}
	h := &harness{app: handlers.NewApp(cfg, deps, opt), deps: deps}

	// fetch csrf token
	resp := h.do(t, httptest.NewRequest("GET", "/login", nil))
	if h.csrf == "" {
		t.Fatalf("csrf token missing (status %d)", resp.StatusCode)
	}
	return h
}

func (h *harness) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if h.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: h.csrf})
	}
	if h.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: h.sid})
	}
	resp, err := h.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		switch c.Name {
		case "csrf_":
			if c.Value != "" {
				h.csrf = c.Value
			}
		case "sid":
			h.sid = c.Value
		}
	}
	return resp
}

func (h *harness) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return h.do(t, httptest.NewRequest("GET", path, nil))
}

func (h *harness) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", h.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(t, req)
}

func (h *harness) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return h.do(t, req)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	resp := h.postForm(t, "/login", url.Values{"email": {"asha" + campus}, "password": {"password1"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: expected 302, got %d body=%s", resp.StatusCode, readBody(t, resp))
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode json: %v", err)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Status int            `json:"status"`
	Fields map[string]any `json:"fields"`
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Write(p)
}

// captureLogs points the event log at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var lb lockedBuffer
	applog.SetOutput(&lb)
	defer applog.SetOutput(io.Discard)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(lb.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
