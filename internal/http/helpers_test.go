package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"catalogview/internal/config"
	"catalogview/internal/http/handlers"
	"catalogview/internal/repos"
	"catalogview/web"
)

func testConfig(apiBase string) config.Config {
	return config.Config{
		APIBaseURL:  apiBase,
		APITimeout:  2 * time.Second,
		FeedbackTTL: time.Minute,
		SessionTTL:  time.Minute,
		MaxSessions: 10,
	}
}

// newApp mirrors the production wiring. db may be nil to leave the API out;
// apiMW is mounted in front of the API routes.
func newApp(t *testing.T, db *sqlx.DB, cfg config.Config, apiMW ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{Views: html.NewFileSystem(web.Templates(), ".html")})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ContextKey:     "CSRFToken",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}))

	deps := handlers.NewDeps(db, cfg)
	app.Get("/", deps.PageHandler.Home)
	app.Post("/products/load", deps.PageHandler.Load)
	app.Post("/products", deps.PageHandler.Add)
	app.Post("/products/:id/delete", deps.PageHandler.Delete)

	if db != nil {
		api := app.Group("/api", apiMW...)
		api.Get("/categories", deps.CategoryHandler.List)
		api.Get("/products", deps.ProductHandler.List)
		api.Get("/products/:id", deps.ProductHandler.Get)
		api.Post("/products", deps.ProductHandler.Create)
		api.Delete("/products/:id", deps.ProductHandler.Delete)
	}
	return app
}

func memDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// browser keeps the sid and csrf cookies across requests like a real client.
type browser struct {
	t    *testing.T
	app  *fiber.App
	sid  string
	csrf string
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	if b.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: b.sid})
	}
	if b.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: b.csrf})
	}
	resp, err := b.app.Test(req, 5000)
	require.NoError(b.t, err)
	if v := extractCookie(resp, "sid"); v != "" {
		b.sid = v
	}
	if v := extractCookie(resp, "csrf_"); v != "" {
		b.csrf = v
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	if form == nil {
		form = url.Values{}
	}
	if form.Get("csrf") == "" {
		form.Set("csrf", b.csrf)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

type recorded struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeAPI is a canned remote catalog that records what it was asked.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	products string
	hold     chan struct{} // when set, product lists wait for it to close
	srv      *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{products: `[]`}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) baseURL() string { return f.srv.URL + "/api" }

func (f *fakeAPI) setProducts(js string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = js
}

func (f *fakeAPI) holdProducts() chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold = make(chan struct{})
	return f.hold
}

func (f *fakeAPI) calls(method string) []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recorded
	for _, r := range f.requests {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path}
	if r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	products, hold := f.products, f.hold
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/categories":
		io.WriteString(w, `[{"CategoryID":2,"CategoryName":"Books"},{"CategoryID":1,"CategoryName":"Electronics"}]`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/products":
		if hold != nil {
			<-hold
		}
		io.WriteString(w, products)
	case r.Method == http.MethodPost && r.URL.Path == "/api/products":
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"ProductID":42,"ProductName":"Widget"}`)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/products/7":
		io.WriteString(w, `{"message":"Product deleted successfully"}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"Product not found"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
