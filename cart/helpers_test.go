package cart_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/cart"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/database"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/localstore"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// backend is a storefront twin that records what it was sent.
type backend struct {
	srv    *httptest.Server
	store  *database.MemoryStore
	issuer *auth.Issuer

	mu          sync.Mutex
	headers     []http.Header
	paths       []string
	failPaths   map[string]int
	migrateHits int
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &backend{
		store:     database.NewMemoryStore(database.DefaultCatalog()),
		issuer:    auth.NewIssuer("test-secret", time.Hour),
		failPaths: map[string]int{},
	}
	router := routes.NewRouter(routes.Deps{
		Store:       b.store,
		Issuer:      b.issuer,
		AdminAPIKey: "admin",
		Logger:      zap.NewNop(),
	})

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.headers = append(b.headers, r.Header.Clone())
		b.paths = append(b.paths, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/api/Cart/migrate" {
			b.migrateHits++
		}
		status := b.failPaths[r.URL.Path]
		b.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) failPath(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPaths[path] = status
}

func (b *backend) lastHeader() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.headers[len(b.headers)-1]
}

func (b *backend) migrations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.migrateHits
}

func (b *backend) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := b.issuer.Issue(userID, "user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// recorder captures badge and toast updates.
type recorder struct {
	mu     sync.Mutex
	badges []int
	toasts []notify.Level
	texts  []string
}

func (r *recorder) Badge(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badges = append(r.badges, count)
}

func (r *recorder) Toast(level notify.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, level)
	r.texts = append(r.texts, message)
}

func (r *recorder) lastBadge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.badges) == 0 {
		return -1
	}
	return r.badges[len(r.badges)-1]
}

func (r *recorder) lastToast() notify.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return ""
	}
	return r.toasts[len(r.toasts)-1]
}

func (r *recorder) lastText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

type fixture struct {
	backend *backend
	store   *localstore.MemoryStore
	notes   *recorder
	svc     *cart.Service
}

func newFixture(t *testing.T, opts ...cart.Option) *fixture {
	t.Helper()
	b := newBackend(t)
	store := localstore.NewMemoryStore()
	notes := &recorder{}
	svc := cart.NewService(cart.Config{
		BaseURL:     b.srv.URL,
		LoginURL:    "/login",
		CheckoutURL: "/checkout",
		Timeout:     5 * time.Second,
	}, store, notes, zap.NewNop(), opts...)
	return &fixture{backend: b, store: store, notes: notes, svc: svc}
}
