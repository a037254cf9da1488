package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/internal/marketplace"
	"github.com/zestraw/storefront-backend/pkg/config"
	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/metrics"
)

type allowAllSessions struct{}

func (allowAllSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type memCartStore struct {
	mu    sync.Mutex
	blobs map[string][]cart.LineItem
}

func (s *memCartStore) Load(ctx context.Context, owner string) ([]cart.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[owner], nil
}

func (s *memCartStore) Save(ctx context.Context, owner string, items []cart.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blobs == nil {
		s.blobs = make(map[string][]cart.LineItem)
	}
	s.blobs[owner] = items
	return nil
}

func (s *memCartStore) Drop(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, owner)
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	marketplaceSvc, err := marketplace.NewService(nil, marketplace.NewLogLeadSink(logger.New(logger.Options{ServiceName: "test"})))
	if err != nil {
		t.Fatalf("marketplace service: %v", err)
	}

	cartSvc, err := cart.NewService(&memCartStore{})
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "zestraw", ExpirationMinutes: 30}

	return NewRouter(
		cfg,
		logger.New(logger.Options{ServiceName: "test"}),
		Pingers{},
		nil,
		allowAllSessions{},
		metrics.NewHTTPMetrics(),
		Services{
			Marketplace: marketplaceSvc,
			Cart:        cartSvc,
		},
	)
}

func TestRouterPublicSurfaces(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/marketplace/suppliers", http.StatusOK},
		{http.MethodGet, "/api/v1/marketplace/locations", http.StatusOK},
		{http.MethodGet, "/api/v1/cart/", http.StatusBadRequest}, // no owner
		{http.MethodPost, "/api/v1/orders/", http.StatusUnauthorized},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, w.Code)
		}
	}
}

func TestRouterCartGuestFlow(t *testing.T) {
	t.Parallel()

	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("X-Cart-Key", "guest-abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected guest cart fetch to work, got %d: %s", w.Code, w.Body.String())
	}
}
