package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zestraw/storefront-backend/api/middleware"
	cartsvc "github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/pkg/types"
)

type stubCartService struct {
	owner    string
	lastAdd  cartsvc.AddItemInput
	snapshot *cartsvc.Snapshot
	cleared  bool
}

func (s *stubCartService) Get(ctx context.Context, owner string) (*cartsvc.Snapshot, error) {
	s.owner = owner
	return s.snapshot, nil
}

func (s *stubCartService) Add(ctx context.Context, owner string, input cartsvc.AddItemInput) (*cartsvc.Snapshot, error) {
	s.owner = owner
	s.lastAdd = input
	return s.snapshot, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, owner, productID, variant string, quantity int64) (*cartsvc.Snapshot, error) {
	s.owner = owner
	return s.snapshot, nil
}

func (s *stubCartService) Remove(ctx context.Context, owner, productID, variant string) (*cartsvc.Snapshot, error) {
	s.owner = owner
	return s.snapshot, nil
}

func (s *stubCartService) Clear(ctx context.Context, owner string) (*cartsvc.Snapshot, error) {
	s.owner = owner
	s.cleared = true
	return s.snapshot, nil
}

func emptySnapshot() *cartsvc.Snapshot {
	return &cartsvc.Snapshot{Items: []cartsvc.LineItem{}, Subtotal: types.NewMoney(0)}
}

func TestCartGetRequiresOwner(t *testing.T) {
	t.Parallel()

	handler := CartGet(&stubCartService{snapshot: emptySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without owner, got %d", w.Code)
	}
}

func TestCartAddUsesContextOwner(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{snapshot: emptySnapshot()}
	handler := CartAdd(svc, nil)

	body := `{"id":"prod-1","name":"Rice Straw Plate","priceCents":2400,"quantity":2,"size":"10 inch"}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req = req.WithContext(middleware.WithCartKey(req.Context(), "guest-xyz"))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.owner != "guest-xyz" {
		t.Fatalf("expected owner from context, got %q", svc.owner)
	}
	if svc.lastAdd.ProductID != "prod-1" || svc.lastAdd.Quantity != 2 {
		t.Fatalf("unexpected add input %+v", svc.lastAdd)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
}

func TestCartAddRejectsInvalidBody(t *testing.T) {
	t.Parallel()

	handler := CartAdd(&stubCartService{snapshot: emptySnapshot()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"name":"no id"}`))
	req = req.WithContext(middleware.WithCartKey(req.Context(), "guest-xyz"))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", w.Code)
	}
}

func TestCartClear(t *testing.T) {
	t.Parallel()

	svc := &stubCartService{snapshot: emptySnapshot()}
	handler := CartClear(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	req = req.WithContext(middleware.WithCartKey(req.Context(), "user-1"))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear invoked")
	}
}
