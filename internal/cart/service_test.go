package cart

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
)

type stubStore struct {
	carts   map[string][]LineItem
	loadErr error
	saveErr error
	dropErr error
}

func newStubStore() *stubStore {
	return &stubStore{carts: map[string][]LineItem{}}
}

func (s *stubStore) Load(ctx context.Context, owner string) ([]LineItem, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.carts[owner], nil
}

func (s *stubStore) Save(ctx context.Context, owner string, items []LineItem) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.carts[owner] = items
	return nil
}

func (s *stubStore) Drop(ctx context.Context, owner string) error {
	if s.dropErr != nil {
		return s.dropErr
	}
	delete(s.carts, owner)
	return nil
}

func newTestService(t *testing.T, store Store) Service {
	t.Helper()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func addInput(id, variant string, priceCents, qty int64) AddItemInput {
	return AddItemInput{
		ProductID:  id,
		Name:       "product " + id,
		PriceCents: priceCents,
		Variant:    variant,
		Quantity:   qty,
	}
}

func TestServiceAddPersistsAndDerivesTotals(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	snap, err := svc.Add(ctx, "user-1", addInput("1", "10-inch", 2400, 2))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if snap.TotalItems != 2 {
		t.Fatalf("expected 2 total items, got %d", snap.TotalItems)
	}
	if snap.Subtotal.Cents != 4800 {
		t.Fatalf("expected subtotal 4800, got %d", snap.Subtotal.Cents)
	}
	if snap.Subtotal.Display != "48.00" {
		t.Fatalf("expected display 48.00, got %q", snap.Subtotal.Display)
	}

	if len(store.carts["user-1"]) != 1 {
		t.Fatalf("expected persisted cart, got %+v", store.carts)
	}
}

func TestServiceMergeAcrossCalls(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", addInput("1", "10-inch", 2400, 1)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	snap, err := svc.Add(ctx, "user-1", addInput("1", "10-inch", 2200, 2))
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected merged line, got %+v", snap.Items)
	}
	if snap.Items[0].Quantity != 3 || snap.Items[0].PriceCents != 2200 {
		t.Fatalf("expected qty 3 at refreshed price, got %+v", snap.Items[0])
	}
}

func TestServiceCartsAreIsolatedByOwner(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-a", addInput("1", "", 1000, 1)); err != nil {
		t.Fatalf("add user-a: %v", err)
	}
	snap, err := svc.Get(ctx, "user-b")
	if err != nil {
		t.Fatalf("get user-b: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty cart for other owner, got %+v", snap.Items)
	}
}

func TestServiceUpdateQuantityFloor(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", addInput("1", "10-inch", 2400, 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := svc.UpdateQuantity(ctx, "user-1", "1", "10-inch", 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected line removed at quantity 0, got %+v", snap.Items)
	}
}

func TestServiceClearDropsBlob(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", addInput("1", "", 1000, 1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, err := svc.Clear(ctx, "user-1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if snap.TotalItems != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if _, ok := store.carts["user-1"]; ok {
		t.Fatal("expected stored cart removed")
	}
}

func TestServiceValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStore())
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"empty owner", func() error { _, err := svc.Get(ctx, "  "); return err }},
		{"missing product id", func() error { _, err := svc.Add(ctx, "u", addInput("", "", 100, 1)); return err }},
		{"missing name", func() error {
			in := addInput("1", "", 100, 1)
			in.Name = ""
			_, err := svc.Add(ctx, "u", in)
			return err
		}},
		{"negative price", func() error { _, err := svc.Add(ctx, "u", addInput("1", "", -1, 1)); return err }},
		{"remove without id", func() error { _, err := svc.Remove(ctx, "u", "", ""); return err }},
	}
	for _, tc := range cases {
		err := tc.call()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation code, got %v", tc.name, err)
		}
	}
}

func TestServiceStoreFailuresSurfaceAsDependency(t *testing.T) {
	t.Parallel()

	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	store.loadErr = errors.New("redis down")
	if _, err := svc.Get(ctx, "user-1"); err == nil {
		t.Fatal("expected load failure")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}

	store.loadErr = nil
	store.saveErr = errors.New("redis down")
	if _, err := svc.Add(ctx, "user-1", addInput("1", "", 100, 1)); err == nil {
		t.Fatal("expected save failure")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}
