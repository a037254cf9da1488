package marketplace

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
)

type stubLeadSink struct {
	leads []SellLeadInput
	err   error
}

func (s *stubLeadSink) SubmitLead(ctx context.Context, lead SellLeadInput) error {
	if s.err != nil {
		return s.err
	}
	s.leads = append(s.leads, lead)
	return nil
}

func newTestService(t *testing.T) (Service, *stubLeadSink) {
	t.Helper()
	sink := &stubLeadSink{}
	svc, err := NewService(nil, sink)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, sink
}

func TestBrowseDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Browse(ctx, FilterState{})
	if err != nil {
		t.Fatalf("browse zero state: %v", err)
	}
	if result.TotalCount != 6 {
		t.Fatalf("expected full listing, got %d", result.TotalCount)
	}

	if _, err := svc.Browse(ctx, FilterState{SortBy: "newest-first"}); err == nil {
		t.Fatal("expected error for unknown sort key")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}

	if _, err := svc.Browse(ctx, FilterState{SortBy: SortLatest, MinCapacity: -1}); err == nil {
		t.Fatal("expected error for negative capacity floor")
	}
}

func TestLocationsListsSidebarStates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	locations := svc.Locations(context.Background())
	if len(locations) != 4 || locations[0] != "Punjab" {
		t.Fatalf("unexpected locations %v", locations)
	}
}

func TestSubmitSellLead(t *testing.T) {
	t.Parallel()

	svc, sink := newTestService(t)
	ctx := context.Background()

	lead := SellLeadInput{
		FarmerName:   "Gurpreet Singh",
		Contact:      "+919812345678",
		QuantityTons: 12,
		Location:     "Moga, Punjab",
	}
	if err := svc.SubmitSellLead(ctx, lead); err != nil {
		t.Fatalf("submit lead: %v", err)
	}
	if len(sink.leads) != 1 || sink.leads[0].FarmerName != "Gurpreet Singh" {
		t.Fatalf("expected lead delivered, got %+v", sink.leads)
	}

	bad := lead
	bad.QuantityTons = 0
	if err := svc.SubmitSellLead(ctx, bad); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	sink.err = errors.New("crm down")
	if err := svc.SubmitSellLead(ctx, lead); err == nil {
		t.Fatal("expected sink failure to surface")
	} else if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}
