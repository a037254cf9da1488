package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/zestraw/storefront-backend/internal/marketplace"
)

type stubMarketplaceService struct {
	lastState marketplace.FilterState
	lastLead  marketplace.SellLeadInput
	result    *marketplace.Result
}

func (s *stubMarketplaceService) Browse(ctx context.Context, state marketplace.FilterState) (*marketplace.Result, error) {
	s.lastState = state
	return s.result, nil
}

func (s *stubMarketplaceService) Locations(ctx context.Context) []string {
	return []string{"Punjab", "Haryana"}
}

func (s *stubMarketplaceService) SubmitSellLead(ctx context.Context, lead marketplace.SellLeadInput) error {
	s.lastLead = lead
	return nil
}

func TestMarketplaceBrowseParsesQuery(t *testing.T) {
	t.Parallel()

	svc := &stubMarketplaceService{result: &marketplace.Result{Page: 1, TotalPages: 1}}
	handler := MarketplaceBrowse(svc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/marketplace/suppliers?search=straw&locations=Punjab,Haryana&minCapacity=50&verifiedOnly=true&sortBy=rating&page=2", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	want := marketplace.FilterState{
		Search:       "straw",
		Locations:    []string{"Punjab", "Haryana"},
		MinCapacity:  50,
		VerifiedOnly: true,
		SortBy:       marketplace.SortRating,
		Page:         2,
	}
	if !reflect.DeepEqual(svc.lastState, want) {
		t.Fatalf("state mismatch:\n got %+v\nwant %+v", svc.lastState, want)
	}
}

func TestMarketplaceBrowseDefaults(t *testing.T) {
	t.Parallel()

	svc := &stubMarketplaceService{result: &marketplace.Result{Page: 1, TotalPages: 1}}
	handler := MarketplaceBrowse(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/marketplace/suppliers", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !reflect.DeepEqual(svc.lastState, marketplace.DefaultFilterState()) {
		t.Fatalf("expected reset state, got %+v", svc.lastState)
	}
}

func TestMarketplaceBrowseRejectsUnknownSort(t *testing.T) {
	t.Parallel()

	handler := MarketplaceBrowse(&stubMarketplaceService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/marketplace/suppliers?sortBy=alphabetical", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMarketplaceSellLead(t *testing.T) {
	t.Parallel()

	svc := &stubMarketplaceService{}
	handler := MarketplaceSellLead(svc, nil)

	body := `{"farmerName":"Gurpreet Singh","contact":"+919876543210","quantityTons":12.5,"location":"Punjab"}`
	req := httptest.NewRequest(http.MethodPost, "/marketplace/sell-leads", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.lastLead.FarmerName != "Gurpreet Singh" || svc.lastLead.QuantityTons != 12.5 {
		t.Fatalf("unexpected lead %+v", svc.lastLead)
	}
}

func TestMarketplaceSellLeadTrimsFreeText(t *testing.T) {
	t.Parallel()

	svc := &stubMarketplaceService{}
	handler := MarketplaceSellLead(svc, nil)

	longName := strings.Repeat("a", 200)
	body := `{"farmerName":"` + longName + `","contact":"  +919876543210  ","quantityTons":3,"location":"  Punjab "}`
	req := httptest.NewRequest(http.MethodPost, "/marketplace/sell-leads", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(svc.lastLead.FarmerName) != 120 {
		t.Fatalf("expected farmer name capped at 120, got %d", len(svc.lastLead.FarmerName))
	}
	if svc.lastLead.Contact != "+919876543210" || svc.lastLead.Location != "Punjab" {
		t.Fatalf("expected trimmed fields, got %+v", svc.lastLead)
	}
}
