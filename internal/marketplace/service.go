package marketplace

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
)

// SellLeadInput is the farmer crop-residue form.
type SellLeadInput struct {
	FarmerName   string  `json:"farmerName" validate:"required"`
	Contact      string  `json:"contact" validate:"required"`
	QuantityTons float64 `json:"quantityTons" validate:"gt=0"`
	Location     string  `json:"location" validate:"required"`
}

// LeadSink receives farmer sell leads. The default implementation just logs
// them; a CRM integration can replace it.
type LeadSink interface {
	SubmitLead(ctx context.Context, lead SellLeadInput) error
}

// Service exposes supplier browsing over the seeded listing.
type Service interface {
	Browse(ctx context.Context, state FilterState) (*Result, error)
	Locations(ctx context.Context) []string
	SubmitSellLead(ctx context.Context, lead SellLeadInput) error
}

type service struct {
	listing []Supplier
	leads   LeadSink
}

// NewService builds a marketplace service over the provided listing. A nil
// listing falls back to the seeded suppliers.
func NewService(listing []Supplier, leads LeadSink) (Service, error) {
	if leads == nil {
		return nil, fmt.Errorf("lead sink required")
	}
	if listing == nil {
		listing = DefaultSuppliers()
	}
	return &service{listing: listing, leads: leads}, nil
}

func (s *service) Browse(ctx context.Context, state FilterState) (*Result, error) {
	if state.SortBy == "" {
		state.SortBy = SortLatest
	}
	if !state.SortBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sort key %q", state.SortBy))
	}
	if state.MinCapacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity floor must be non-negative")
	}

	result := Apply(s.listing, state)
	return &result, nil
}

func (s *service) Locations(ctx context.Context) []string {
	return Locations()
}

func (s *service) SubmitSellLead(ctx context.Context, lead SellLeadInput) error {
	if strings.TrimSpace(lead.FarmerName) == "" || strings.TrimSpace(lead.Contact) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "farmer name and contact are required")
	}
	if lead.QuantityTons <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if strings.TrimSpace(lead.Location) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "location is required")
	}
	if err := s.leads.SubmitLead(ctx, lead); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting sell lead")
	}
	return nil
}
