package controllers

import (
	"net/http"
	"strings"

	"github.com/zestraw/storefront-backend/api/responses"
	"github.com/zestraw/storefront-backend/api/validators"
	"github.com/zestraw/storefront-backend/internal/marketplace"
	pkgerrors "github.com/zestraw/storefront-backend/pkg/errors"
	"github.com/zestraw/storefront-backend/pkg/logger"
)

// MarketplaceBrowse lists suppliers through the filter pipeline. Filters come
// in as query parameters; absent parameters fall back to the reset state.
func MarketplaceBrowse(svc marketplace.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := marketplace.DefaultFilterState()
		query := r.URL.Query()

		state.Search = strings.TrimSpace(query.Get("search"))
		if raw := query.Get("locations"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				if loc := strings.TrimSpace(part); loc != "" {
					state.Locations = append(state.Locations, loc)
				}
			}
		}

		capacity, err := validators.ParseQueryInt(r, "minCapacity", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state.MinCapacity = int64(capacity)

		state.VerifiedOnly = query.Get("verifiedOnly") == "true"

		if raw := strings.TrimSpace(query.Get("sortBy")); raw != "" {
			state.SortBy = marketplace.SortKey(raw)
			if !state.SortBy.IsValid() {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").WithDetails(map[string]any{"sortBy": raw}))
				return
			}
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state.Page = page

		result, err := svc.Browse(r.Context(), state)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// MarketplaceLocations returns the distinct supplier states for the filter UI.
func MarketplaceLocations(svc marketplace.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Locations(r.Context()))
	}
}

// MarketplaceSellLead accepts a farmer's straw supply lead.
func MarketplaceSellLead(svc marketplace.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload marketplace.SellLeadInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.FarmerName = validators.SanitizeString(payload.FarmerName, 120)
		payload.Contact = validators.SanitizeString(payload.Contact, 60)
		payload.Location = validators.SanitizeString(payload.Location, 120)

		if err := svc.SubmitSellLead(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "lead received"})
	}
}
