package controllers

import (
	"net/http"

	"github.com/zestraw/storefront-backend/api/responses"
	"github.com/zestraw/storefront-backend/api/validators"
	cartsvc "github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/internal/orders"
	"github.com/zestraw/storefront-backend/pkg/logger"
)

// OrderCreate places an order from the checkout payload, then clears the
// user's cart. A failed clear is logged but does not fail the order.
func OrderCreate(svc orders.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.Create(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if carts != nil {
			if _, err := carts.Clear(r.Context(), userID.String()); err != nil && logg != nil {
				ctx := logg.WithFields(r.Context(), map[string]any{"order_id": placed.ID.String()})
				logg.Warn(ctx, "cart clear after checkout failed")
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// OrderListMine returns the authenticated user's orders, newest first.
func OrderListMine(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
