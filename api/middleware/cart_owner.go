package middleware

import (
	"net/http"
	"strings"

	"github.com/zestraw/storefront-backend/pkg/logger"
)

const cartKeyHeader = "X-Cart-Key"

// CartOwner resolves the cart owner for the request: the authenticated user
// when present, otherwise the client-generated X-Cart-Key header. Guest carts
// keep working after login because the client re-adds items under the user.
func CartOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			owner := UserIDFromContext(ctx)
			if owner == "" {
				owner = strings.TrimSpace(r.Header.Get(cartKeyHeader))
			}
			if owner != "" {
				ctx = WithCartKey(ctx, owner)
				if logg != nil {
					ctx = logg.WithCartKey(ctx, owner)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
