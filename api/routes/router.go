package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zestraw/storefront-backend/api/controllers"
	"github.com/zestraw/storefront-backend/api/middleware"
	authsvc "github.com/zestraw/storefront-backend/internal/auth"
	"github.com/zestraw/storefront-backend/internal/cart"
	"github.com/zestraw/storefront-backend/internal/marketplace"
	"github.com/zestraw/storefront-backend/internal/orders"
	product "github.com/zestraw/storefront-backend/internal/products"
	"github.com/zestraw/storefront-backend/pkg/auth/session"
	"github.com/zestraw/storefront-backend/pkg/config"
	"github.com/zestraw/storefront-backend/pkg/logger"
	"github.com/zestraw/storefront-backend/pkg/metrics"
	"github.com/zestraw/storefront-backend/pkg/redis"
)

// Services groups every domain service the router mounts.
type Services struct {
	Auth        authsvc.Service
	OTP         authsvc.OTPService
	Reset       authsvc.ResetService
	Products    product.Service
	Marketplace marketplace.Service
	Cart        cart.Service
	Orders      orders.Service
}

// Pingers are the dependencies the readiness endpoint checks.
type Pingers struct {
	DB    controllers.Pinger
	Redis controllers.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers Pingers,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	services Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"db":    pingers.DB,
			"redis": pingers.Redis,
		}))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register", controllers.Register(services.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.Login(services.Auth, logg))
		r.Post("/refresh", controllers.Refresh(services.Auth, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(services.Reset, logg))
		r.Post("/reset-password", controllers.ResetPassword(services.Reset, logg))
		r.Post("/phone/send", controllers.SendPhoneCode(services.OTP, logg))
		r.Post("/phone/verify", controllers.VerifyPhoneCode(services.OTP, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.Logout(services.Auth, logg))
		})
	})

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Get("/", controllers.Me(services.Auth, logg))
		r.Put("/profile", controllers.UpdateProfile(services.Auth, logg))
		r.Put("/address", controllers.UpdateAddress(services.Auth, logg))
		r.Put("/password", controllers.ChangePassword(services.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(services.Products, logg))
		r.Get("/{productID}", controllers.ProductDetail(services.Products, logg))
	})

	r.Route("/api/v1/marketplace", func(r chi.Router) {
		r.Get("/suppliers", controllers.MarketplaceBrowse(services.Marketplace, logg))
		r.Get("/locations", controllers.MarketplaceLocations(services.Marketplace, logg))
		r.Post("/sell-leads", controllers.MarketplaceSellLead(services.Marketplace, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, sessions, logg))
		r.Use(middleware.CartOwner(logg))
		r.Get("/", controllers.CartGet(services.Cart, logg))
		r.Post("/items", controllers.CartAdd(services.Cart, logg))
		r.Put("/items", controllers.CartUpdateQuantity(services.Cart, logg))
		r.Delete("/items", controllers.CartRemove(services.Cart, logg))
		r.Delete("/", controllers.CartClear(services.Cart, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Post("/", controllers.OrderCreate(services.Orders, services.Cart, logg))
		r.Get("/mine", controllers.OrderListMine(services.Orders, logg))
	})

	return r
}
