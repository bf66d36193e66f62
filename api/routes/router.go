package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nhakalabs/storefront-gateway/api/controllers"
	"github.com/nhakalabs/storefront-gateway/api/middleware"
	authsvc "github.com/nhakalabs/storefront-gateway/internal/auth"
	checkoutsvc "github.com/nhakalabs/storefront-gateway/internal/checkout"
	"github.com/nhakalabs/storefront-gateway/internal/contributions"
	"github.com/nhakalabs/storefront-gateway/internal/memorials"
	"github.com/nhakalabs/storefront-gateway/internal/orders"
	"github.com/nhakalabs/storefront-gateway/internal/storefront"
	"github.com/nhakalabs/storefront-gateway/internal/users"
	"github.com/nhakalabs/storefront-gateway/pkg/auth/session"
	"github.com/nhakalabs/storefront-gateway/pkg/config"
	"github.com/nhakalabs/storefront-gateway/pkg/logger"
	pkgredis "github.com/nhakalabs/storefront-gateway/pkg/redis"
)

type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*session.Record, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *pkgredis.Client,
	sessions sessionStore,
	registry *prometheus.Registry,
	authService authsvc.Service,
	storefrontService storefront.Service,
	checkoutService checkoutsvc.Service,
	orderService orders.Service,
	memorialService memorials.Service,
	contributionService contributions.Service,
	userService users.Service,
) http.Handler {
	// A typed nil client must not reach the interface-typed middleware params.
	var idemStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		redisPinger = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Visitor surface: no session, hidden contributions are stripped.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/memorials/{memorialID}", controllers.MemorialPublicGet(memorialService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signin", controllers.AuthSignIn(authService, logg))
		r.Post("/signup", controllers.AuthSignUp(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/v1/auth", func(r chi.Router) {
			r.Post("/signout", controllers.AuthSignOut(authService, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
		})

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(storefrontService, logg))
			r.Post("/items", controllers.CartAddItem(storefrontService, logg))
			r.Patch("/items/{productID}", controllers.CartUpdateItem(storefrontService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(storefrontService, logg))
			r.Post("/panels/{panel}", controllers.CartSetPanel(storefrontService, logg))
		})

		r.Route("/v1/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutState(checkoutService, logg))
			r.Post("/delivery", controllers.CheckoutDelivery(checkoutService, logg))
			r.Post("/payment-method", controllers.CheckoutPaymentMethod(checkoutService, logg))
			r.Post("/back", controllers.CheckoutBack(checkoutService, logg))
		})
		// Registered flat so the idempotency rules match the exact path.
		r.Post("/v1/checkout/order", controllers.CheckoutPlaceOrder(checkoutService, logg))

		r.Get("/v1/orders", controllers.OrderList(orderService, logg))
		r.Get("/v1/orders/{orderID}", controllers.OrderDetail(orderService, logg))

		r.Route("/v1/memorials", func(r chi.Router) {
			r.Get("/{memorialID}", controllers.MemorialGet(memorialService, logg))
			r.Patch("/{memorialID}", controllers.MemorialConfigure(memorialService, logg))
		})

		r.Get("/v1/contributions", controllers.ContributionList(contributionService, logg))
		r.Post("/v1/contributions", controllers.ContributionCreate(contributionService, logg))
		r.Post("/v1/contributions/upload", controllers.ContributionUpload(contributionService, logg))
		r.Patch("/v1/contributions/{contributionID}/visibility", controllers.ContributionSetVisibility(contributionService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(idemStore, logg))
		r.Route("/v1/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(userService, logg))
			r.Post("/", controllers.UserCreate(userService, logg))
			r.Get("/{userID}", controllers.UserGet(userService, logg))
			r.Patch("/{userID}", controllers.UserUpdate(userService, logg))
			r.Delete("/{userID}", controllers.UserDelete(userService, logg))
		})
	})

	return r
}
