package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rossellmestanza/menudigital/api/controllers"
	"github.com/rossellmestanza/menudigital/api/middleware"
	"github.com/rossellmestanza/menudigital/internal/auth"
	"github.com/rossellmestanza/menudigital/internal/cart"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/order"
	"github.com/rossellmestanza/menudigital/pkg/auth/session"
	"github.com/rossellmestanza/menudigital/pkg/config"
	"github.com/rossellmestanza/menudigital/pkg/logger"
	"github.com/rossellmestanza/menudigital/pkg/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// NewRouter assembles the public storefront and admin API surfaces.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP pinger,
	cacheP pinger,
	limiter rateLimiter,
	sessions session.Checker,
	loader *catalog.Loader,
	catalogService catalog.Service,
	cartService cart.Service,
	orderService order.Service,
	authService auth.Service,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.Menu(loader, logg))
		r.Get("/menu/categories", controllers.MenuCategories(loader, logg))
		r.Get("/menu/products", controllers.MenuProducts(loader, logg))
		r.Get("/menu/config", controllers.MenuConfig(loader, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Put("/items", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/checkout", controllers.CartCheckout(orderService, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			loginLimit := middleware.LoginRateLimit(limiter, cfg.RateLimit.LoginIPLimit, cfg.RateLimit.LoginWindow, logg)
			r.With(loginLimit).Post("/login", controllers.AuthLogin(authService, cfg, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, sessions, logg))
				r.Post("/logout", controllers.AuthLogout(authService, cfg, logg))
				r.Get("/me", controllers.AuthMe(logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWT, sessions, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(catalogService, logg))
			r.Post("/", controllers.AdminCreateCategory(catalogService, logg))
			r.Put("/{categoryID}", controllers.AdminUpdateCategory(catalogService, logg))
			r.Delete("/{categoryID}", controllers.AdminDeleteCategory(catalogService, logg))
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(catalogService, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Put("/{productID}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(catalogService, logg))
		})
		r.Route("/config", func(r chi.Router) {
			r.Get("/", controllers.AdminGetConfig(catalogService, logg))
			r.Put("/", controllers.AdminUpdateConfig(catalogService, logg))
		})
	})

	return r
}
