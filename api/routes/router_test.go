package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rossellmestanza/menudigital/internal/auth"
	"github.com/rossellmestanza/menudigital/internal/cart"
	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/menu"
	"github.com/rossellmestanza/menudigital/internal/order"
	pkgAuth "github.com/rossellmestanza/menudigital/pkg/auth"
	"github.com/rossellmestanza/menudigital/pkg/config"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
	"github.com/rossellmestanza/menudigital/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubLimiter struct{}

func (stubLimiter) FixedWindowAllow(context.Context, string, int64, time.Duration) (bool, int64, error) {
	return true, 1, nil
}

type stubChecker struct{ has bool }

func (s stubChecker) HasSession(context.Context, string) (bool, error) { return s.has, nil }

type stubCatalogSource struct{}

func (stubCatalogSource) ListCategories(context.Context, bool) ([]models.Category, error) {
	return []models.Category{{ID: "c1", Name: "Hamburguesas", Active: true}}, nil
}

func (stubCatalogSource) ListProducts(context.Context, bool) ([]models.Product, error) {
	return []models.Product{{ID: "p1", CategoryID: "c1", Name: "Clásica", PriceCents: 1500, Active: true}}, nil
}

func (stubCatalogSource) GetConfig(context.Context) (*models.RestaurantConfig, error) {
	cfg := models.DefaultRestaurantConfig()
	return &cfg, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func (stubCatalogService) CreateCategory(context.Context, catalog.CreateCategoryInput) (*models.Category, error) {
	return &models.Category{ID: "c1"}, nil
}

func (stubCatalogService) UpdateCategory(context.Context, string, catalog.UpdateCategoryInput) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

func (stubCatalogService) DeleteCategory(context.Context, string) error { return nil }

func (stubCatalogService) ListProducts(context.Context) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogService) CreateProduct(context.Context, catalog.CreateProductInput) (*models.Product, error) {
	return &models.Product{ID: "p1"}, nil
}

func (stubCatalogService) UpdateProduct(context.Context, string, catalog.UpdateProductInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCatalogService) DeleteProduct(context.Context, string) error { return nil }

func (stubCatalogService) GetConfig(context.Context) (catalog.ConfigDTO, error) {
	return catalog.ConfigDTO{RestaurantName: "Mi Restaurante"}, nil
}

func (stubCatalogService) UpdateConfig(context.Context, catalog.UpdateConfigInput) (catalog.ConfigDTO, error) {
	return catalog.ConfigDTO{}, nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, token string) (string, *menu.Cart, error) {
	return "11111111-1111-4111-8111-111111111111", &menu.Cart{}, nil
}

func (stubCartService) AddItem(ctx context.Context, token string, input cart.AddItemInput) (string, *menu.Cart, error) {
	return token, &menu.Cart{}, nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, token, lineKey string, quantity int) (*menu.Cart, error) {
	return &menu.Cart{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, token, lineKey string) (*menu.Cart, error) {
	return &menu.Cart{}, nil
}

func (stubCartService) Clear(ctx context.Context, token string) (*menu.Cart, error) {
	return &menu.Cart{}, nil
}

type stubOrderService struct{}

func (stubOrderService) Checkout(context.Context, string, order.CheckoutInput) (*order.CheckoutResult, error) {
	return &order.CheckoutResult{Message: "ok", WhatsAppURL: "https://wa.me/51999999999?text=ok"}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, string, string) (*auth.LoginResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciales inválidas")
}

func (stubAuthService) Logout(context.Context, string) error { return nil }

func (stubAuthService) EnsureBootstrapAdmin(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "routes-test", Output: io.Discard})
	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "menudigital", SessionTTLMinutes: 60},
		RateLimit: config.RateLimitConfig{
			LoginWindow:  time.Minute,
			LoginIPLimit: 10,
		},
	}

	loader, err := catalog.NewLoader(stubCatalogSource{}, logg)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if err := loader.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh loader: %v", err)
	}

	registry := prometheus.NewRegistry()
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		stubLimiter{},
		stubChecker{has: true},
		loader,
		stubCatalogService{},
		stubCartService{},
		stubOrderService{},
		stubAuthService{},
		registry,
		metrics.NewHTTPMetrics(registry),
	)
}

func TestRouterPublicSurface(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"health live", http.MethodGet, "/health/live", "", http.StatusOK},
		{"health ready", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"menu", http.MethodGet, "/api/v1/menu", "", http.StatusOK},
		{"menu categories", http.MethodGet, "/api/v1/menu/categories", "", http.StatusOK},
		{"menu products", http.MethodGet, "/api/v1/menu/products", "", http.StatusOK},
		{"menu config", http.MethodGet, "/api/v1/menu/config", "", http.StatusOK},
		{"cart fetch", http.MethodGet, "/api/v1/cart", "", http.StatusOK},
		{"cart add", http.MethodPost, "/api/v1/cart/items", `{"product_id":"p1","quantity":1}`, http.StatusCreated},
		{"checkout", http.MethodPost, "/api/v1/cart/checkout", `{"order_type":"llevar","name":"Ana","phone":"987654321"}`, http.StatusOK},
		{"login rejects bad creds", http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			if tc.path == "/api/v1/cart/checkout" {
				req.Header.Set("X-Cart-Token", "11111111-1111-4111-8111-111111111111")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("%s %s: got %d, want %d, body: %s", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestRouterAdminRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/v1/products"},
		{http.MethodGet, "/api/admin/v1/categories"},
		{http.MethodGet, "/api/admin/v1/config"},
		{http.MethodPost, "/api/v1/auth/logout"},
		{http.MethodGet, "/api/v1/auth/me"},
	}

	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: got %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouterAdminWithToken(t *testing.T) {
	router := newTestRouter(t)

	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "menudigital", SessionTTLMinutes: 60}
	token, err := pkgAuth.MintAdminToken(jwtCfg, time.Now(), pkgAuth.AdminTokenPayload{
		AdminID:  "admin-1",
		Username: "admin",
		JTI:      "sess-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/config", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Mi Restaurante") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
