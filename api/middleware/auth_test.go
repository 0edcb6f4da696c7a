package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/rossellmestanza/menudigital/pkg/auth"
	"github.com/rossellmestanza/menudigital/pkg/config"
)

type fakeChecker struct {
	has bool
	err error

	lastSessionID string
}

func (f *fakeChecker) HasSession(ctx context.Context, sessionID string) (bool, error) {
	f.lastSessionID = sessionID
	return f.has, f.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "menudigital",
		SessionTTLMinutes: 60,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAdminToken(cfg, time.Now(), pkgAuth.AdminTokenPayload{
		AdminID:  "admin-1",
		Username: "admin",
		JTI:      jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func identityProbe(t *testing.T, wantAdmin, wantSession string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if got := AdminIDFromContext(r.Context()); got != wantAdmin {
			t.Fatalf("unexpected admin id in context: %q", got)
		}
		if got := SessionIDFromContext(r.Context()); got != wantSession {
			t.Fatalf("unexpected session id in context: %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAdminAuthAcceptsCookie(t *testing.T) {
	cfg := testJWTConfig()
	checker := &fakeChecker{has: true}
	handler := AdminAuth(cfg, checker, quietLogger())(identityProbe(t, "admin-1", "sess-1"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: mintTestToken(t, cfg, "sess-1")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %s", rec.Code, rec.Body.String())
	}
	if checker.lastSessionID != "sess-1" {
		t.Fatalf("session not verified: %q", checker.lastSessionID)
	}
}

func TestAdminAuthAcceptsBearerHeader(t *testing.T) {
	cfg := testJWTConfig()
	handler := AdminAuth(cfg, &fakeChecker{has: true}, quietLogger())(identityProbe(t, "admin-1", "sess-2"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, "sess-2"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAdminAuthRejectsMissingCredentials(t *testing.T) {
	handler := AdminAuth(testJWTConfig(), &fakeChecker{has: true}, quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAdminAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	handler := AdminAuth(cfg, &fakeChecker{has: false}, quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: mintTestToken(t, cfg, "sess-3")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAdminAuthSessionStoreFailure(t *testing.T) {
	cfg := testJWTConfig()
	handler := AdminAuth(cfg, &fakeChecker{err: errors.New("redis down")}, quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: mintTestToken(t, cfg, "sess-4")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestAdminAuthRejectsGarbageToken(t *testing.T) {
	handler := AdminAuth(testJWTConfig(), &fakeChecker{has: true}, quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
