package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/rossellmestanza/menudigital/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "menudigital-test",
		SessionTTLMinutes: 60,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAdminToken(cfg, now, AdminTokenPayload{
		AdminID:  "6f1e7a1e-6f67-4f7a-9a55-8a3c2f9f1a10",
		Username: "admin",
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("MintAdminToken returned error: %v", err)
	}

	claims, err := ParseAdminToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAdminToken returned error: %v", err)
	}
	if claims.AdminID != "6f1e7a1e-6f67-4f7a-9a55-8a3c2f9f1a10" {
		t.Fatalf("unexpected admin id %q", claims.AdminID)
	}
	if claims.Username != "admin" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.ID != "session-1" {
		t.Fatalf("unexpected jti %q", claims.ID)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now.Add(59*time.Minute)) {
		t.Fatalf("expiry not set from session ttl: %v", claims.ExpiresAt)
	}
}

func TestMintAdminTokenGeneratesJTI(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{AdminID: "abc", Username: "admin"})
	if err != nil {
		t.Fatalf("MintAdminToken returned error: %v", err)
	}
	claims, err := ParseAdminToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAdminToken returned error: %v", err)
	}
	if strings.TrimSpace(claims.ID) == "" {
		t.Fatal("expected generated jti")
	}
}

func TestMintAdminTokenValidation(t *testing.T) {
	now := time.Now()

	if _, err := MintAdminToken(config.JWTConfig{Issuer: "x", SessionTTLMinutes: 1}, now, AdminTokenPayload{AdminID: "a"}); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := MintAdminToken(config.JWTConfig{Secret: "s", SessionTTLMinutes: 1}, now, AdminTokenPayload{AdminID: "a"}); err == nil {
		t.Fatal("expected error for missing issuer")
	}
	if _, err := MintAdminToken(testJWTConfig(), now, AdminTokenPayload{}); err == nil {
		t.Fatal("expected error for missing admin id")
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{AdminID: "abc", Username: "admin"})
	if err != nil {
		t.Fatalf("MintAdminToken returned error: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAdminToken(other, signed); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), AdminTokenPayload{AdminID: "abc"})
	if err != nil {
		t.Fatalf("MintAdminToken returned error: %v", err)
	}
	if _, err := ParseAdminToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
