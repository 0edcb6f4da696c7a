package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rossellmestanza/menudigital/pkg/config"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/security"
)

type fakeAdminRepo struct {
	admins      map[string]*models.Admin
	lastTouch   string
	createCalls int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*models.Admin{}}
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (*models.Admin, error) {
	if a, ok := f.admins[username]; ok {
		return a, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
}

func (f *fakeAdminRepo) CountAdmins(_ context.Context) (int64, error) {
	return int64(len(f.admins)), nil
}

func (f *fakeAdminRepo) CreateAdmin(_ context.Context, admin *models.Admin) (*models.Admin, error) {
	admin.ID = "admin-" + admin.Username
	f.admins[admin.Username] = admin
	f.createCalls++
	return admin, nil
}

func (f *fakeAdminRepo) TouchLastLogin(_ context.Context, id string, _ time.Time) error {
	f.lastTouch = id
	return nil
}

type fakeSessions struct {
	created []string
	revoked []string
	err     error
}

func (f *fakeSessions) Create(_ context.Context, adminID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, adminID)
	return "session-" + adminID, nil
}

func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.revoked = append(f.revoked, sessionID)
	return f.err
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newAuthService(t *testing.T) (Service, *fakeAdminRepo, *fakeSessions) {
	t.Helper()
	repo := newFakeAdminRepo()
	sessions := &fakeSessions{}
	svc, err := NewService(repo, sessions,
		config.JWTConfig{Secret: "secret", Issuer: "menudigital-test", SessionTTLMinutes: 60},
		testPasswordConfig(),
		config.AdminConfig{BootstrapUsername: "admin", BootstrapPassword: "admin123"},
		nil,
	)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc, repo, sessions
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password string) *models.Admin {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := &models.Admin{ID: "admin-1", Username: username, PasswordHash: hash}
	repo.admins[username] = admin
	return admin
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, sessions := newAuthService(t)
	seedAdmin(t, repo, "admin", "secreta123")

	result, err := svc.Login(context.Background(), "admin", "secreta123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected signed token")
	}
	if result.Username != "admin" {
		t.Fatalf("unexpected username %q", result.Username)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions.created))
	}
	if repo.lastTouch != "admin-1" {
		t.Fatal("expected last login touch")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, sessions := newAuthService(t)
	seedAdmin(t, repo, "admin", "secreta123")

	_, err := svc.Login(context.Background(), "admin", "otra")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if len(sessions.created) != 0 {
		t.Fatal("failed login must not create a session")
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc, repo, _ := newAuthService(t)
	seedAdmin(t, repo, "admin", "secreta123")

	_, errUnknown := svc.Login(context.Background(), "nadie", "x")
	_, errWrong := svc.Login(context.Background(), "admin", "x")

	typedUnknown := pkgerrors.As(errUnknown)
	typedWrong := pkgerrors.As(errWrong)
	if typedUnknown == nil || typedWrong == nil {
		t.Fatalf("expected typed errors, got %v / %v", errUnknown, errWrong)
	}
	if typedUnknown.Message() != typedWrong.Message() {
		t.Fatal("unknown user and wrong password must be indistinguishable")
	}
}

func TestLoginSessionFailure(t *testing.T) {
	svc, repo, sessions := newAuthService(t)
	seedAdmin(t, repo, "admin", "secreta123")
	sessions.err = errors.New("redis down")

	_, err := svc.Login(context.Background(), "admin", "secreta123")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newAuthService(t)

	if err := svc.Logout(context.Background(), "session-1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "session-1" {
		t.Fatalf("expected revoked session, got %v", sessions.revoked)
	}
}

func TestEnsureBootstrapAdminSeedsOnce(t *testing.T) {
	svc, repo, _ := newAuthService(t)
	ctx := context.Background()

	if err := svc.EnsureBootstrapAdmin(ctx); err != nil {
		t.Fatalf("EnsureBootstrapAdmin returned error: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected 1 create, got %d", repo.createCalls)
	}

	if err := svc.EnsureBootstrapAdmin(ctx); err != nil {
		t.Fatalf("EnsureBootstrapAdmin returned error: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatal("bootstrap must not run when admins exist")
	}

	result, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("expected bootstrap credentials to work, got %v", err)
	}
	if result.AdminID == "" {
		t.Fatal("expected admin id")
	}
}

func TestEnsureBootstrapAdminSkippedWithoutPassword(t *testing.T) {
	repo := newFakeAdminRepo()
	svc, err := NewService(repo, &fakeSessions{},
		config.JWTConfig{Secret: "secret", Issuer: "test", SessionTTLMinutes: 60},
		testPasswordConfig(),
		config.AdminConfig{BootstrapUsername: "admin"},
		nil,
	)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	if err := svc.EnsureBootstrapAdmin(context.Background()); err != nil {
		t.Fatalf("EnsureBootstrapAdmin returned error: %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("bootstrap must be skipped without a password")
	}
}
