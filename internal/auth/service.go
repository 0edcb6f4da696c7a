package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/rossellmestanza/menudigital/pkg/auth"
	"github.com/rossellmestanza/menudigital/pkg/config"
	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"github.com/rossellmestanza/menudigital/pkg/logger"
	"github.com/rossellmestanza/menudigital/pkg/security"
)

// Service exposes admin authentication operations.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	EnsureBootstrapAdmin(ctx context.Context) error
}

// LoginResult carries the signed token handed to the browser.
type LoginResult struct {
	Token     string    `json:"token"`
	AdminID   string    `json:"admin_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionManager interface {
	Create(ctx context.Context, adminID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	repo     AdminRepository
	sessions sessionManager
	jwtCfg   config.JWTConfig
	passCfg  config.PasswordConfig
	adminCfg config.AdminConfig
	logg     *logger.Logger
}

// NewService constructs an auth service instance.
func NewService(repo AdminRepository, sessions sessionManager, jwtCfg config.JWTConfig, passCfg config.PasswordConfig, adminCfg config.AdminConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		passCfg:  passCfg,
		adminCfg: adminCfg,
		logg:     logg,
	}, nil
}

// Login verifies credentials and mints a session-bound token. Unknown
// usernames and wrong passwords return the same generic error.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalidCredentials()
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find admin")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, invalidCredentials()
	}

	sessionID, err := s.sessions.Create(ctx, admin.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	now := time.Now()
	token, err := pkgAuth.MintAdminToken(s.jwtCfg, now, pkgAuth.AdminTokenPayload{
		AdminID:  admin.ID,
		Username: admin.Username,
		JTI:      sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if err := s.repo.TouchLastLogin(ctx, admin.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithAdminID(ctx, admin.ID), "failed to record last login")
	}

	return &LoginResult{
		Token:     token,
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: now.Add(s.jwtCfg.SessionTTL()),
	}, nil
}

// Logout revokes the session so the token stops being accepted.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// EnsureBootstrapAdmin seeds the first back-office user when a bootstrap
// password is configured and no admins exist yet.
func (s *service) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.adminCfg.BootstrapPassword == "" {
		return nil
	}

	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count admins")
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(s.adminCfg.BootstrapPassword, s.passCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash bootstrap password")
	}

	admin := &models.Admin{
		Username:     strings.TrimSpace(s.adminCfg.BootstrapUsername),
		PasswordHash: hash,
	}
	if _, err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create bootstrap admin")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "bootstrap admin created")
	}
	return nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciales inválidas")
}
