package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"gorm.io/gorm"
)

// AdminRepository defines persistence operations for back-office users.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// Repository wires admin persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
