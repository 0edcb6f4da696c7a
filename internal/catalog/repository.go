package catalog

import (
	"context"
	"errors"

	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	FindProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ConfigRepository defines persistence for the storefront configuration row.
type ConfigRepository interface {
	GetConfig(ctx context.Context) (*models.RestaurantConfig, error)
	SaveConfig(ctx context.Context, cfg *models.RestaurantConfig) (*models.RestaurantConfig, error)
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListCategories returns categories ordered by position then name.
func (r *Repository) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Order("position ASC, name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) FindCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category; products cascade at the DB level.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

// ListProducts returns products ordered by category then position.
func (r *Repository) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Order("category_id ASC, position ASC, name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) FindProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// GetConfig returns the singleton configuration row, or defaults when the
// table is still empty.
func (r *Repository) GetConfig(ctx context.Context) (*models.RestaurantConfig, error) {
	var cfg models.RestaurantConfig
	if err := r.db.WithContext(ctx).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			defaults := models.DefaultRestaurantConfig()
			return &defaults, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig upserts the singleton configuration row.
func (r *Repository) SaveConfig(ctx context.Context, cfg *models.RestaurantConfig) (*models.RestaurantConfig, error) {
	var existing models.RestaurantConfig
	err := r.db.WithContext(ctx).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(cfg).Error; err != nil {
			return nil, err
		}
		return cfg, nil
	case err != nil:
		return nil, err
	default:
		cfg.ID = existing.ID
		if err := r.db.WithContext(ctx).Save(cfg).Error; err != nil {
			return nil, err
		}
		return cfg, nil
	}
}
