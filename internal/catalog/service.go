package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rossellmestanza/menudigital/pkg/db/models"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// Service exposes back-office catalog management. Writes refresh the
// public snapshot once committed.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	GetConfig(ctx context.Context) (ConfigDTO, error)
	UpdateConfig(ctx context.Context, input UpdateConfigInput) (ConfigDTO, error)
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name     string
	Icon     string
	Position int
	Active   bool
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name     *string
	Icon     *string
	Position *int
	Active   *bool
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID  string
	Name        string
	Description string
	PriceCents  int
	ImageURL    string
	Variables   models.VariableList
	Extras      models.ExtraList
	Position    int
	Active      bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID  *string
	Name        *string
	Description *string
	PriceCents  *int
	ImageURL    *string
	Variables   *models.VariableList
	Extras      *models.ExtraList
	Position    *int
	Active      *bool
}

// UpdateConfigInput holds optional mutation values for the storefront
// configuration.
type UpdateConfigInput struct {
	RestaurantName *string
	LogoURL        *string
	WelcomeMessage *string
	Currency       *string
	WhatsAppNumber *string
	Address        *string
	Phone          *string
	Schedule       *string
	PaymentMethods *[]string
	FacebookURL    *string
	InstagramURL   *string
	TikTokURL      *string
	ThemeColor     *string
}

type repository interface {
	CategoryRepository
	ProductRepository
	ConfigRepository
}

type refresher interface {
	Refresh(ctx context.Context) error
}

type service struct {
	repo   repository
	loader refresher
}

// NewService constructs a catalog service instance.
func NewService(repo repository, loader refresher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	return &service{repo: repo, loader: loader}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, false)
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	category := &models.Category{
		Name:     name,
		Icon:     strings.TrimSpace(input.Icon),
		Position: input.Position,
		Active:   input.Active,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
	}
	s.refresh(ctx)
	return created, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		category.Name = name
	}
	if input.Icon != nil {
		category.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.Position != nil {
		category.Position = *input.Position
	}
	if input.Active != nil {
		category.Active = *input.Active
	}

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	s.refresh(ctx)
	return updated, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, false)
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validateProductInput(input.Name, input.CategoryID, input.PriceCents); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Variables:   input.Variables,
		Extras:      input.Extras,
		Position:    input.Position,
		Active:      input.Active,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	s.refresh(ctx)
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Variables != nil {
		product.Variables = *input.Variables
	}
	if input.Extras != nil {
		product.Extras = *input.Extras
	}
	if input.Position != nil {
		product.Position = *input.Position
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	s.refresh(ctx)
	return updated, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *service) GetConfig(ctx context.Context) (ConfigDTO, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return ConfigDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load config")
	}
	return toConfigDTO(*cfg), nil
}

func (s *service) UpdateConfig(ctx context.Context, input UpdateConfigInput) (ConfigDTO, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return ConfigDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load config")
	}

	if input.RestaurantName != nil {
		name := strings.TrimSpace(*input.RestaurantName)
		if name == "" {
			return ConfigDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
		}
		cfg.RestaurantName = name
	}
	if input.LogoURL != nil {
		cfg.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	if input.WelcomeMessage != nil {
		cfg.WelcomeMessage = strings.TrimSpace(*input.WelcomeMessage)
	}
	if input.Currency != nil {
		currency := strings.TrimSpace(*input.Currency)
		if currency == "" {
			return ConfigDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "currency is required")
		}
		cfg.Currency = currency
	}
	if input.WhatsAppNumber != nil {
		number := normalizeWhatsAppNumber(*input.WhatsAppNumber)
		if number == "" {
			return ConfigDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "whatsapp number is required")
		}
		cfg.WhatsAppNumber = number
	}
	if input.Address != nil {
		cfg.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		cfg.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Schedule != nil {
		cfg.Schedule = strings.TrimSpace(*input.Schedule)
	}
	if input.PaymentMethods != nil {
		cfg.PaymentMethods = append(cfg.PaymentMethods[:0], *input.PaymentMethods...)
	}
	if input.FacebookURL != nil {
		cfg.FacebookURL = strings.TrimSpace(*input.FacebookURL)
	}
	if input.InstagramURL != nil {
		cfg.InstagramURL = strings.TrimSpace(*input.InstagramURL)
	}
	if input.TikTokURL != nil {
		cfg.TikTokURL = strings.TrimSpace(*input.TikTokURL)
	}
	if input.ThemeColor != nil {
		cfg.ThemeColor = strings.TrimSpace(*input.ThemeColor)
	}

	saved, err := s.repo.SaveConfig(ctx, cfg)
	if err != nil {
		return ConfigDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save config")
	}
	s.refresh(ctx)
	return toConfigDTO(*saved), nil
}

// refresh reloads the public snapshot after a write. A refresh failure is
// already logged by the loader and must not fail the admin mutation.
func (s *service) refresh(ctx context.Context) {
	_ = s.loader.Refresh(ctx)
}

func validateProductInput(name, categoryID string, priceCents int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(categoryID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if priceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

// normalizeWhatsAppNumber keeps digits only so wa.me links stay valid.
func normalizeWhatsAppNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
