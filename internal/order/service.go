package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/rossellmestanza/menudigital/internal/catalog"
	"github.com/rossellmestanza/menudigital/internal/menu"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// Service finishes a cart into a WhatsApp order.
type Service interface {
	Checkout(ctx context.Context, token string, input CheckoutInput) (*CheckoutResult, error)
}

// CheckoutInput holds the validated checkout payload.
type CheckoutInput struct {
	Type     Type
	Customer Customer
}

// CheckoutResult carries the rendered message and the link the storefront
// opens to hand the order to the restaurant.
type CheckoutResult struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
	TotalCents  int    `json:"total_cents"`
	Currency    string `json:"currency"`
}

type cartAccess interface {
	Get(ctx context.Context, token string) (string, *menu.Cart, error)
	Clear(ctx context.Context, token string) (*menu.Cart, error)
}

type configSource interface {
	Snapshot() catalog.Snapshot
}

type service struct {
	carts  cartAccess
	config configSource
}

// NewService constructs an order service instance.
func NewService(carts cartAccess, config configSource) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if config == nil {
		return nil, fmt.Errorf("config source required")
	}
	return &service{carts: carts, config: config}, nil
}

// Checkout validates the customer data for the order type, renders the
// message, and clears the cart once the link is built.
func (s *service) Checkout(ctx context.Context, token string, input CheckoutInput) (*CheckoutResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	if err := ValidateCustomer(input.Type, input.Customer); err != nil {
		return nil, err
	}

	_, cart, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "el carrito está vacío")
	}

	snap := s.config.Snapshot()
	cfg := FormatConfig{
		Currency:       snap.Config.Currency,
		WhatsAppNumber: snap.Config.WhatsAppNumber,
	}
	if cfg.Currency == "" {
		cfg.Currency = "S/"
	}
	if cfg.WhatsAppNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "whatsapp number is not configured")
	}

	o := Order{
		Type:       input.Type,
		Customer:   input.Customer,
		Lines:      cart.Lines,
		TotalCents: cart.TotalCents(),
	}

	message := Format(o, cfg)
	result := &CheckoutResult{
		Message:     message,
		WhatsAppURL: WhatsAppURL(cfg.WhatsAppNumber, message),
		TotalCents:  o.TotalCents,
		Currency:    cfg.Currency,
	}

	if _, err := s.carts.Clear(ctx, token); err != nil {
		return nil, err
	}
	return result, nil
}
