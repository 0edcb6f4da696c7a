// Package order turns a finished cart into a WhatsApp order message.
package order

import (
	"strings"

	"github.com/rossellmestanza/menudigital/internal/menu"
	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// Type is the fulfillment mode chosen at checkout.
type Type string

const (
	TypeDelivery Type = "delivery"
	TypeTakeaway Type = "llevar"
	TypeDineIn   Type = "mesa"
)

// IsValid reports whether the order type is one of the supported modes.
func (t Type) IsValid() bool {
	switch t {
	case TypeDelivery, TypeTakeaway, TypeDineIn:
		return true
	}
	return false
}

// Customer carries the checkout contact fields. Which fields are required
// depends on the order type.
type Customer struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Reference     string `json:"reference"`
	PaymentMethod string `json:"payment_method"`
	Observations  string `json:"observations"`
	Table         string `json:"table"`
}

// Order is the finished composition handed to the formatter.
type Order struct {
	Type       Type
	Customer   Customer
	Lines      []menu.Line
	TotalCents int
}

// requiredFields lists the customer fields each order type demands, in the
// order they are reported when missing.
func requiredFields(t Type) []fieldCheck {
	switch t {
	case TypeDelivery:
		return []fieldCheck{
			{"nombre", func(c Customer) string { return c.Name }},
			{"teléfono", func(c Customer) string { return c.Phone }},
			{"dirección", func(c Customer) string { return c.Address }},
			{"método de pago", func(c Customer) string { return c.PaymentMethod }},
		}
	case TypeTakeaway:
		return []fieldCheck{
			{"nombre", func(c Customer) string { return c.Name }},
			{"teléfono", func(c Customer) string { return c.Phone }},
		}
	case TypeDineIn:
		return []fieldCheck{
			{"mesa", func(c Customer) string { return c.Table }},
		}
	}
	return nil
}

type fieldCheck struct {
	label string
	value func(Customer) string
}

// ValidateCustomer rejects a checkout missing any field its order type
// requires. The error names every missing field, not just the first.
func ValidateCustomer(t Type, c Customer) error {
	if !t.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "tipo de pedido inválido").
			WithDetails(map[string]any{"order_type": string(t)})
	}

	var missing []string
	for _, field := range requiredFields(t) {
		if strings.TrimSpace(field.value(c)) == "" {
			missing = append(missing, field.label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeValidation,
		"completa: "+strings.Join(missing, ", "),
	).WithDetails(map[string]any{"missing_fields": missing})
}
