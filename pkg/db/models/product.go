package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable menu item. Customization metadata lives in the
// Variables and Extras JSONB columns.
type Product struct {
	ID          string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CategoryID  string       `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	PriceCents  int          `gorm:"not null" json:"price_cents"`
	ImageURL    string       `json:"image_url"`
	Variables   VariableList `gorm:"type:jsonb" json:"variables"`
	Extras      ExtraList    `gorm:"type:jsonb" json:"extras"`
	Position    int          `gorm:"not null;default:0" json:"position"`
	Active      bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Variable is a named choice group on a product, e.g. "Tamaño".
type Variable struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

// Option is one pick inside a variable. The price modifier is added to
// the product base price when the option is selected.
type Option struct {
	Name               string `json:"name"`
	PriceModifierCents int    `json:"price_modifier_cents"`
}

// UnmarshalJSON accepts both the canonical object form and the legacy
// bare-string form ("Grande" meaning a zero-modifier option). Legacy
// objects carry priceModifier as a decimal amount in currency units.
func (o *Option) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		o.Name = name
		o.PriceModifierCents = 0
		return nil
	}

	var obj struct {
		Name               string           `json:"name"`
		PriceModifierCents *int             `json:"price_modifier_cents"`
		PriceModifier      *decimal.Decimal `json:"priceModifier"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parsing option: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("option name is required")
	}

	o.Name = obj.Name
	switch {
	case obj.PriceModifierCents != nil:
		o.PriceModifierCents = *obj.PriceModifierCents
	case obj.PriceModifier != nil:
		o.PriceModifierCents = int(obj.PriceModifier.Mul(decimal.NewFromInt(100)).IntPart())
	default:
		o.PriceModifierCents = 0
	}
	return nil
}

// Extra is an optional add-on with its own price.
type Extra struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
}

// UnmarshalJSON accepts the canonical cents form and the legacy form
// where price is a decimal amount in currency units.
func (e *Extra) UnmarshalJSON(data []byte) error {
	var obj struct {
		Name       string           `json:"name"`
		PriceCents *int             `json:"price_cents"`
		Price      *decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parsing extra: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("extra name is required")
	}

	e.Name = obj.Name
	switch {
	case obj.PriceCents != nil:
		e.PriceCents = *obj.PriceCents
	case obj.Price != nil:
		e.PriceCents = int(obj.Price.Mul(decimal.NewFromInt(100)).IntPart())
	default:
		e.PriceCents = 0
	}
	return nil
}

// VariableList maps the variables JSONB column.
type VariableList []Variable

func (v VariableList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func (v *VariableList) Scan(value interface{}) error {
	return scanJSON(value, v)
}

// ExtraList maps the extras JSONB column.
type ExtraList []Extra

func (e ExtraList) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

func (e *ExtraList) Scan(value interface{}) error {
	return scanJSON(value, e)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch raw := value.(type) {
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
