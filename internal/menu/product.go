// Package menu holds the order-composition engine: product customization,
// pricing, selection validation, and the session cart.
package menu

// Option is one pick inside a variable.
type Option struct {
	Name               string `json:"name"`
	PriceModifierCents int    `json:"price_modifier_cents"`
}

// Variable is a named choice group on a product, e.g. "Tamaño".
type Variable struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

// Extra is an optional add-on with its own price.
type Extra struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
}

// Product is a sellable item as served to the storefront.
type Product struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"category_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PriceCents  int        `json:"price_cents"`
	ImageURL    string     `json:"image_url"`
	Variables   []Variable `json:"variables"`
	Extras      []Extra    `json:"extras"`
	Position    int        `json:"position"`
	Active      bool       `json:"active"`
}

// Selection captures the customer's customization of a product: the chosen
// option per variable name, plus the names of the picked extras.
type Selection struct {
	Variables map[string]string `json:"variables"`
	Extras    []string          `json:"extras"`
}

// Variable returns the variable with the given name, if present.
func (p Product) Variable(name string) (Variable, bool) {
	for _, v := range p.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Option returns the option with the given name, if present.
func (v Variable) Option(name string) (Option, bool) {
	for _, o := range v.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Extra returns the extra with the given name, if present.
func (p Product) Extra(name string) (Extra, bool) {
	for _, e := range p.Extras {
		if e.Name == name {
			return e, true
		}
	}
	return Extra{}, false
}
