package menu

// Line is one cart entry. Unit price is snapshotted when the line is
// created so later catalog edits do not reprice items already in the cart.
type Line struct {
	Key            string            `json:"key"`
	ProductID      string            `json:"product_id"`
	Name           string            `json:"name"`
	UnitPriceCents int               `json:"unit_price_cents"`
	Quantity       int               `json:"quantity"`
	Variables      map[string]string `json:"variables,omitempty"`
	Extras         []string          `json:"extras,omitempty"`
}

// SubtotalCents is the line total.
func (l Line) SubtotalCents() int {
	return l.UnitPriceCents * l.Quantity
}

// Cart is an ordered collection of lines. Lines keep their insertion
// order; adding an identical customization merges into the existing line.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add inserts the product with the given customization, merging with an
// existing line when product and signature match. Returns the affected
// line key.
func (c *Cart) Add(p Product, sel Selection, quantity int) string {
	if quantity <= 0 {
		quantity = 1
	}

	key := LineKey(p.ID, sel)
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines[i].Quantity += quantity
			return key
		}
	}

	variables := map[string]string{}
	for k, v := range sel.Variables {
		if v == "" {
			continue
		}
		variables[k] = v
	}
	c.Lines = append(c.Lines, Line{
		Key:            key,
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: UnitPriceCents(p, sel),
		Quantity:       quantity,
		Variables:      variables,
		Extras:         canonicalExtras(sel.Extras),
	})
	return key
}

// UpdateQuantity sets the quantity of the line with the given key. A
// quantity of zero or less removes the line. Unknown keys are a no-op.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		c.Remove(key)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line with the given key. Unknown keys are a no-op.
func (c *Cart) Remove(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalCents sums line subtotals.
func (c *Cart) TotalCents() int {
	total := 0
	for _, line := range c.Lines {
		total += line.SubtotalCents()
	}
	return total
}

// ItemCount sums line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
