package menu

// UnitPriceCents computes the price of a single unit with the given
// customization: base price, plus the modifier of each selected option,
// plus the price of each selected extra. Repeated extras count once.
// Selections that do not match a variable, option, or extra on the
// product are ignored.
func UnitPriceCents(p Product, sel Selection) int {
	price := p.PriceCents

	for name, choice := range sel.Variables {
		variable, ok := p.Variable(name)
		if !ok {
			continue
		}
		option, ok := variable.Option(choice)
		if !ok {
			continue
		}
		price += option.PriceModifierCents
	}

	for _, name := range canonicalExtras(sel.Extras) {
		extra, ok := p.Extra(name)
		if !ok {
			continue
		}
		price += extra.PriceCents
	}

	return price
}
