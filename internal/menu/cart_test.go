package menu

import "testing"

func TestCartAddMergesSameCustomization(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()
	sel := Selection{
		Variables: map[string]string{"Tamaño": "Grande"},
		Extras:    []string{"Queso extra"},
	}

	key1 := cart.Add(p, sel, 1)
	key2 := cart.Add(p, Selection{
		Variables: map[string]string{"Tamaño": "Grande"},
		Extras:    []string{"Queso extra"},
	}, 2)

	if key1 != key2 {
		t.Fatalf("expected same line key, got %q vs %q", key1, key2)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", cart.Lines[0].Quantity)
	}
}

func TestCartAddDistinctCustomizations(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()

	cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 1)
	cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Personal"}}, 1)

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
}

func TestCartAddKeepsSeparatorNamesDistinct(t *testing.T) {
	cart := &Cart{}
	p := Product{
		ID:         "prod-1",
		Name:       "Combo",
		PriceCents: 1000,
		Extras: []Extra{
			{Name: "a", PriceCents: 100},
			{Name: "b", PriceCents: 200},
			{Name: "a,b", PriceCents: 1000},
		},
	}

	cart.Add(p, Selection{Extras: []string{"a", "b"}}, 1)
	cart.Add(p, Selection{Extras: []string{"a,b"}}, 1)

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if got := cart.Lines[0].UnitPriceCents; got != 1300 {
		t.Fatalf("expected first line at 1300, got %d", got)
	}
	if got := cart.Lines[1].UnitPriceCents; got != 2000 {
		t.Fatalf("expected second line at 2000, got %d", got)
	}
}

func TestCartAddCollapsesDuplicateExtras(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()

	key1 := cart.Add(p, Selection{Extras: []string{"Queso extra"}}, 1)
	key2 := cart.Add(p, Selection{Extras: []string{"Queso extra", "Queso extra"}}, 1)

	if key1 != key2 {
		t.Fatalf("expected repeated extras to merge, got %q vs %q", key1, key2)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].UnitPriceCents != 1150 {
		t.Fatalf("expected 1150 per unit, got %d", cart.Lines[0].UnitPriceCents)
	}
	if extras := cart.Lines[0].Extras; len(extras) != 1 || extras[0] != "Queso extra" {
		t.Fatalf("expected stored extras collapsed, got %v", extras)
	}
}

func TestCartAddSnapshotsUnitPrice(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()
	sel := Selection{
		Variables: map[string]string{"Tamaño": "Grande"},
		Extras:    []string{"Queso extra"},
	}

	cart.Add(p, sel, 1)
	if cart.Lines[0].UnitPriceCents != 1450 {
		t.Fatalf("expected snapshot 1450, got %d", cart.Lines[0].UnitPriceCents)
	}

	// later price edits must not reprice the stored line
	p.PriceCents = 2000
	if cart.Lines[0].UnitPriceCents != 1450 {
		t.Fatalf("line repriced unexpectedly: %d", cart.Lines[0].UnitPriceCents)
	}
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	cart := &Cart{}
	key := cart.Add(burgerProduct(), Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 2)

	cart.UpdateQuantity(key, 0)
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestCartUpdateQuantitySets(t *testing.T) {
	cart := &Cart{}
	key := cart.Add(burgerProduct(), Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 1)

	cart.UpdateQuantity(key, 5)
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Lines[0].Quantity)
	}
}

func TestCartRemoveUnknownKeyNoOp(t *testing.T) {
	cart := &Cart{}
	cart.Add(burgerProduct(), Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 1)

	cart.Remove("missing-key")
	cart.UpdateQuantity("missing-key", 4)
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Fatal("unknown keys must not mutate the cart")
	}
}

func TestCartPreservesInsertionOrderOnMerge(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()

	first := cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Personal"}}, 1)
	cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 1)
	cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Personal"}}, 1)

	if cart.Lines[0].Key != first {
		t.Fatal("merge must keep the original line position")
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected first line quantity 2, got %d", cart.Lines[0].Quantity)
	}
}

func TestCartTotalCents(t *testing.T) {
	cart := &Cart{}
	p := burgerProduct()

	// 2 x 14.50 + 1 x 10.00 = 39.00, then drop to check recompute
	cart.Add(p, Selection{
		Variables: map[string]string{"Tamaño": "Grande"},
		Extras:    []string{"Queso extra"},
	}, 2)
	key := cart.Add(p, Selection{Variables: map[string]string{"Tamaño": "Personal"}}, 1)

	if got := cart.TotalCents(); got != 3900 {
		t.Fatalf("expected total 3900, got %d", got)
	}
	if got := cart.ItemCount(); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}

	cart.Remove(key)
	if got := cart.TotalCents(); got != 2900 {
		t.Fatalf("expected total 2900 after removal, got %d", got)
	}
}

func TestCartClear(t *testing.T) {
	cart := &Cart{}
	cart.Add(burgerProduct(), Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 3)

	cart.Clear()
	if !cart.IsEmpty() || cart.TotalCents() != 0 {
		t.Fatal("expected cleared cart")
	}
}

func TestCartAddDefaultsQuantity(t *testing.T) {
	cart := &Cart{}
	cart.Add(burgerProduct(), Selection{Variables: map[string]string{"Tamaño": "Grande"}}, 0)
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", cart.Lines[0].Quantity)
	}
}
