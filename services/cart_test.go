package services

import (
	"testing"

	"menux/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(price string, qty int, deltas ...string) models.CartEntry {
	e := models.CartEntry{
		MenuItem: models.MenuItem{ID: "item", Name: "Item", Price: dec(price)},
		Quantity: qty,
	}
	for _, d := range deltas {
		e.SelectedOptions = append(e.SelectedOptions, models.SelectedOption{Choice: d, PriceDelta: dec(d)})
	}
	return e
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		e    models.CartEntry
		want string
	}{
		{entry("45.00", 2, "5.00", "3.00"), "106"},
		{entry("32", 1), "32"},
		{entry("0", 3, "2"), "6"},
		{entry("18.50", 4, "0", "1.25"), "79"},
		{entry("9.99", 3), "29.97"},
	}
	for _, tt := range tests {
		got := LineTotal(tt.e)
		if !got.Equal(dec(tt.want)) {
			t.Errorf("LineTotal(price=%s qty=%d) = %s, want %s", tt.e.Price, tt.e.Quantity, got, tt.want)
		}
	}
}

func TestCartTotalIsOrderIndependent(t *testing.T) {
	a := entry("45", 2, "5", "3")
	b := entry("24", 1)
	c := entry("18", 3, "2")

	forward := &Cart{}
	for _, e := range []models.CartEntry{a, b, c} {
		forward.Append(e)
	}
	reversed := &Cart{}
	for _, e := range []models.CartEntry{c, b, a} {
		reversed.Append(e)
	}

	want := dec("190") // 106 + 24 + 60
	if !forward.Total().Equal(want) {
		t.Errorf("Total() = %s, want %s", forward.Total(), want)
	}
	if !forward.Total().Equal(reversed.Total()) {
		t.Errorf("Total differs by order: %s vs %s", forward.Total(), reversed.Total())
	}
}

func TestCartCountAndEmpty(t *testing.T) {
	c := &Cart{}
	if !c.IsEmpty() || c.Count() != 0 || !c.Total().IsZero() {
		t.Fatalf("new cart: empty=%v count=%d total=%s", c.IsEmpty(), c.Count(), c.Total())
	}
	c.Append(entry("10", 2))
	c.Append(entry("5", 3))
	if c.IsEmpty() {
		t.Error("cart should not be empty")
	}
	if c.Count() != 5 {
		t.Errorf("Count() = %d, want 5", c.Count())
	}
	if c.Entries[0].Quantity != 2 || c.Entries[1].Quantity != 3 {
		t.Error("insertion order not preserved")
	}
}
