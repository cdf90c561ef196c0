package services

import (
	"menux/models"

	"github.com/shopspring/decimal"
)

// Cart holds accepted entries in the order they were added.
type Cart struct {
	Entries []models.CartEntry `json:"entries"`
}

// Append adds an entry; entries are never edited in place.
func (c *Cart) Append(e models.CartEntry) {
	c.Entries = append(c.Entries, e)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// Count is the total quantity across entries (the cart badge).
func (c *Cart) Count() int {
	n := 0
	for _, e := range c.Entries {
		n += e.Quantity
	}
	return n
}

// Total sums LineTotal over every entry. Computed on each call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(LineTotal(e))
	}
	return total
}

// LineTotal is (price + option deltas) * quantity.
func LineTotal(e models.CartEntry) decimal.Decimal {
	return unitPrice(e.Price, e.SelectedOptions).Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func unitPrice(base decimal.Decimal, opts []models.SelectedOption) decimal.Decimal {
	p := base
	for _, o := range opts {
		p = p.Add(o.PriceDelta)
	}
	return p
}
