package services

import (
	"errors"
	"fmt"
	"strings"

	"menux/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNoItemOpen      = errors.New("no item is open")
	ErrMissingModifier = errors.New("required modifier not selected")
)

const (
	ConfiguratorClosed = "CLOSED"
	ConfiguratorOpen   = "OPEN"
)

// Configurator is the item detail sheet: modifier choices and quantity for one item.
type Configurator struct {
	State     string                  `json:"state"`
	Item      *models.MenuItem        `json:"item,omitempty"`
	Modifiers []models.Modifier       `json:"modifiers,omitempty"`
	Quantity  int                     `json:"quantity"`
	Selected  []models.SelectedOption `json:"selected"`
}

func NewConfigurator() *Configurator {
	return &Configurator{State: ConfiguratorClosed, Quantity: 1}
}

func (c *Configurator) IsOpen() bool {
	return c.State == ConfiguratorOpen && c.Item != nil
}

// Open shows an item. Quantity resets to 1 and every SINGLE modifier gets its
// default option so the running price is always defined.
func (c *Configurator) Open(item models.MenuItem, modifiers []models.Modifier) {
	c.State = ConfiguratorOpen
	c.Item = &item
	c.Modifiers = modifiers
	c.Quantity = 1
	c.Selected = nil
	for _, m := range modifiers {
		if m.Type != models.SelectionSingle {
			continue
		}
		if opt, ok := m.DefaultOption(); ok {
			c.Selected = append(c.Selected, selectedFrom(m, opt))
		}
	}
}

// Close discards the item and every in-progress selection.
func (c *Configurator) Close() {
	c.State = ConfiguratorClosed
	c.Item = nil
	c.Modifiers = nil
	c.Quantity = 1
	c.Selected = nil
}

// Toggle selects or deselects an option. SINGLE modifiers replace their
// current choice, MULTI modifiers flip membership. Unknown ids are ignored.
func (c *Configurator) Toggle(modifierID, label string) bool {
	if !c.IsOpen() {
		return false
	}
	mod, ok := c.modifier(modifierID)
	if !ok {
		return false
	}
	opt, ok := mod.Option(label)
	if !ok {
		return false
	}

	if mod.Type == models.SelectionSingle {
		c.Selected = append(c.without(func(s models.SelectedOption) bool {
			return s.ModifierID == mod.ID
		}), selectedFrom(mod, opt))
		return true
	}

	if c.IsSelected(mod.ID, opt.Label) {
		c.Selected = c.without(func(s models.SelectedOption) bool {
			return s.ModifierID == mod.ID && s.Choice == opt.Label
		})
		return true
	}
	c.Selected = append(c.Selected, selectedFrom(mod, opt))
	return true
}

func (c *Configurator) IsSelected(modifierID, label string) bool {
	for _, s := range c.Selected {
		if s.ModifierID == modifierID && s.Choice == label {
			return true
		}
	}
	return false
}

func (c *Configurator) Increment() {
	c.Quantity++
}

// Decrement lowers the quantity, never below 1.
func (c *Configurator) Decrement() {
	if c.Quantity > 1 {
		c.Quantity--
	}
}

// UnitPrice is the base price plus every selected delta.
func (c *Configurator) UnitPrice() decimal.Decimal {
	if c.Item == nil {
		return decimal.Zero
	}
	return unitPrice(c.Item.Price, c.Selected)
}

// Total is what the add button shows.
func (c *Configurator) Total() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// MissingRequired names required modifiers with nothing selected.
func (c *Configurator) MissingRequired() []string {
	var missing []string
	for _, m := range c.Modifiers {
		if !m.Required {
			continue
		}
		found := false
		for _, s := range c.Selected {
			if s.ModifierID == m.ID {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, m.Name)
		}
	}
	return missing
}

// Commit appends the configured item to cart and closes the sheet.
// With strict set, unselected required modifiers block the commit.
func (c *Configurator) Commit(cart *Cart, strict bool) (models.CartEntry, error) {
	if !c.IsOpen() {
		return models.CartEntry{}, ErrNoItemOpen
	}
	if strict {
		if missing := c.MissingRequired(); len(missing) > 0 {
			return models.CartEntry{}, fmt.Errorf("%w: %s", ErrMissingModifier, strings.Join(missing, ", "))
		}
	}
	selected := make([]models.SelectedOption, len(c.Selected))
	copy(selected, c.Selected)
	entry := models.CartEntry{
		MenuItem:        *c.Item,
		Quantity:        c.Quantity,
		SelectedOptions: selected,
	}
	cart.Append(entry)
	c.Close()
	return entry, nil
}

func (c *Configurator) modifier(id string) (models.Modifier, bool) {
	for _, m := range c.Modifiers {
		if m.ID == id {
			return m, true
		}
	}
	return models.Modifier{}, false
}

func (c *Configurator) without(drop func(models.SelectedOption) bool) []models.SelectedOption {
	out := make([]models.SelectedOption, 0, len(c.Selected))
	for _, s := range c.Selected {
		if !drop(s) {
			out = append(out, s)
		}
	}
	return out
}

func selectedFrom(m models.Modifier, o models.ModifierOption) models.SelectedOption {
	return models.SelectedOption{
		ModifierID:   m.ID,
		ModifierName: m.Name,
		Choice:       o.Label,
		PriceDelta:   o.PriceDelta,
	}
}
