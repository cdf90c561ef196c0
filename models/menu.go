package models

import "github.com/shopspring/decimal"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MenuItem struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Tags        []string        `json:"tags"`
}

// SelectionType says how many options of a modifier can be active at once.
type SelectionType string

const (
	SelectionSingle SelectionType = "SINGLE"
	SelectionMulti  SelectionType = "MULTI"
)

type ModifierOption struct {
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

type Modifier struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Type     SelectionType    `json:"type"`
	Required bool             `json:"required"`
	Options  []ModifierOption `json:"options"`
}

// Option returns the option with the given label.
func (m Modifier) Option(label string) (ModifierOption, bool) {
	for _, o := range m.Options {
		if o.Label == label {
			return o, true
		}
	}
	return ModifierOption{}, false
}

// DefaultOption is the option a SINGLE modifier starts with: the first free
// option, or the first option when every option costs extra.
func (m Modifier) DefaultOption() (ModifierOption, bool) {
	if len(m.Options) == 0 {
		return ModifierOption{}, false
	}
	for _, o := range m.Options {
		if o.PriceDelta.IsZero() {
			return o, true
		}
	}
	return m.Options[0], true
}
