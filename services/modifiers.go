package services

import (
	"menux/lang"
	"menux/models"

	"github.com/shopspring/decimal"
)

const (
	ModifierSize   = "size"
	ModifierAddOns = "addons"
)

// DefaultModifiers is the size/add-ons pair offered on every item when the
// restaurant has not stored its own modifiers. Labels follow the language.
func DefaultModifiers(code string) []models.Modifier {
	return []models.Modifier{
		{
			ID:       ModifierSize,
			Name:     lang.T(code, "choose_size"),
			Type:     models.SelectionSingle,
			Required: true,
			Options: []models.ModifierOption{
				{Label: lang.T(code, "size_regular"), PriceDelta: decimal.Zero},
				{Label: lang.T(code, "size_large"), PriceDelta: decimal.NewFromInt(5)},
			},
		},
		{
			ID:   ModifierAddOns,
			Name: lang.T(code, "add_ons"),
			Type: models.SelectionMulti,
			Options: []models.ModifierOption{
				{Label: lang.T(code, "addon_cheese"), PriceDelta: decimal.NewFromInt(3)},
				{Label: lang.T(code, "addon_sauce"), PriceDelta: decimal.NewFromInt(2)},
			},
		},
	}
}

// ModifiersFor returns the catalog's modifiers, or the defaults in the given language.
func ModifiersFor(c *models.Catalog, code string) []models.Modifier {
	if c != nil && len(c.Modifiers) > 0 {
		return c.Modifiers
	}
	return DefaultModifiers(code)
}
