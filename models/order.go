package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SelectedOption is a snapshot of one chosen option, independent of later catalog edits.
type SelectedOption struct {
	ModifierID   string          `json:"modifierId"`
	ModifierName string          `json:"name"`
	Choice       string          `json:"choice"`
	PriceDelta   decimal.Decimal `json:"price"`
}

type CartEntry struct {
	MenuItem
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
}

type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "DELIVERY"
	FulfillmentPickup   FulfillmentType = "PICKUP"
	FulfillmentDineIn   FulfillmentType = "DINE_IN"
)

func (f FulfillmentType) Valid() bool {
	switch f {
	case FulfillmentDelivery, FulfillmentPickup, FulfillmentDineIn:
		return true
	}
	return false
}

type CheckoutForm struct {
	Type    FulfillmentType `json:"type"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Table   string          `json:"table"`
}

// NewCheckoutForm starts with delivery selected, like the menu's order-type tabs.
func NewCheckoutForm() CheckoutForm {
	return CheckoutForm{Type: FulfillmentDelivery}
}

// Missing lists the fields required by the fulfillment type that are blank.
func (f CheckoutForm) Missing() []string {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if f.Type == FulfillmentDelivery && strings.TrimSpace(f.Address) == "" {
		missing = append(missing, "address")
	}
	if f.Type == FulfillmentDineIn && strings.TrimSpace(f.Table) == "" {
		missing = append(missing, "table")
	}
	return missing
}
