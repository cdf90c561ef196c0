package services

import (
	"strconv"
	"strings"

	"menux/lang"
	"menux/models"
)

const orderSeparator = "--------------------------------"

// FulfillmentLabel is the localized name of an order type.
func FulfillmentLabel(code string, t models.FulfillmentType) string {
	switch t {
	case models.FulfillmentDelivery:
		return lang.T(code, "delivery")
	case models.FulfillmentPickup:
		return lang.T(code, "pickup")
	case models.FulfillmentDineIn:
		return lang.T(code, "dine_in")
	default:
		return string(t)
	}
}

// BuildOrderMessage renders the order text sent to the restaurant. Form values
// are copied verbatim; blank fields stay blank.
func BuildOrderMessage(rc models.RestaurantConfig, form models.CheckoutForm, cart *Cart, code string) string {
	var b strings.Builder

	header := lang.T(code, "checkout")
	if rc.Name != "" {
		header += " - " + rc.Name
	}
	b.WriteString(bold(header) + "\n")
	b.WriteString(orderSeparator + "\n")
	writeField(&b, lang.T(code, "order_type"), FulfillmentLabel(code, form.Type))
	writeField(&b, lang.T(code, "name"), form.Name)
	writeField(&b, lang.T(code, "phone"), form.Phone)
	if form.Type == models.FulfillmentDelivery {
		writeField(&b, lang.T(code, "address"), form.Address)
	}
	if form.Type == models.FulfillmentDineIn {
		writeField(&b, lang.T(code, "table"), form.Table)
	}
	b.WriteString(orderSeparator + "\n")

	for _, e := range cart.Entries {
		b.WriteString(OrderLine(e, code) + "\n")
	}

	b.WriteString(orderSeparator + "\n")
	b.WriteString(bold(lang.T(code, "total")) + ": " + cart.Total().StringFixed(2) + " " + lang.Currency(code, rc.Currency))
	return b.String()
}

// OrderLine is "<qty>x <name>" with the chosen option labels in parentheses.
func OrderLine(e models.CartEntry, code string) string {
	name := lang.Localized(e.ID, code, e.Name, "").Name
	line := strconv.Itoa(e.Quantity) + "x " + name
	if len(e.SelectedOptions) == 0 {
		return line
	}
	choices := make([]string, len(e.SelectedOptions))
	for i, o := range e.SelectedOptions {
		choices[i] = o.Choice
	}
	return line + " (" + strings.Join(choices, ", ") + ")"
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(bold(label) + ": " + value + "\n")
}

func bold(s string) string {
	return "*" + s + "*"
}
