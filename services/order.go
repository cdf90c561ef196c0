package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"menux/config"
	"menux/models"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidForm = errors.New("checkout form incomplete")
)

// Opener hands a finished deep link to whatever can open it (a browser tab,
// an HTTP client). It is fire-and-forget.
type Opener interface {
	Open(ctx context.Context, link string)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string)

func (f OpenerFunc) Open(ctx context.Context, link string) { f(ctx, link) }

// Order is one composed checkout, ready to be opened.
type Order struct {
	Message   string `json:"message"`
	URL       string `json:"url"`
	Recipient string `json:"recipient"`
}

// RecipientPhone picks the number the order goes to: the demo number, or the
// restaurant's own contact when configured and present.
func RecipientPhone(cfg config.CheckoutConfig, rc models.RestaurantConfig) string {
	if cfg.Recipient == config.RecipientRestaurant {
		if p := digitsOnly(rc.Phone); p != "" {
			return p
		}
	}
	return digitsOnly(cfg.DemoPhone)
}

// DeepLink builds <base>/<phone>?text=<message> with the message percent-encoded.
func DeepLink(base, phone, message string) string {
	return strings.TrimRight(base, "/") + "/" + phone + "?text=" + encodeComponent(message)
}

// ComposeOrder renders the message and link for the cart. The cart must not be
// empty; the form is only checked in strict mode.
func ComposeOrder(cfg config.CheckoutConfig, rc models.RestaurantConfig, form models.CheckoutForm, cart *Cart, code string) (Order, error) {
	if cart == nil || cart.IsEmpty() {
		return Order{}, ErrEmptyCart
	}
	if cfg.Strict {
		if missing := form.Missing(); len(missing) > 0 {
			return Order{}, fmt.Errorf("%w: %s", ErrInvalidForm, strings.Join(missing, ", "))
		}
	}
	msg := BuildOrderMessage(rc, form, cart, code)
	phone := RecipientPhone(cfg, rc)
	return Order{
		Message:   msg,
		URL:       DeepLink(cfg.MessagingBase, phone, msg),
		Recipient: phone,
	}, nil
}

// encodeComponent escapes like a URI component: spaces become %20, not '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
