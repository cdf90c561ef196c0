package services

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"menux/config"
	"menux/lang"
	"menux/models"
)

func demoRestaurant() models.RestaurantConfig {
	return models.RestaurantConfig{ID: "demo", Name: "Burger & Co.", Currency: "SAR", Phone: "+966 55 123 4567"}
}

func demoCart() *Cart {
	c := &Cart{}
	c.Append(models.CartEntry{
		MenuItem: burger(),
		Quantity: 2,
		SelectedOptions: []models.SelectedOption{
			{ModifierID: ModifierSize, ModifierName: "Choose Size", Choice: "Large", PriceDelta: dec("5")},
			{ModifierID: ModifierAddOns, ModifierName: "Add-ons", Choice: "Cheese", PriceDelta: dec("3")},
		},
	})
	c.Append(models.CartEntry{
		MenuItem: models.MenuItem{ID: "item_4", CategoryID: "cat_3", Name: "Loaded Fries", Price: dec("24")},
		Quantity: 1,
	})
	return c
}

func TestBuildOrderMessage(t *testing.T) {
	form := models.CheckoutForm{Type: models.FulfillmentDelivery, Name: "Sara", Phone: "0500000000", Address: "King Fahd Rd"}
	got := BuildOrderMessage(demoRestaurant(), form, demoCart(), lang.En)
	want := strings.Join([]string{
		"*Checkout - Burger & Co.*",
		orderSeparator,
		"*Order Type*: Delivery",
		"*Name*: Sara",
		"*Phone*: 0500000000",
		"*Address*: King Fahd Rd",
		orderSeparator,
		"2x Truffle Smash Burger (Large, Cheese)",
		"1x Loaded Fries",
		orderSeparator,
		"*Total*: 130.00 SAR",
	}, "\n")
	if got != want {
		t.Errorf("BuildOrderMessage =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildOrderMessageArabic(t *testing.T) {
	form := models.CheckoutForm{Type: models.FulfillmentPickup, Name: "سارة", Phone: "050"}
	got := BuildOrderMessage(demoRestaurant(), form, demoCart(), lang.Ar)
	for _, part := range []string{
		"*إتمام الطلب - Burger & Co.*",
		"*طريقة الاستلام*: استلام",
		"2x برجر ترافل سماش (Large, Cheese)",
		"1x بطاطس لوديد",
		"*المجموع*: 130.00 ر.س",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("message missing %q:\n%s", part, got)
		}
	}
}

func TestBuildOrderMessageFieldInclusion(t *testing.T) {
	tests := []struct {
		typ         models.FulfillmentType
		wantAddress bool
		wantTable   bool
	}{
		{models.FulfillmentDelivery, true, false},
		{models.FulfillmentDineIn, false, true},
		{models.FulfillmentPickup, false, false},
	}
	for _, tt := range tests {
		form := models.CheckoutForm{Type: tt.typ, Name: "n", Phone: "p", Address: "addr", Table: "7"}
		m := BuildOrderMessage(demoRestaurant(), form, demoCart(), lang.En)
		if got := strings.Contains(m, "*Address*:"); got != tt.wantAddress {
			t.Errorf("%s: address line = %v, want %v", tt.typ, got, tt.wantAddress)
		}
		if got := strings.Contains(m, "*Table Number*:"); got != tt.wantTable {
			t.Errorf("%s: table line = %v, want %v", tt.typ, got, tt.wantTable)
		}
	}
}

func TestBuildOrderMessageBlankFieldsAndNoName(t *testing.T) {
	rc := demoRestaurant()
	rc.Name = ""
	m := BuildOrderMessage(rc, models.CheckoutForm{Type: models.FulfillmentPickup}, demoCart(), lang.En)
	if !strings.HasPrefix(m, "*Checkout*\n") {
		t.Errorf("header without restaurant name: %q", strings.SplitN(m, "\n", 2)[0])
	}
	if !strings.Contains(m, "*Name*: \n") || !strings.Contains(m, "*Phone*: \n") {
		t.Errorf("blank fields should render as empty values:\n%s", m)
	}
}

func TestDeepLink(t *testing.T) {
	msg := "*Total*: 10.00 SAR\n1x A & B"
	link := DeepLink("https://wa.me/", "966500000000", msg)
	if !strings.HasPrefix(link, "https://wa.me/966500000000?text=") {
		t.Fatalf("DeepLink = %q", link)
	}
	if strings.Contains(link, "+") || strings.Contains(link, " ") {
		t.Errorf("DeepLink must encode spaces as %%20: %q", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("text"); got != msg {
		t.Errorf("decoded text = %q, want %q", got, msg)
	}
}

func TestRecipientPhone(t *testing.T) {
	rc := demoRestaurant()
	tests := []struct {
		recipient string
		phone     string
		want      string
	}{
		{config.RecipientDemo, rc.Phone, "966500000000"},
		{config.RecipientRestaurant, rc.Phone, "966551234567"},
		{config.RecipientRestaurant, "", "966500000000"},
	}
	for _, tt := range tests {
		cfg := config.CheckoutConfig{DemoPhone: "966500000000", Recipient: tt.recipient}
		r := rc
		r.Phone = tt.phone
		if got := RecipientPhone(cfg, r); got != tt.want {
			t.Errorf("RecipientPhone(%s, %q) = %q, want %q", tt.recipient, tt.phone, got, tt.want)
		}
	}
}

func TestComposeOrder(t *testing.T) {
	cfg := config.CheckoutConfig{MessagingBase: "https://wa.me", DemoPhone: "966500000000", Recipient: config.RecipientDemo}
	form := models.CheckoutForm{Type: models.FulfillmentDineIn}

	if _, err := ComposeOrder(cfg, demoRestaurant(), form, &Cart{}, lang.En); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart: err = %v, want ErrEmptyCart", err)
	}

	o, err := ComposeOrder(cfg, demoRestaurant(), form, demoCart(), lang.En)
	if err != nil {
		t.Fatalf("permissive compose with blank form: %v", err)
	}
	if o.Recipient != "966500000000" || !strings.HasPrefix(o.URL, "https://wa.me/966500000000?text=") {
		t.Errorf("order = %+v", o)
	}

	cfg.Strict = true
	if _, err := ComposeOrder(cfg, demoRestaurant(), form, demoCart(), lang.En); !errors.Is(err, ErrInvalidForm) {
		t.Errorf("strict blank form: err = %v, want ErrInvalidForm", err)
	}
	form = models.CheckoutForm{Type: models.FulfillmentDineIn, Name: "n", Phone: "p", Table: "4"}
	if _, err := ComposeOrder(cfg, demoRestaurant(), form, demoCart(), lang.En); err != nil {
		t.Errorf("strict complete form: %v", err)
	}
}
