package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menux/config"
	"menux/lang"
	"menux/models"
)

var (
	ErrUnknownEvent       = errors.New("unknown event")
	ErrUnknownItem        = errors.New("item not on the menu")
	ErrUnknownField       = errors.New("unknown checkout field")
	ErrInvalidFulfillment = errors.New("invalid fulfillment type")
)

type EventType string

const (
	EventSetLanguage    EventType = "set_language"
	EventLayout         EventType = "layout"
	EventScroll         EventType = "scroll"
	EventScrollTo       EventType = "scroll_to_category"
	EventOpenItem       EventType = "open_item"
	EventCloseItem      EventType = "close_item"
	EventToggleOption   EventType = "toggle_option"
	EventIncrement      EventType = "increment"
	EventDecrement      EventType = "decrement"
	EventAddToCart      EventType = "add_to_cart"
	EventOpenCheckout   EventType = "open_checkout"
	EventCloseCheckout  EventType = "close_checkout"
	EventSetFulfillment EventType = "set_fulfillment"
	EventSetField       EventType = "set_field"
)

// Event is one UI action sent by the menu client.
type Event struct {
	Type        EventType              `json:"type"`
	Lang        string                 `json:"lang,omitempty"`
	Sections    []Section              `json:"sections,omitempty"`
	ScrollTop   float64                `json:"scrollTop,omitempty"`
	CategoryID  string                 `json:"categoryId,omitempty"`
	ItemID      string                 `json:"itemId,omitempty"`
	ModifierID  string                 `json:"modifierId,omitempty"`
	Choice      string                 `json:"choice,omitempty"`
	Fulfillment models.FulfillmentType `json:"fulfillment,omitempty"`
	Field       string                 `json:"field,omitempty"`
	Value       string                 `json:"value,omitempty"`
}

// Effect tells the client what to do besides re-rendering.
type Effect struct {
	ScrollTo *float64 `json:"scrollTo,omitempty"`
}

// Session is all state of one customer browsing one restaurant's menu.
// It is owned by a single request at a time; see the API's per-session lock.
type Session struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurantId"`
	Lang         string              `json:"lang"`
	Tracker      *Tracker            `json:"tracker"`
	Editor       *Configurator       `json:"editor"`
	Cart         *Cart               `json:"cart"`
	Form         models.CheckoutForm `json:"form"`
	CheckoutOpen bool                `json:"checkoutOpen"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func NewSession(id string, cat *models.Catalog, code string) *Session {
	return &Session{
		ID:           id,
		RestaurantID: cat.Restaurant.ID,
		Lang:         lang.Normalize(code),
		Tracker:      NewTracker(visibleIDs(cat)),
		Editor:       NewConfigurator(),
		Cart:         &Cart{},
		Form:         models.NewCheckoutForm(),
		CreatedAt:    time.Now(),
	}
}

// Dispatch applies one event. Failed events leave the session unchanged.
func (s *Session) Dispatch(cat *models.Catalog, ev Event, strict bool) (Effect, error) {
	switch ev.Type {
	case EventSetLanguage:
		s.Lang = lang.Normalize(ev.Lang)
		if s.Editor.IsOpen() {
			// modifier labels are per language, so the sheet starts over
			s.Editor.Open(*s.Editor.Item, ModifiersFor(cat, s.Lang))
		}
	case EventLayout:
		s.Tracker.SetLayout(visibleIDs(cat), ev.Sections)
	case EventScroll:
		s.Tracker.OnScroll(ev.ScrollTop)
	case EventScrollTo:
		if target, ok := s.Tracker.ScrollToCategory(ev.CategoryID); ok {
			return Effect{ScrollTo: &target}, nil
		}
	case EventOpenItem:
		item, ok := cat.Item(ev.ItemID)
		if !ok {
			return Effect{}, fmt.Errorf("%w: %s", ErrUnknownItem, ev.ItemID)
		}
		s.Editor.Open(item, ModifiersFor(cat, s.Lang))
	case EventCloseItem:
		s.Editor.Close()
	case EventToggleOption:
		s.Editor.Toggle(ev.ModifierID, ev.Choice)
	case EventIncrement:
		if s.Editor.IsOpen() {
			s.Editor.Increment()
		}
	case EventDecrement:
		s.Editor.Decrement()
	case EventAddToCart:
		if _, err := s.Editor.Commit(s.Cart, strict); err != nil {
			return Effect{}, err
		}
	case EventOpenCheckout:
		if s.Cart.IsEmpty() {
			return Effect{}, ErrEmptyCart
		}
		s.CheckoutOpen = true
	case EventCloseCheckout:
		s.CheckoutOpen = false
	case EventSetFulfillment:
		if !ev.Fulfillment.Valid() {
			return Effect{}, fmt.Errorf("%w: %q", ErrInvalidFulfillment, ev.Fulfillment)
		}
		s.Form.Type = ev.Fulfillment
	case EventSetField:
		return Effect{}, s.setField(ev.Field, ev.Value)
	default:
		return Effect{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return Effect{}, nil
}

func (s *Session) setField(field, value string) error {
	switch field {
	case "name":
		s.Form.Name = value
	case "phone":
		s.Form.Phone = value
	case "address":
		s.Form.Address = value
	case "table":
		s.Form.Table = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Checkout composes the order and passes the link to opener. The cart is
// kept: delivery is not confirmed back to us.
func (s *Session) Checkout(ctx context.Context, cfg config.CheckoutConfig, rc models.RestaurantConfig, opener Opener) (Order, error) {
	o, err := ComposeOrder(cfg, rc, s.Form, s.Cart, s.Lang)
	if err != nil {
		return Order{}, err
	}
	if opener != nil {
		opener.Open(ctx, o.URL)
	}
	return o, nil
}

func visibleIDs(cat *models.Catalog) []string {
	visible := cat.VisibleCategories()
	ids := make([]string, len(visible))
	for i, c := range visible {
		ids[i] = c.ID
	}
	return ids
}
