package services

import (
	"menux/lang"
	"menux/models"
)

// MenuSection is one rendered category block.
type MenuSection struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []MenuItemView `json:"items"`
}

type MenuItemView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

type MenuView struct {
	Restaurant models.RestaurantConfig `json:"restaurant"`
	Lang       string                  `json:"lang"`
	Dir        string                  `json:"dir"`
	Currency   string                  `json:"currency"`
	Sections   []MenuSection           `json:"sections"`
	Modifiers  []models.Modifier       `json:"modifiers"`
}

// BuildMenuView localizes the catalog. Empty categories and orphaned items are left out.
func BuildMenuView(cat *models.Catalog, code string) MenuView {
	code = lang.Normalize(code)
	v := MenuView{
		Restaurant: cat.Restaurant,
		Lang:       code,
		Dir:        lang.Dir(code),
		Currency:   lang.Currency(code, cat.Restaurant.Currency),
		Modifiers:  ModifiersFor(cat, code),
	}
	v.Restaurant.TelegramChatID = 0
	for _, c := range cat.VisibleCategories() {
		sec := MenuSection{ID: c.ID, Name: lang.Localized(c.ID, code, c.Name, "").Name}
		for _, it := range cat.ItemsIn(c.ID) {
			txt := lang.Localized(it.ID, code, it.Name, it.Description)
			sec.Items = append(sec.Items, MenuItemView{
				ID:          it.ID,
				Name:        txt.Name,
				Description: txt.Description,
				Price:       it.Price.StringFixed(2),
				Image:       it.Image,
				Tags:        it.Tags,
			})
		}
		v.Sections = append(v.Sections, sec)
	}
	return v
}

type OptionView struct {
	Label      string `json:"label"`
	PriceDelta string `json:"priceDelta"`
	Free       bool   `json:"free"`
	Selected   bool   `json:"selected"`
}

type ModifierView struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Required bool         `json:"required"`
	Options  []OptionView `json:"options"`
}

type EditorView struct {
	Open        bool           `json:"open"`
	ItemID      string         `json:"itemId,omitempty"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Quantity    int            `json:"quantity"`
	Modifiers   []ModifierView `json:"modifiers,omitempty"`
	Total       string         `json:"total"`
}

type CartLineView struct {
	ItemID    string   `json:"itemId"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
	LineTotal string   `json:"lineTotal"`
}

type SessionView struct {
	ID             string              `json:"id"`
	RestaurantID   string              `json:"restaurantId"`
	Lang           string              `json:"lang"`
	Dir            string              `json:"dir"`
	ActiveCategory string              `json:"activeCategory"`
	Editor         EditorView          `json:"editor"`
	Cart           []CartLineView      `json:"cart"`
	Count          int                 `json:"count"`
	Total          string              `json:"total"`
	CheckoutOpen   bool                `json:"checkoutOpen"`
	Form           models.CheckoutForm `json:"form"`
	Effect         *Effect             `json:"effect,omitempty"`
}

func (s *Session) View() SessionView {
	v := SessionView{
		ID:             s.ID,
		RestaurantID:   s.RestaurantID,
		Lang:           s.Lang,
		Dir:            lang.Dir(s.Lang),
		ActiveCategory: s.Tracker.Active,
		Editor:         s.editorView(),
		Cart:           []CartLineView{},
		Count:          s.Cart.Count(),
		Total:          s.Cart.Total().StringFixed(2),
		CheckoutOpen:   s.CheckoutOpen,
		Form:           s.Form,
	}
	for _, e := range s.Cart.Entries {
		line := CartLineView{
			ItemID:    e.ID,
			Name:      lang.Localized(e.ID, s.Lang, e.Name, "").Name,
			Quantity:  e.Quantity,
			Options:   []string{},
			LineTotal: LineTotal(e).StringFixed(2),
		}
		for _, o := range e.SelectedOptions {
			line.Options = append(line.Options, o.Choice)
		}
		v.Cart = append(v.Cart, line)
	}
	return v
}

func (s *Session) editorView() EditorView {
	ed := s.Editor
	v := EditorView{Open: ed.IsOpen(), Quantity: ed.Quantity, Total: ed.Total().StringFixed(2)}
	if !v.Open {
		return v
	}
	txt := lang.Localized(ed.Item.ID, s.Lang, ed.Item.Name, ed.Item.Description)
	v.ItemID = ed.Item.ID
	v.Name = txt.Name
	v.Description = txt.Description
	for _, m := range ed.Modifiers {
		mv := ModifierView{ID: m.ID, Name: m.Name, Type: string(m.Type), Required: m.Required}
		for _, o := range m.Options {
			mv.Options = append(mv.Options, OptionView{
				Label:      o.Label,
				PriceDelta: o.PriceDelta.StringFixed(2),
				Free:       o.PriceDelta.IsZero(),
				Selected:   ed.IsSelected(m.ID, o.Label),
			})
		}
		v.Modifiers = append(v.Modifiers, mv)
	}
	return v
}
