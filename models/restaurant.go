package models

// RestaurantConfig is the branding owned by the admin side; read-only here.
type RestaurantConfig struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PrimaryColor   string `json:"primaryColor"`
	Currency       string `json:"currency"`
	Logo           string `json:"logo"`
	Phone          string `json:"phone"`
	TelegramChatID int64  `json:"telegramChatId,omitempty"` // 0 when the restaurant has no relay chat
}

// Catalog is one restaurant's menu as loaded for a single render.
type Catalog struct {
	Restaurant RestaurantConfig `json:"restaurant"`
	Categories []Category       `json:"categories"`
	Items      []MenuItem       `json:"items"`
	Modifiers  []Modifier       `json:"modifiers"`
}

// ItemsIn returns the items of a category in catalog order.
func (c *Catalog) ItemsIn(categoryID string) []MenuItem {
	var items []MenuItem
	for _, it := range c.Items {
		if it.CategoryID == categoryID {
			items = append(items, it)
		}
	}
	return items
}

// VisibleCategories returns categories that have at least one item, in display order.
// Empty categories never render a section. Items whose category is missing are
// never reached because iteration is driven by categories.
func (c *Catalog) VisibleCategories() []Category {
	counts := make(map[string]int, len(c.Categories))
	for _, it := range c.Items {
		counts[it.CategoryID]++
	}
	var out []Category
	for _, cat := range c.Categories {
		if counts[cat.ID] > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Item looks up a displayable item. Orphaned items are reported as missing.
func (c *Catalog) Item(id string) (MenuItem, bool) {
	for _, it := range c.Items {
		if it.ID != id {
			continue
		}
		for _, cat := range c.Categories {
			if cat.ID == it.CategoryID {
				return it, true
			}
		}
		return MenuItem{}, false
	}
	return MenuItem{}, false
}
