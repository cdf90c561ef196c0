package services

import (
	"errors"
	"testing"

	"menux/lang"
	"menux/models"
)

func burger() models.MenuItem {
	return models.MenuItem{ID: "item_1", CategoryID: "cat_1", Name: "Truffle Smash Burger", Price: dec("45")}
}

func openConfigurator(code string) *Configurator {
	c := NewConfigurator()
	c.Open(burger(), DefaultModifiers(code))
	return c
}

func countFor(c *Configurator, modifierID string) int {
	n := 0
	for _, s := range c.Selected {
		if s.ModifierID == modifierID {
			n++
		}
	}
	return n
}

func TestConfiguratorOpenSeedsSingleModifiers(t *testing.T) {
	c := openConfigurator(lang.En)
	if !c.IsOpen() {
		t.Fatal("configurator should be open")
	}
	if c.Quantity != 1 {
		t.Errorf("Quantity = %d, want 1", c.Quantity)
	}
	if len(c.Selected) != 1 || !c.IsSelected(ModifierSize, "Regular") {
		t.Fatalf("Selected = %+v, want only Size/Regular", c.Selected)
	}
	if !c.Total().Equal(dec("45")) {
		t.Errorf("Total() = %s, want 45", c.Total())
	}
	if missing := c.MissingRequired(); len(missing) != 0 {
		t.Errorf("MissingRequired() = %v, want none", missing)
	}
}

func TestConfiguratorSingleIsExclusive(t *testing.T) {
	c := openConfigurator(lang.En)
	c.Toggle(ModifierSize, "Large")
	if countFor(c, ModifierSize) != 1 || !c.IsSelected(ModifierSize, "Large") {
		t.Fatalf("after Large: %+v", c.Selected)
	}
	c.Toggle(ModifierSize, "Regular")
	if countFor(c, ModifierSize) != 1 || !c.IsSelected(ModifierSize, "Regular") {
		t.Fatalf("after Regular: %+v", c.Selected)
	}
	// re-selecting the active SINGLE option keeps it selected
	c.Toggle(ModifierSize, "Regular")
	if countFor(c, ModifierSize) != 1 {
		t.Fatalf("after Regular twice: %+v", c.Selected)
	}
}

func TestConfiguratorMultiToggleHasPeriodTwo(t *testing.T) {
	c := openConfigurator(lang.En)
	c.Toggle(ModifierAddOns, "Sauce")
	before := append([]models.SelectedOption(nil), c.Selected...)

	c.Toggle(ModifierAddOns, "Cheese")
	if !c.IsSelected(ModifierAddOns, "Cheese") || !c.IsSelected(ModifierAddOns, "Sauce") {
		t.Fatalf("MULTI should allow both: %+v", c.Selected)
	}
	c.Toggle(ModifierAddOns, "Cheese")
	if len(c.Selected) != len(before) {
		t.Fatalf("Selected = %+v, want %+v", c.Selected, before)
	}
	for i := range before {
		if c.Selected[i].ModifierID != before[i].ModifierID || c.Selected[i].Choice != before[i].Choice {
			t.Errorf("Selected[%d] = %+v, want %+v", i, c.Selected[i], before[i])
		}
	}
}

func TestConfiguratorToggleIgnoresUnknown(t *testing.T) {
	c := openConfigurator(lang.En)
	if c.Toggle("nope", "Large") {
		t.Error("unknown modifier should be ignored")
	}
	if c.Toggle(ModifierSize, "Huge") {
		t.Error("unknown option should be ignored")
	}
	closed := NewConfigurator()
	if closed.Toggle(ModifierSize, "Large") {
		t.Error("toggle on closed configurator should be ignored")
	}
}

func TestConfiguratorQuantityFloor(t *testing.T) {
	c := openConfigurator(lang.En)
	c.Decrement()
	if c.Quantity != 1 {
		t.Errorf("Quantity after Decrement at 1 = %d, want 1", c.Quantity)
	}
	c.Increment()
	c.Increment()
	c.Decrement()
	if c.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", c.Quantity)
	}
}

func TestConfiguratorRunningTotal(t *testing.T) {
	c := openConfigurator(lang.En)
	c.Toggle(ModifierSize, "Large")
	c.Toggle(ModifierAddOns, "Cheese")
	c.Increment()
	if !c.UnitPrice().Equal(dec("53")) {
		t.Errorf("UnitPrice() = %s, want 53", c.UnitPrice())
	}
	if !c.Total().Equal(dec("106")) {
		t.Errorf("Total() = %s, want 106", c.Total())
	}
}

func TestConfiguratorCommit(t *testing.T) {
	cart := &Cart{}
	c := openConfigurator(lang.En)
	c.Toggle(ModifierAddOns, "Sauce")
	c.Increment()

	e, err := c.Commit(cart, false)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if e.Quantity != 2 || len(e.SelectedOptions) != 2 {
		t.Errorf("entry = %+v", e)
	}
	if len(cart.Entries) != 1 {
		t.Fatalf("cart has %d entries, want 1", len(cart.Entries))
	}
	if c.IsOpen() || c.Quantity != 1 || c.Selected != nil {
		t.Errorf("configurator not reset: %+v", c)
	}
	if !cart.Total().Equal(dec("94")) {
		t.Errorf("cart total = %s, want 94", cart.Total())
	}

	if _, err := c.Commit(cart, false); !errors.Is(err, ErrNoItemOpen) {
		t.Errorf("Commit on closed = %v, want ErrNoItemOpen", err)
	}
}

func TestConfiguratorCommitSnapshotIsDetached(t *testing.T) {
	cart := &Cart{}
	c := openConfigurator(lang.En)
	if _, err := c.Commit(cart, false); err != nil {
		t.Fatal(err)
	}
	c.Open(burger(), DefaultModifiers(lang.En))
	c.Toggle(ModifierSize, "Large")
	if cart.Entries[0].SelectedOptions[0].Choice != "Regular" {
		t.Errorf("cart entry changed after reopening: %+v", cart.Entries[0].SelectedOptions)
	}
}

func TestConfiguratorStrictRequiredModifier(t *testing.T) {
	mods := []models.Modifier{{
		ID: "sauce", Name: "Sauce", Type: models.SelectionMulti, Required: true,
		Options: []models.ModifierOption{{Label: "BBQ", PriceDelta: dec("1")}},
	}}
	cart := &Cart{}
	c := NewConfigurator()
	c.Open(burger(), mods)

	if _, err := c.Commit(cart, true); !errors.Is(err, ErrMissingModifier) {
		t.Fatalf("strict Commit = %v, want ErrMissingModifier", err)
	}
	if !c.IsOpen() || len(cart.Entries) != 0 {
		t.Fatal("failed strict commit must leave state untouched")
	}
	if _, err := c.Commit(cart, false); err != nil {
		t.Fatalf("permissive Commit: %v", err)
	}
}

func TestConfiguratorClose(t *testing.T) {
	c := openConfigurator(lang.En)
	c.Toggle(ModifierAddOns, "Cheese")
	c.Increment()
	c.Close()
	if c.IsOpen() || c.Item != nil || c.Selected != nil || c.Quantity != 1 {
		t.Errorf("Close left state: %+v", c)
	}
}
