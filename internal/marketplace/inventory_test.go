package marketplace

import (
	"testing"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

func testNow() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func seedInventory(t *testing.T, now time.Time) *Inventory {
	t.Helper()
	inv := NewInventory()
	inv.AddHall(models.DiningHall{ID: "R001", Name: "Campus Cafe", Location: "North Campus"})
	inv.AddHall(models.DiningHall{ID: "R002", Name: "Main Dining Hall", Location: "Central Campus"})

	items := []models.FoodItem{
		{ID: "F001", Name: "Coffee & Pastry", FoodType: "bakery", OriginalPrice: 150, Quantity: 3, Expiry: now.Add(3 * time.Hour)},
		{ID: "F002", Name: "Sandwich Combo", FoodType: "american", OriginalPrice: 240, Quantity: 0, Expiry: now.Add(8 * time.Hour)},
		{ID: "F003", Name: "Stale Bagel", FoodType: "bakery", OriginalPrice: 100, Quantity: 5, Expiry: now.Add(-time.Hour)},
	}
	for _, item := range items {
		if _, err := inv.AddItem("R001", item); err != nil {
			t.Fatalf("AddItem(%s): %v", item.ID, err)
		}
	}
	if _, err := inv.AddItem("R002", models.FoodItem{ID: "F004", Name: "Pasta Bowl", FoodType: "italian", OriginalPrice: 280, Quantity: 2, Expiry: now.Add(3 * time.Hour)}); err != nil {
		t.Fatalf("AddItem(F004): %v", err)
	}
	return inv
}

func TestAvailabilityIgnoresQuantity(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	available := inv.AvailableItems("R001", now)
	if len(available) != 2 {
		t.Fatalf("expected 2 available items, got %d", len(available))
	}
	// F002 has zero quantity but a future expiry, so it is still offered
	found := false
	for _, item := range available {
		if item.ID == "F002" {
			found = true
			if item.Quantity != 0 {
				t.Errorf("expected quantity 0 preserved, got %d", item.Quantity)
			}
		}
		if item.ID == "F003" {
			t.Errorf("expired item F003 should not be available")
		}
	}
	if !found {
		t.Errorf("zero-quantity item F002 should be available")
	}
}

func TestAddItemGeneratesID(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	id, err := inv.AddItem("R001", models.FoodItem{Name: "Fruit Cup", FoodType: "healthy", Expiry: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if qty, ok := inv.ItemQuantity("R001", id); !ok || qty != 0 {
		t.Errorf("expected item stored with quantity 0, got %d ok=%v", qty, ok)
	}
}

func TestAddItemUnknownHall(t *testing.T) {
	inv := NewInventory()
	if _, err := inv.AddItem("nope", models.FoodItem{Name: "x"}); err != ErrHallNotFound {
		t.Fatalf("expected ErrHallNotFound, got %v", err)
	}
}

func TestSetQuantityClampsNegative(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	if ok := inv.SetQuantity("R001", "F001", -5); !ok {
		t.Fatal("expected item to exist")
	}
	if qty, _ := inv.ItemQuantity("R001", "F001"); qty != 0 {
		t.Errorf("expected quantity clamped to 0, got %d", qty)
	}

	if ok := inv.SetQuantity("R001", "missing", 3); ok {
		t.Error("expected false for missing item")
	}
}

func TestAdjustQuantity(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	inv.AdjustQuantity("R001", "F001", -10)
	if qty, _ := inv.ItemQuantity("R001", "F001"); qty != 0 {
		t.Errorf("expected clamp at 0, got %d", qty)
	}
	inv.AdjustQuantity("R001", "F001", 4)
	if qty, _ := inv.ItemQuantity("R001", "F001"); qty != 4 {
		t.Errorf("expected 4, got %d", qty)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	if ok := inv.RemoveItem("R001", "F001"); !ok {
		t.Fatal("expected removal to succeed")
	}
	if ok := inv.RemoveItem("R001", "F001"); ok {
		t.Fatal("expected second removal to report false")
	}
}

func TestAllAvailableLocationFilter(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	all := inv.AllAvailable("", now)
	if len(all) != 3 {
		t.Fatalf("expected 3 available items with no filter, got %d", len(all))
	}

	north := inv.AllAvailable("north campus", now)
	for _, item := range north {
		if item.RestaurantLocation != "North Campus" {
			t.Errorf("unexpected location %s", item.RestaurantLocation)
		}
	}
	if len(north) != 2 {
		t.Fatalf("expected 2 items near North Campus, got %d", len(north))
	}

	// containment works in both directions
	if got := inv.AllAvailable("North", now); len(got) != 2 {
		t.Errorf("substring filter should match, got %d items", len(got))
	}
}

func TestHallsKeepInsertionOrder(t *testing.T) {
	inv := NewInventory()
	for _, id := range []string{"c", "a", "b"} {
		inv.AddHall(models.DiningHall{ID: id})
	}
	halls := inv.Halls()
	want := []string{"c", "a", "b"}
	for i, hall := range halls {
		if hall.ID != want[i] {
			t.Fatalf("order not preserved: got %s at %d", hall.ID, i)
		}
	}
}

func TestReAddHallKeepsInventory(t *testing.T) {
	now := testNow()
	inv := seedInventory(t, now)

	inv.AddHall(models.DiningHall{ID: "R001", Name: "Renamed Cafe", Location: "North Campus"})
	hall, ok := inv.Hall("R001")
	if !ok {
		t.Fatal("hall missing")
	}
	if hall.Name != "Renamed Cafe" {
		t.Errorf("metadata not updated: %s", hall.Name)
	}
	if len(hall.Inventory) == 0 {
		t.Error("inventory lost on re-add")
	}
}
