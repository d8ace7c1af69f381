package marketplace

import (
	"context"
	"testing"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

type captureSink struct {
	topics   []string
	messages [][]byte
}

func (c *captureSink) WriteMessage(topic string, msg []byte) error {
	c.topics = append(c.topics, topic)
	c.messages = append(c.messages, msg)
	return nil
}

func newTestMarket(t *testing.T) (*Marketplace, *captureSink) {
	t.Helper()
	m := New(testConfig())
	sink := &captureSink{}
	m.Events = sink

	now := testNow()
	m.ReplaceInventory(
		[]models.DiningHall{
			{ID: "R001", Name: "Campus Cafe", Location: "North Campus"},
			{ID: "R002", Name: "West Campus Market", Location: "West Campus"},
		},
		[]models.FoodItem{
			{ID: "F001", RestaurantID: "R001", Name: "Coffee & Pastry", FoodType: "bakery", OriginalPrice: 150, Quantity: 3, Expiry: now.Add(3 * time.Hour)},
			{ID: "F002", RestaurantID: "R001", Name: "Salad Bar", FoodType: "healthy", OriginalPrice: 200, Quantity: 4, Expiry: now.Add(8 * time.Hour)},
			{ID: "F003", RestaurantID: "R001", Name: "Sandwich Combo", FoodType: "american", OriginalPrice: 240, Quantity: 0, Expiry: now.Add(8 * time.Hour)},
			{ID: "F004", RestaurantID: "R002", Name: "Sushi Roll", FoodType: "asian", OriginalPrice: 320, Quantity: 1, Expiry: now.Add(3 * time.Hour)},
		},
	)

	if _, err := m.RegisterUser("U001", "Alice", "North Campus", models.Preferences{}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	return m, sink
}

func TestSurpriseBagBasics(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	bag, err := m.CreateSurpriseBag("U001", now)
	if err != nil {
		t.Fatalf("CreateSurpriseBag: %v", err)
	}

	if bag.Cost != 0 {
		t.Errorf("surprise bags are free, got cost %v", bag.Cost)
	}
	if bag.Type != models.OrderTypeSurpriseBag {
		t.Errorf("unexpected type %s", bag.Type)
	}
	// 3 items available near North Campus, bag size is capped there
	if len(bag.Items) == 0 || len(bag.Items) > 3 {
		t.Fatalf("bag size out of bounds: %d", len(bag.Items))
	}

	seen := make(map[string]bool)
	for _, item := range bag.Items {
		if seen[item.ID] {
			t.Fatalf("duplicate item %s in bag", item.ID)
		}
		seen[item.ID] = true
		if item.RestaurantID != "R001" {
			t.Errorf("item %s not from the user's area", item.ID)
		}
	}

	// surprise bags never touch the order ledger or inventory quantities
	if m.Ledger.Len() != 0 {
		t.Error("surprise bag must not be recorded in the ledger")
	}
	if qty, _ := m.Inventory.ItemQuantity("R001", "F001"); qty != 3 {
		t.Errorf("surprise bag must not decrement quantity, got %d", qty)
	}
}

func TestSurpriseBagPreferenceFilter(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	// "healthy" matches only F002 by substring containment
	if _, err := m.RegisterUser("U002", "Bob", "North Campus", models.Preferences{Dietary: []string{"healthy"}}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	bag, err := m.CreateSurpriseBag("U002", now)
	if err != nil {
		t.Fatalf("CreateSurpriseBag: %v", err)
	}
	if len(bag.Items) != 1 || bag.Items[0].ID != "F002" {
		t.Fatalf("expected only the healthy item, got %+v", bag.Items)
	}
}

func TestSurpriseBagFallsBackPastPreferences(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	// nothing matches, so the bag samples from everything available
	if _, err := m.RegisterUser("U003", "Cem", "North Campus", models.Preferences{Dietary: []string{"halal"}}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	bag, err := m.CreateSurpriseBag("U003", now)
	if err != nil {
		t.Fatalf("CreateSurpriseBag: %v", err)
	}
	if len(bag.Items) == 0 {
		t.Fatal("expected fallback to all available items")
	}
}

func TestSurpriseBagErrors(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	if _, err := m.CreateSurpriseBag("ghost", now); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := m.RegisterUser("U004", "Dana", "South Pole", models.Preferences{}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if _, err := m.CreateSurpriseBag("U004", now); err != ErrNoInventory {
		t.Fatalf("expected ErrNoInventory, got %v", err)
	}
}

func TestCustomOrderCostAndLedger(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	order, err := m.CreateCustomOrder(context.Background(), "U001", []string{"F001", "F002", "unknown"}, "", now)
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}

	if order.ID != "ORD_0001" {
		t.Errorf("expected ORD_0001, got %s", order.ID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("unknown ids must be dropped, got %d items", len(order.Items))
	}
	// 150*0.3 + 200*0.3
	if order.Cost != 105.0 {
		t.Errorf("expected cost 105.0, got %v", order.Cost)
	}
	if order.Status != models.OrderStatusConfirmed {
		t.Errorf("expected confirmed status, got %s", order.Status)
	}
	if order.ImpactMessage == "" {
		t.Error("expected templated impact message")
	}
	if m.Ledger.Len() != 1 {
		t.Errorf("expected 1 ledger entry, got %d", m.Ledger.Len())
	}

	second, _ := m.CreateCustomOrder(context.Background(), "U001", []string{"F001"}, "", now)
	if second.ID != "ORD_0002" {
		t.Errorf("expected ORD_0002, got %s", second.ID)
	}
}

func TestCustomOrderSnapshotsItems(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	order, err := m.CreateCustomOrder(context.Background(), "U001", []string{"F001"}, "", now)
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}

	// later inventory mutation must not reach the recorded order
	m.Inventory.RemoveItem("R001", "F001")
	if order.Items[0].Name != "Coffee & Pastry" || order.Items[0].DiscountPrice != 45.0 {
		t.Errorf("order snapshot wrong: %+v", order.Items[0])
	}
}

func TestCustomOrderEmptySelection(t *testing.T) {
	m, _ := newTestMarket(t)
	now := testNow()

	order, err := m.CreateCustomOrder(context.Background(), "U001", nil, "", now)
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}
	if len(order.Items) != 0 || order.Cost != 0 {
		t.Errorf("expected empty confirmed order, got %+v", order)
	}
}

type fixedImpact struct{ msg string }

func (f fixedImpact) ImpactMessage(_ context.Context, _ int, _ float64) (string, error) {
	return f.msg, nil
}

func TestCustomOrderUsesImpactProvider(t *testing.T) {
	m, _ := newTestMarket(t)
	m.Impact = fixedImpact{msg: "You rescued lunch for two!"}
	now := testNow()

	order, err := m.CreateCustomOrder(context.Background(), "U001", []string{"F001"}, "", now)
	if err != nil {
		t.Fatalf("CreateCustomOrder: %v", err)
	}
	if order.ImpactMessage != "You rescued lunch for two!" {
		t.Errorf("expected provider message, got %q", order.ImpactMessage)
	}
}
