package marketplace

import (
	"strings"
	"sync"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/lucsky/cuid"
)

// Inventory holds every dining hall's surplus collection. A single writer
// mutates at a time; availability scans take the read lock and may run
// concurrently with each other.
type Inventory struct {
	mu        sync.RWMutex
	halls     map[string]*models.DiningHall
	hallOrder []string // insertion order, for deterministic cross-hall scans
}

func NewInventory() *Inventory {
	return &Inventory{
		halls: make(map[string]*models.DiningHall),
	}
}

// AddHall registers a dining hall. Re-adding an existing id replaces its
// metadata but keeps its position and inventory.
func (inv *Inventory) AddHall(hall models.DiningHall) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if existing, ok := inv.halls[hall.ID]; ok {
		existing.Name = hall.Name
		existing.Location = hall.Location
		existing.CuisineType = hall.CuisineType
		return
	}
	h := hall
	if h.Inventory == nil {
		h.Inventory = make([]*models.FoodItem, 0)
	}
	inv.halls[h.ID] = &h
	inv.hallOrder = append(inv.hallOrder, h.ID)
}

// Replace swaps the whole inventory for a fresh dataset. Used by the
// ingestion refresh flow.
func (inv *Inventory) Replace(halls []models.DiningHall, items []models.FoodItem) {
	inv.mu.Lock()
	inv.halls = make(map[string]*models.DiningHall)
	inv.hallOrder = inv.hallOrder[:0]
	inv.mu.Unlock()

	for _, hall := range halls {
		inv.AddHall(hall)
	}
	for _, item := range items {
		inv.AddItem(item.RestaurantID, item)
	}
}

// AddItem appends an item to its hall's collection and returns the item id.
// A missing id is generated; the item id must be unique within the hall.
func (inv *Inventory) AddItem(hallID string, item models.FoodItem) (string, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	hall, ok := inv.halls[hallID]
	if !ok {
		return "", ErrHallNotFound
	}

	if item.ID == "" {
		item.ID = cuid.New()
	}
	item.RestaurantID = hallID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = item.CreatedAt

	hall.Inventory = append(hall.Inventory, &item)
	return item.ID, nil
}

// SetQuantity clamps the requested quantity to zero or above and stamps
// updated_at. Returns false when the item is absent; callers routinely
// probe for existence, so this is not an error.
func (inv *Inventory) SetQuantity(hallID, itemID string, quantity int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item := inv.findItem(hallID, itemID)
	if item == nil {
		return false
	}
	if quantity < 0 {
		quantity = 0
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return true
}

// AdjustQuantity applies a signed delta, clamped at zero.
func (inv *Inventory) AdjustQuantity(hallID, itemID string, delta int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	item := inv.findItem(hallID, itemID)
	if item == nil {
		return false
	}
	quantity := item.Quantity + delta
	if quantity < 0 {
		quantity = 0
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return true
}

// RemoveItem deletes an item from the active collection. Removing an absent
// id is a no-op.
func (inv *Inventory) RemoveItem(hallID, itemID string) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	hall, ok := inv.halls[hallID]
	if !ok {
		return false
	}
	for i, item := range hall.Inventory {
		if item.ID == itemID {
			hall.Inventory = append(hall.Inventory[:i], hall.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Hall returns a hall by id.
func (inv *Inventory) Hall(hallID string) (*models.DiningHall, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	hall, ok := inv.halls[hallID]
	return hall, ok
}

// Halls returns all dining halls in registration order.
func (inv *Inventory) Halls() []*models.DiningHall {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	halls := make([]*models.DiningHall, 0, len(inv.hallOrder))
	for _, id := range inv.hallOrder {
		halls = append(halls, inv.halls[id])
	}
	return halls
}

// AvailableItems returns the hall's non-expired items in insertion order.
// Quantity is deliberately not part of the predicate: an item with zero
// quantity and a future expiry is still offered.
func (inv *Inventory) AvailableItems(hallID string, now time.Time) []models.FoodItem {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	hall, ok := inv.halls[hallID]
	if !ok {
		return nil
	}
	available := make([]models.FoodItem, 0, len(hall.Inventory))
	for _, item := range hall.Inventory {
		if item.AvailableAt(now) {
			available = append(available, *item)
		}
	}
	return available
}

// AllAvailable flattens available items from every hall, annotated with the
// hall's display name and location. When locationFilter is non-empty only
// halls whose location matches by case-insensitive substring containment in
// either direction are included. This is a policy check, not geo-distance.
func (inv *Inventory) AllAvailable(locationFilter string, now time.Time) []models.AvailableItem {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var available []models.AvailableItem
	for _, id := range inv.hallOrder {
		hall := inv.halls[id]
		if locationFilter != "" && !isNearby(locationFilter, hall.Location) {
			continue
		}
		for _, item := range hall.Inventory {
			if !item.AvailableAt(now) {
				continue
			}
			available = append(available, models.AvailableItem{
				FoodItem:           *item,
				Restaurant:         hall.Name,
				RestaurantLocation: hall.Location,
			})
		}
	}
	return available
}

// ItemQuantity reads an item's current quantity.
func (inv *Inventory) ItemQuantity(hallID, itemID string) (int, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	item := inv.findItem(hallID, itemID)
	if item == nil {
		return 0, false
	}
	return item.Quantity, true
}

func (inv *Inventory) findItem(hallID, itemID string) *models.FoodItem {
	hall, ok := inv.halls[hallID]
	if !ok {
		return nil
	}
	for _, item := range hall.Inventory {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

func isNearby(location1, location2 string) bool {
	l1 := strings.ToLower(location1)
	l2 := strings.ToLower(location2)
	return strings.Contains(l2, l1) || strings.Contains(l1, l2)
}
