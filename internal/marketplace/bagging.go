package marketplace

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// CreateSurpriseBag samples a free bag of available items for the user.
// Selection is uniform random without replacement, never score-weighted.
// Surprise bags are not recorded in the ledger and do not decrement
// inventory quantities.
func (m *Marketplace) CreateSurpriseBag(userID string, now time.Time) (*models.SurpriseBag, error) {
	profile, ok := m.Profiles.Get(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	available := m.Inventory.AllAvailable(profile.Location, now)
	if len(available) == 0 {
		return nil, ErrNoInventory
	}

	filtered := filterByPreferences(available, profile)
	if len(filtered) == 0 {
		// nothing matches the user's preferences; fall back to everything
		filtered = available
	}

	bagSize := m.randIntBetween(m.Config.SurpriseBagMinItems, m.Config.SurpriseBagMaxItems)
	if bagSize > len(filtered) {
		bagSize = len(filtered)
	}

	perm := m.randPerm(len(filtered))
	bagItems := make([]models.AvailableItem, 0, bagSize)
	for _, idx := range perm[:bagSize] {
		bagItems = append(bagItems, filtered[idx])
	}

	bag := &models.SurpriseBag{
		Type:      models.OrderTypeSurpriseBag,
		Cost:      0,
		Items:     bagItems,
		UserID:    userID,
		Timestamp: now,
	}

	event := models.SurpriseBagEvent{
		BaseEvent: models.NewBaseEvent(models.TopicSurpriseBagCreated, now),
		ItemCount: int32(len(bagItems)),
		Items:     joinItemIDs(bagItems),
	}
	event.UserID = userID
	m.emit(models.TopicSurpriseBagCreated, event)

	return bag, nil
}

// CreateCustomOrder builds a discounted order from the user's selected item
// ids. Ids that are not currently available near the user are silently
// dropped; the order records typed snapshots so later inventory mutation
// cannot alter it.
func (m *Marketplace) CreateCustomOrder(ctx context.Context, userID string, selectedItemIDs []string, mood string, now time.Time) (models.Order, error) {
	profile, ok := m.Profiles.Get(userID)
	if !ok {
		return models.Order{}, ErrUserNotFound
	}

	selected := make(map[string]bool, len(selectedItemIDs))
	for _, id := range selectedItemIDs {
		selected[id] = true
	}

	available := m.Inventory.AllAvailable(profile.Location, now)

	var orderItems []models.OrderItem
	var totalCost float64
	for _, item := range available {
		if !selected[item.ID] {
			continue
		}
		discountPrice := m.Scorer.DiscountPrice(item.OriginalPrice)
		orderItems = append(orderItems, models.OrderItem{
			ItemID:        item.ID,
			RestaurantID:  item.RestaurantID,
			Restaurant:    item.Restaurant,
			Name:          item.Name,
			FoodType:      item.FoodType,
			OriginalPrice: item.OriginalPrice,
			DiscountPrice: discountPrice,
			Expiry:        item.Expiry,
		})
		totalCost += discountPrice
	}

	order := models.Order{
		UserID:        userID,
		Type:          models.OrderTypeCustomBag,
		Items:         orderItems,
		Cost:          round2(totalCost),
		Status:        models.OrderStatusConfirmed,
		ImpactMessage: m.impactMessage(ctx, len(orderItems), totalCost),
		Timestamp:     now,
	}
	order = m.Ledger.Append(order)

	event := models.OrderPlacedEvent{
		BaseEvent: models.NewBaseEvent(models.TopicOrderPlaced, now),
		OrderID:   order.ID,
		OrderType: order.Type,
		Items:     joinOrderItemIDs(orderItems),
		TotalCost: order.Cost,
		Status:    order.Status,
	}
	event.UserID = userID
	m.emit(models.TopicOrderPlaced, event)

	return order, nil
}

// impactMessage asks the external text provider for a blurb and degrades to
// a templated message when it is absent or failing. Never blocks an order.
func (m *Marketplace) impactMessage(ctx context.Context, itemsSaved int, totalCost float64) string {
	if m.Impact != nil {
		msg, err := m.Impact.ImpactMessage(ctx, itemsSaved, totalCost/100)
		if err == nil {
			return msg
		}
		log.Printf("Impact message provider failed, using template: %v", err)
	}
	return fmt.Sprintf("Great job! You saved %d meals from waste!", itemsSaved)
}

// filterByPreferences keeps items whose food type matches one of the user's
// dietary preference tags by substring containment. Users with no
// preferences see everything.
func filterByPreferences(items []models.AvailableItem, profile *models.UserProfile) []models.AvailableItem {
	if len(profile.Preferences.Dietary) == 0 {
		return items
	}
	filtered := make([]models.AvailableItem, 0, len(items))
	for _, item := range items {
		for _, pref := range profile.Preferences.Dietary {
			if strings.Contains(item.FoodType, pref) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

func joinItemIDs(items []models.AvailableItem) string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return strings.Join(ids, ",")
}

func joinOrderItemIDs(items []models.OrderItem) string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ItemID
	}
	return strings.Join(ids, ",")
}
