package models

import "time"

const (
	OrderTypeSurpriseBag = "surprise_bag"
	OrderTypeCustomBag   = "custom_bag"

	// Orders have exactly one reachable state; no cancellation or refund
	// transition exists.
	OrderStatusConfirmed = "confirmed"
)

// OrderItem is a typed snapshot of a food item taken at order-creation time.
// Later mutation or removal of the source inventory item cannot alter it.
type OrderItem struct {
	ItemID        string    `json:"item_id"`
	RestaurantID  string    `json:"restaurant_id"`
	Restaurant    string    `json:"restaurant"`
	Name          string    `json:"name"`
	FoodType      string    `json:"food_type"`
	OriginalPrice int       `json:"original_price"`
	DiscountPrice float64   `json:"discount_price"`
	Expiry        time.Time `json:"expiry"`
}

// Order is an immutable record appended to the ledger at creation.
type Order struct {
	ID            string      `json:"order_id"`
	UserID        string      `json:"user_id"`
	Type          string      `json:"type"`
	Items         []OrderItem `json:"items"`
	Cost          float64     `json:"cost"`
	Status        string      `json:"status"`
	ImpactMessage string      `json:"impact_message,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// SurpriseBag is a free, randomly sampled set of available items. It is not
// persisted to the ledger and does not touch inventory quantities.
type SurpriseBag struct {
	Type      string          `json:"type"`
	Cost      float64         `json:"cost"`
	Items     []AvailableItem `json:"items"`
	UserID    string          `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
}
