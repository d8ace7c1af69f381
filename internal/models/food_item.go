package models

import "time"

// FoodItem is a single surplus item owned by a dining hall. Quantity is
// tracked for admin bookkeeping but availability is gated on expiry only.
type FoodItem struct {
	ID            string    `json:"item_id"`
	RestaurantID  string    `json:"restaurant_id"`
	Name          string    `json:"name"`
	FoodType      string    `json:"food_type"`
	OriginalPrice int       `json:"original_price"` // smallest currency unit
	Quantity      int       `json:"quantity"`
	Expiry        time.Time `json:"expiry"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AvailableAt reports whether the item can still be offered at the given time.
func (f *FoodItem) AvailableAt(now time.Time) bool {
	return f.Expiry.After(now)
}

// HoursToExpiry returns the remaining shelf time in hours. Negative values
// mean the item has already expired.
func (f *FoodItem) HoursToExpiry(now time.Time) float64 {
	return f.Expiry.Sub(now).Hours()
}

// AvailableItem is a FoodItem annotated with its dining hall's display name
// and location, as returned by cross-hall availability scans.
type AvailableItem struct {
	FoodItem
	Restaurant         string `json:"restaurant"`
	RestaurantLocation string `json:"restaurant_location"`
}
