package models

// DiningHall owns an ordered collection of surplus food items. Inventory
// order is insertion order, which availability scans preserve.
type DiningHall struct {
	ID          string      `json:"restaurant_id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	CuisineType string      `json:"cuisine_type"`
	Inventory   []*FoodItem `json:"inventory"`
}
