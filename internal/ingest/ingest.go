package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/campuskitchen/surplusmart/internal/factories"
	"github.com/campuskitchen/surplusmart/internal/models"
)

// Dataset is what the ingestion collaborator hands the marketplace: dining
// halls plus their surplus items.
type Dataset struct {
	Halls []models.DiningHall
	Items []models.FoodItem
}

// Source supplies a dataset at startup and on explicit refresh calls.
type Source interface {
	Fetch(ctx context.Context) (*Dataset, error)
}

// Load fetches from the source and falls back to the built-in demo dataset
// when the source is absent, fails, or returns nothing.
func Load(ctx context.Context, src Source, cfg *models.Config) *Dataset {
	if src != nil {
		dataset, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("Ingestion source failed, using demo data: %v", err)
		} else if dataset == nil || len(dataset.Halls) == 0 {
			log.Printf("Ingestion source returned no dining halls, using demo data")
		} else {
			return dataset
		}
	}
	return DemoDataset(cfg, time.Now())
}

// FileSource reads a previously saved ingestion snapshot from disk.
type FileSource struct {
	Path string
}

type fileHall struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	CuisineType string `json:"cuisine_type"`
}

type fileItem struct {
	RestaurantID  string `json:"restaurant_id"`
	ItemID        string `json:"item_id"`
	Name          string `json:"name"`
	FoodType      string `json:"food_type"`
	OriginalPrice int    `json:"original_price"`
	Expiry        string `json:"expiry"`
	Quantity      int    `json:"quantity"`
}

func (s *FileSource) Fetch(_ context.Context) (*Dataset, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading dining data file: %w", err)
	}

	var payload struct {
		Restaurants []fileHall `json:"restaurants"`
		FoodItems   []fileItem `json:"food_items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parsing dining data file: %w", err)
	}

	dataset := &Dataset{}
	for _, hall := range payload.Restaurants {
		dataset.Halls = append(dataset.Halls, models.DiningHall{
			ID:          hall.ID,
			Name:        hall.Name,
			Location:    hall.Location,
			CuisineType: hall.CuisineType,
		})
	}
	for _, item := range payload.FoodItems {
		expiry, err := time.Parse(time.RFC3339, item.Expiry)
		if err != nil {
			return nil, fmt.Errorf("parsing expiry for item %s: %w", item.ItemID, err)
		}
		dataset.Items = append(dataset.Items, models.FoodItem{
			ID:            item.ItemID,
			RestaurantID:  item.RestaurantID,
			Name:          item.Name,
			FoodType:      item.FoodType,
			OriginalPrice: item.OriginalPrice,
			Quantity:      item.Quantity,
			Expiry:        expiry,
		})
	}
	log.Printf("Loaded %d dining halls and %d food items from %s",
		len(dataset.Halls), len(dataset.Items), s.Path)
	return dataset, nil
}

// DemoDataset is the built-in fallback: a small fixed set of campus dining
// halls plus faker-generated extras when the config asks for more.
func DemoDataset(cfg *models.Config, now time.Time) *Dataset {
	expirySoon := now.Add(3 * time.Hour)
	expiryLater := now.Add(8 * time.Hour)

	dataset := &Dataset{
		Halls: []models.DiningHall{
			{ID: "R001", Name: "Campus Cafe", Location: "North Campus", CuisineType: "Cafe"},
			{ID: "R002", Name: "Main Dining Hall", Location: "Central Campus", CuisineType: "Dining Hall"},
			{ID: "R003", Name: "West Campus Market", Location: "West Campus", CuisineType: "Market"},
		},
		Items: []models.FoodItem{
			{ID: "F001", RestaurantID: "R001", Name: "Coffee & Pastry", FoodType: "bakery", OriginalPrice: 150, Expiry: expirySoon, Quantity: 3},
			{ID: "F002", RestaurantID: "R001", Name: "Sandwich Combo", FoodType: "american", OriginalPrice: 240, Expiry: expiryLater, Quantity: 2},
			{ID: "F003", RestaurantID: "R002", Name: "Pasta Bowl", FoodType: "italian", OriginalPrice: 280, Expiry: expirySoon, Quantity: 2},
			{ID: "F004", RestaurantID: "R002", Name: "Salad Bar", FoodType: "healthy", OriginalPrice: 200, Expiry: expiryLater, Quantity: 4},
			{ID: "F005", RestaurantID: "R003", Name: "Sushi Roll", FoodType: "asian", OriginalPrice: 320, Expiry: expirySoon, Quantity: 1},
			{ID: "F006", RestaurantID: "R003", Name: "Fruit Cup", FoodType: "healthy", OriginalPrice: 140, Expiry: expiryLater, Quantity: 5},
		},
	}

	hallFactory := &factories.DiningHallFactory{}
	itemFactory := &factories.FoodItemFactory{}
	for i := len(dataset.Halls); i < cfg.DemoHalls; i++ {
		hall := hallFactory.CreateDiningHall(cfg)
		dataset.Halls = append(dataset.Halls, *hall)
		for j := 0; j < cfg.DemoItemsPerHall; j++ {
			dataset.Items = append(dataset.Items, itemFactory.CreateFoodItem(hall, now))
		}
	}

	return dataset
}
