package factories

import (
	"math/rand"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/lucsky/cuid"
)

type FoodItemFactory struct{}

// food types the scoring tables understand
var foodTypeNames = map[string][]string{
	"italian":    {"Pasta Bowl", "Margherita Slice", "Lasagna Tray", "Caprese Panini"},
	"american":   {"Sandwich Combo", "Cheeseburger", "Mac and Cheese", "BBQ Plate"},
	"asian":      {"Sushi Roll", "Fried Rice Box", "Ramen Bowl", "Dumpling Pack"},
	"healthy":    {"Salad Bar", "Fruit Cup", "Grain Bowl", "Veggie Wrap"},
	"vegetarian": {"Veggie Stir Fry", "Falafel Wrap", "Tofu Bowl", "Garden Salad"},
	"bakery":     {"Coffee & Pastry", "Muffin Duo", "Bagel Bundle", "Croissant Pair"},
}

var foodTypes = []string{"italian", "american", "asian", "healthy", "vegetarian", "bakery"}

// CreateFoodItem generates a surplus listing for a dining hall. Expiry lands
// between one and ten hours out so generated inventory exercises both
// urgency tiers.
func (ff *FoodItemFactory) CreateFoodItem(hall *models.DiningHall, now time.Time) models.FoodItem {
	foodType := foodTypes[rand.Intn(len(foodTypes))]
	names := foodTypeNames[foodType]

	return models.FoodItem{
		ID:            cuid.New(),
		RestaurantID:  hall.ID,
		Name:          names[rand.Intn(len(names))],
		FoodType:      foodType,
		OriginalPrice: fake.IntBetween(80, 400),
		Quantity:      fake.IntBetween(1, 5),
		Expiry:        now.Add(time.Duration(fake.IntBetween(1, 10)) * time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
