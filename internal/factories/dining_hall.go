package factories

import (
	"fmt"
	"math/rand"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

var campusLocations = []string{
	"North Campus",
	"Central Campus",
	"West Campus",
	"South Campus",
	"Collegetown",
	"Engineering Quad",
	"Agriculture Quad",
}

var hallTypes = []string{"Cafe", "Dining Hall", "Market", "Food Court", "Bakery"}

type DiningHallFactory struct{}

// CreateDiningHall generates a plausible campus dining hall for demo and
// volume datasets.
func (df *DiningHallFactory) CreateDiningHall(config *models.Config) *models.DiningHall {
	hallType := hallTypes[rand.Intn(len(hallTypes))]
	name := fmt.Sprintf("%s %s", fake.Company().Name(), hallType)

	return &models.DiningHall{
		ID:          cuid.New(),
		Name:        name,
		Location:    campusLocations[rand.Intn(len(campusLocations))],
		CuisineType: hallType,
		Inventory:   make([]*models.FoodItem, 0),
	}
}
