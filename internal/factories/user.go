package factories

import (
	"math/rand"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/lucsky/cuid"
)

type UserFactory struct{}

var dietaryTags = []string{"vegetarian", "vegan", "healthy", "italian", "asian", "american"}

// CreateUser generates a student profile for demo datasets. Preferences are
// drawn from the tags the scoring tables understand so generated users
// actually exercise dietary matching.
func (uf *UserFactory) CreateUser(config *models.Config) *models.UserProfile {
	prefCount := rand.Intn(3) // 0 to 2 preferences
	prefs := make([]string, 0, prefCount)
	seen := make(map[string]bool)
	for len(prefs) < prefCount {
		tag := dietaryTags[rand.Intn(len(dietaryTags))]
		if !seen[tag] {
			seen[tag] = true
			prefs = append(prefs, tag)
		}
	}

	now := time.Now()
	return &models.UserProfile{
		ID:       cuid.New(),
		Name:     fake.Person().Name(),
		Location: campusLocations[rand.Intn(len(campusLocations))],
		Preferences: models.Preferences{
			Dietary: prefs,
		},
		PreferenceScore:    make(map[string]int),
		InteractionHistory: make([]models.Interaction, 0),
		JoinedAt:           fake.Time().TimeBetween(now.AddDate(-1, 0, 0), now),
	}
}
