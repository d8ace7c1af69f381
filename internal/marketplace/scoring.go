package marketplace

import (
	"math"
	"strings"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// moodFoodMap awards a bonus to food types that fit the user's stated mood.
var moodFoodMap = map[string]map[string]int{
	"happy":       {"italian": 10, "american": 8, "asian": 7},
	"stressed":    {"healthy": 10, "italian": 8, "american": 7},
	"healthy":     {"healthy": 10, "vegetarian": 9},
	"adventurous": {"asian": 10, "italian": 7},
	"tired":       {"american": 10, "italian": 8},
}

// Scorer computes per-item recommendation scores and discount prices. It is
// stateless apart from its weights; all time-dependent terms take now
// explicitly.
type Scorer struct {
	PreferenceWeight  int
	DietaryMatchScore int
	UrgentHours       float64
	UrgentScore       int
	NormalHours       float64
	NormalScore       int
	DiscountRate      float64
}

func NewScorer(cfg *models.Config) *Scorer {
	return &Scorer{
		PreferenceWeight:  cfg.PreferenceScoreWeight,
		DietaryMatchScore: cfg.DietaryMatchScore,
		UrgentHours:       cfg.UrgentExpiryHours,
		UrgentScore:       cfg.UrgentExpiryScore,
		NormalHours:       cfg.NormalExpiryHours,
		NormalScore:       cfg.NormalExpiryScore,
		DiscountRate:      cfg.DiscountRate,
	}
}

// Score combines preference history, dietary match, mood and urgency.
// Callers must have filtered expired items upstream; scoring never
// re-checks expiry.
func (s *Scorer) Score(item models.AvailableItem, profile *models.UserProfile, mood string, now time.Time) int {
	score := 0

	if pref, ok := profile.PreferenceScore[item.FoodType]; ok {
		score += pref * s.PreferenceWeight
	}

	for _, dietary := range profile.Preferences.Dietary {
		if dietary == item.FoodType {
			score += s.DietaryMatchScore
			break
		}
	}

	if mood != "" {
		score += moodScore(item.FoodType, mood)
	}

	hoursUntilExpiry := item.HoursToExpiry(now)
	if hoursUntilExpiry < s.UrgentHours {
		score += s.UrgentScore
	} else if hoursUntilExpiry < s.NormalHours {
		score += s.NormalScore
	}

	return score
}

// DiscountPrice is what the user pays for a surplus item, rounded to two
// decimals. Independent of the recommendation score.
func (s *Scorer) DiscountPrice(originalPrice int) float64 {
	return round2(float64(originalPrice) * s.DiscountRate)
}

func moodScore(foodType, mood string) int {
	return moodFoodMap[strings.ToLower(mood)][foodType]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
