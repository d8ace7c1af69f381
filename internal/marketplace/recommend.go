package marketplace

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
	"github.com/campuskitchen/surplusmart/internal/ranking"
)

// Suggestion is one recommended item with its score and discounted price.
// Reason is only present when the external ranking collaborator produced
// the ordering.
type Suggestion struct {
	Item          models.AvailableItem `json:"item"`
	Score         int                  `json:"score"`
	DiscountPrice float64              `json:"discount_price"`
	Reason        string               `json:"reason,omitempty"`
}

// Recommender orders currently-available items for a user.
type Recommender interface {
	Suggest(ctx context.Context, profile *models.UserProfile, available []models.AvailableItem, mood string, now time.Time) []Suggestion
}

// LocalRecommender scores every available item and returns the top
// suggestions. Equal scores keep the order in which the items were scanned;
// the stable sort is a contract, not an implementation detail.
type LocalRecommender struct {
	scorer         *Scorer
	maxSuggestions int
}

func NewLocalRecommender(scorer *Scorer, maxSuggestions int) *LocalRecommender {
	return &LocalRecommender{scorer: scorer, maxSuggestions: maxSuggestions}
}

func (r *LocalRecommender) Suggest(_ context.Context, profile *models.UserProfile, available []models.AvailableItem, mood string, now time.Time) []Suggestion {
	scored := make([]Suggestion, 0, len(available))
	for _, item := range available {
		scored = append(scored, Suggestion{
			Item:          item,
			Score:         r.scorer.Score(item, profile, mood, now),
			DiscountPrice: r.scorer.DiscountPrice(item.OriginalPrice),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.maxSuggestions {
		scored = scored[:r.maxSuggestions]
	}
	return scored
}

// RankingService is the external ranking collaborator. Failures arrive as
// unavailable Results, never as errors.
type RankingService interface {
	Rank(ctx context.Context, request ranking.Request) ranking.Result
}

// RankedRecommender delegates ordering to the external collaborator and
// falls back to local scoring whenever the service cannot rank. The
// external call is bounded by a timeout and holds no store locks.
type RankedRecommender struct {
	service    RankingService
	local      *LocalRecommender
	scorer     *Scorer
	windowSize int
	timeout    time.Duration
}

func NewRankedRecommender(service RankingService, local *LocalRecommender, scorer *Scorer, windowSize int, timeout time.Duration) *RankedRecommender {
	return &RankedRecommender{
		service:    service,
		local:      local,
		scorer:     scorer,
		windowSize: windowSize,
		timeout:    timeout,
	}
}

func (r *RankedRecommender) Suggest(ctx context.Context, profile *models.UserProfile, available []models.AvailableItem, mood string, now time.Time) []Suggestion {
	if len(available) == 0 {
		return nil
	}

	window := available
	if len(window) > r.windowSize {
		window = window[:r.windowSize]
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result := r.service.Rank(ctx, buildRequest(profile, window, mood, now))
	if !result.Ranked() {
		log.Printf("Ranking provider unavailable, using local scoring: %s", result.FallbackReason)
		return r.local.Suggest(ctx, profile, available, mood, now)
	}

	lookup := make(map[string]models.AvailableItem, len(available))
	for _, item := range available {
		lookup[item.ID] = item
	}

	suggestions := make([]Suggestion, 0, len(result.Entries))
	for _, entry := range result.Entries {
		item, ok := lookup[entry.ItemID]
		if !ok {
			// unknown ids are dropped individually, not treated as a
			// batch failure
			log.Printf("Ranking provider returned unknown item id %q, dropping", entry.ItemID)
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Item:          item,
			Score:         entry.Score,
			DiscountPrice: r.scorer.DiscountPrice(item.OriginalPrice),
			Reason:        entry.Reason,
		})
	}

	if len(suggestions) == 0 {
		log.Printf("Ranking provider returned no usable entries, using local scoring")
		return r.local.Suggest(ctx, profile, available, mood, now)
	}
	return suggestions
}

func buildRequest(profile *models.UserProfile, window []models.AvailableItem, mood string, now time.Time) ranking.Request {
	items := make([]ranking.ItemSummary, 0, len(window))
	for _, item := range window {
		hours := item.HoursToExpiry(now)
		items = append(items, ranking.ItemSummary{
			ID:               item.ID,
			Name:             item.Name,
			Type:             item.FoodType,
			Restaurant:       item.Restaurant,
			Location:         item.RestaurantLocation,
			PriceCents:       item.OriginalPrice,
			HoursUntilExpiry: math.Round(hours*10) / 10,
			Urgent:           hours < 4,
		})
	}

	return ranking.Request{
		User: ranking.ProfileSummary{
			Name:                profile.Name,
			Location:            profile.Location,
			DietaryPreferences:  profile.Preferences.Dietary,
			DietaryRestrictions: profile.Preferences.Restrictions,
			Allergens:           profile.Preferences.Allergens,
			Dislikes:            profile.Preferences.Dislikes,
			FoodTypePreferences: profile.PreferenceScore,
			InteractionCount:    len(profile.InteractionHistory),
		},
		Items:    items,
		Mood:     mood,
		MealTime: ranking.MealTime(now),
	}
}
