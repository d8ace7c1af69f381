package cmd

import (
	"context"
	"log"
	"time"

	"github.com/campuskitchen/surplusmart/internal/factories"
	"github.com/campuskitchen/surplusmart/internal/marketplace"
	"github.com/campuskitchen/surplusmart/internal/models"
)

// runDemo walks one marketplace session end to end: registers users, records
// a few ratings, prints suggestions, then hands out a surprise bag and
// places a custom order.
func runDemo(ctx context.Context, market *marketplace.Marketplace, cfg *models.Config) {
	now := time.Now()

	alice, err := market.RegisterUser("U001", "Alice Chen", "North Campus", models.Preferences{
		Dietary: []string{"healthy", "vegetarian"},
	})
	if err != nil {
		log.Fatalf("Failed to register demo user: %v", err)
	}

	userFactory := &factories.UserFactory{}
	for i := 1; i < cfg.DemoUsers; i++ {
		generated := userFactory.CreateUser(cfg)
		if _, err := market.RegisterUser(generated.ID, generated.Name, generated.Location, generated.Preferences); err != nil {
			log.Printf("Skipping generated user %s: %v", generated.ID, err)
		}
	}
	log.Printf("Registered %d users", cfg.DemoUsers)

	// a few ratings so preference learning has something to work with
	market.RecordInteraction(alice.ID, "healthy", 5)
	market.RecordInteraction(alice.ID, "italian", 3)
	market.RecordInteraction(alice.ID, "american", -2)

	suggestions, err := market.Suggestions(ctx, alice.ID, "healthy", now)
	if err != nil {
		log.Fatalf("Failed to build suggestions: %v", err)
	}
	log.Printf("Suggestions for %s:", alice.Name)
	for i, s := range suggestions {
		log.Printf("  %2d. %-20s %-10s score=%-3d $%.2f (was $%.2f) at %s",
			i+1, s.Item.Name, s.Item.FoodType, s.Score,
			s.DiscountPrice/100, float64(s.Item.OriginalPrice)/100, s.Item.Restaurant)
	}

	bag, err := market.CreateSurpriseBag(alice.ID, now)
	if err != nil {
		log.Printf("No surprise bag available: %v", err)
	} else {
		log.Printf("Surprise bag for %s: %d items, free", alice.Name, len(bag.Items))
		for _, item := range bag.Items {
			log.Printf("  - %s (%s) from %s", item.Name, item.FoodType, item.Restaurant)
		}
	}

	if len(suggestions) > 0 {
		picks := []string{suggestions[0].Item.ID}
		if len(suggestions) > 1 {
			picks = append(picks, suggestions[1].Item.ID)
		}
		order, err := market.CreateCustomOrder(ctx, alice.ID, picks, "healthy", now)
		if err != nil {
			log.Fatalf("Failed to place custom order: %v", err)
		}
		log.Printf("Order %s confirmed: %d items, total $%.2f", order.ID, len(order.Items), order.Cost/100)
		log.Printf("  %s", order.ImpactMessage)
	}
}
