package marketplace

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// EventSink receives the marketplace activity stream (console, JSON files,
// Kafka or parquet, chosen at startup).
type EventSink interface {
	WriteMessage(topic string, msg []byte) error
}

// ImpactSource produces the decorative food-waste impact blurb attached to
// custom orders. Optional; orders degrade to a templated message.
type ImpactSource interface {
	ImpactMessage(ctx context.Context, itemsSaved int, costSaved float64) (string, error)
}

// AdminContext is the resolved identity the auth collaborator hands the
// core for each inventory mutation. Credential storage and verification
// live outside this module.
type AdminContext struct {
	Authenticated bool
	RestaurantID  string
}

// Marketplace owns the three shared mutable structures (inventory, user
// profiles, order ledger) and orchestrates the order flows. One instance is
// constructed per process and passed by handle; there are no ambient
// singletons.
type Marketplace struct {
	Config      *models.Config
	Inventory   *Inventory
	Profiles    *ProfileStore
	Ledger      *Ledger
	Scorer      *Scorer
	Recommender Recommender
	Impact      ImpactSource
	Events      EventSink

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(cfg *models.Config) *Marketplace {
	scorer := NewScorer(cfg)
	seed := int64(cfg.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Marketplace{
		Config:      cfg,
		Inventory:   NewInventory(),
		Profiles:    NewProfileStore(),
		Ledger:      NewLedger(),
		Scorer:      scorer,
		Recommender: NewLocalRecommender(scorer, cfg.MaxSuggestions),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// ReplaceInventory swaps in a freshly ingested dataset, fully replacing the
// in-memory inventory.
func (m *Marketplace) ReplaceInventory(halls []models.DiningHall, items []models.FoodItem) {
	m.Inventory.Replace(halls, items)
	log.Printf("Inventory replaced: %d dining halls, %d food items", len(halls), len(items))
}

// RegisterUser creates a profile; registering an existing id fails with
// ErrDuplicateUser.
func (m *Marketplace) RegisterUser(userID, name, location string, prefs models.Preferences) (*models.UserProfile, error) {
	profile, err := m.Profiles.Register(userID, name, location, prefs)
	if err != nil {
		return nil, err
	}

	event := models.UserRegisteredEvent{
		BaseEvent:          models.NewBaseEvent(models.TopicUserRegistered, profile.JoinedAt),
		Location:           location,
		DietaryPreferences: strings.Join(prefs.Dietary, ","),
	}
	event.UserID = userID
	m.emit(models.TopicUserRegistered, event)

	return profile, nil
}

// GetUser returns a registered profile.
func (m *Marketplace) GetUser(userID string) (*models.UserProfile, error) {
	profile, ok := m.Profiles.Get(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return profile, nil
}

// RecordInteraction feeds a rating into the user's preference learning.
func (m *Marketplace) RecordInteraction(userID, foodType string, rating int) error {
	if err := m.Profiles.RecordInteraction(userID, foodType, rating); err != nil {
		return err
	}

	event := models.InteractionEvent{
		BaseEvent: models.NewBaseEvent(models.TopicInteractionRecorded, time.Now()),
		FoodType:  foodType,
		Rating:    int32(rating),
	}
	event.UserID = userID
	m.emit(models.TopicInteractionRecorded, event)
	return nil
}

// Suggestions returns the recommendation list for a user, ordered by the
// configured provider (external with local fallback, or local).
func (m *Marketplace) Suggestions(ctx context.Context, userID, mood string, now time.Time) ([]Suggestion, error) {
	profile, ok := m.Profiles.Get(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	available := m.Inventory.AllAvailable(profile.Location, now)
	if len(available) == 0 {
		return []Suggestion{}, nil
	}
	return m.Recommender.Suggest(ctx, profile, available, mood, now), nil
}

// AddItem is the admin path for listing a surplus item.
func (m *Marketplace) AddItem(admin AdminContext, hallID string, item models.FoodItem) (string, error) {
	if err := m.authorize(admin, hallID); err != nil {
		return "", err
	}
	itemID, err := m.Inventory.AddItem(hallID, item)
	if err != nil {
		return "", err
	}

	event := models.ItemAddedEvent{
		BaseEvent:     models.NewBaseEvent(models.TopicItemAdded, time.Now()),
		ItemID:        itemID,
		FoodType:      item.FoodType,
		OriginalPrice: int32(item.OriginalPrice),
		Quantity:      int32(item.Quantity),
		Expiry:        item.Expiry.Unix(),
	}
	event.RestaurantID = hallID
	m.emit(models.TopicItemAdded, event)

	return itemID, nil
}

// SetItemQuantity clamps to zero or above; the boolean reports whether the
// item existed.
func (m *Marketplace) SetItemQuantity(admin AdminContext, hallID, itemID string, quantity int) (bool, error) {
	if err := m.authorize(admin, hallID); err != nil {
		return false, err
	}
	ok := m.Inventory.SetQuantity(hallID, itemID, quantity)
	if ok {
		m.emitQuantityUpdate(hallID, itemID)
	}
	return ok, nil
}

// AdjustItemQuantity applies a signed delta, clamped at zero.
func (m *Marketplace) AdjustItemQuantity(admin AdminContext, hallID, itemID string, delta int) (bool, error) {
	if err := m.authorize(admin, hallID); err != nil {
		return false, err
	}
	ok := m.Inventory.AdjustQuantity(hallID, itemID, delta)
	if ok {
		m.emitQuantityUpdate(hallID, itemID)
	}
	return ok, nil
}

// RemoveItem deletes from the active collection; removing an absent id is a
// no-op and reports false.
func (m *Marketplace) RemoveItem(admin AdminContext, hallID, itemID string) (bool, error) {
	if err := m.authorize(admin, hallID); err != nil {
		return false, err
	}
	ok := m.Inventory.RemoveItem(hallID, itemID)
	if ok {
		event := models.ItemRemovedEvent{
			BaseEvent: models.NewBaseEvent(models.TopicItemRemoved, time.Now()),
			ItemID:    itemID,
		}
		event.RestaurantID = hallID
		m.emit(models.TopicItemRemoved, event)
	}
	return ok, nil
}

func (m *Marketplace) authorize(admin AdminContext, hallID string) error {
	if !admin.Authenticated || admin.RestaurantID != hallID {
		return ErrUnauthorized
	}
	return nil
}

func (m *Marketplace) emitQuantityUpdate(hallID, itemID string) {
	quantity, _ := m.Inventory.ItemQuantity(hallID, itemID)
	event := models.QuantityUpdatedEvent{
		BaseEvent: models.NewBaseEvent(models.TopicQuantityUpdated, time.Now()),
		ItemID:    itemID,
		Quantity:  int32(quantity),
	}
	event.RestaurantID = hallID
	m.emit(models.TopicQuantityUpdated, event)
}

func (m *Marketplace) emit(topic string, event interface{}) {
	if m.Events == nil {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error serializing event for %s: %v", topic, err)
		return
	}
	if err := m.Events.WriteMessage(topic, msg); err != nil {
		log.Printf("Failed to write event to %s: %v", topic, err)
	}
}

func (m *Marketplace) randIntBetween(min, max int) int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	if max <= min {
		return min
	}
	return min + m.rng.Intn(max-min+1)
}

func (m *Marketplace) randPerm(n int) []int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Perm(n)
}
