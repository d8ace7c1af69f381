package marketplace

import (
	"sync"
	"time"

	"github.com/campuskitchen/surplusmart/internal/models"
)

// ProfileStore owns every registered user's profile. Writes are serialized
// per store; lookups take the read lock.
type ProfileStore struct {
	mu    sync.RWMutex
	users map[string]*models.UserProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{users: make(map[string]*models.UserProfile)}
}

// Register creates a fresh profile with an empty score map and history.
// Re-registering an existing id fails with ErrDuplicateUser.
func (ps *ProfileStore) Register(userID, name, location string, prefs models.Preferences) (*models.UserProfile, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.users[userID]; exists {
		return nil, ErrDuplicateUser
	}

	if prefs.Dietary == nil {
		prefs.Dietary = []string{}
	}
	if prefs.Restrictions == nil {
		prefs.Restrictions = []string{}
	}
	if prefs.Allergens == nil {
		prefs.Allergens = []string{}
	}
	if prefs.Dislikes == nil {
		prefs.Dislikes = []string{}
	}

	profile := &models.UserProfile{
		ID:                 userID,
		Name:               name,
		Location:           location,
		Preferences:        prefs,
		PreferenceScore:    make(map[string]int),
		InteractionHistory: make([]models.Interaction, 0),
		JoinedAt:           time.Now(),
	}
	ps.users[userID] = profile
	return profile, nil
}

// RecordInteraction appends to the history and adds the rating to the food
// type's cumulative score. Ratings may be any signed integer; negative
// ratings reduce future scores.
func (ps *ProfileStore) RecordInteraction(userID, foodType string, rating int) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	profile, ok := ps.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	profile.InteractionHistory = append(profile.InteractionHistory, models.Interaction{
		FoodType:  foodType,
		Rating:    rating,
		Timestamp: time.Now(),
	})
	profile.PreferenceScore[foodType] += rating
	return nil
}

// Get returns the profile for a user id.
func (ps *ProfileStore) Get(userID string) (*models.UserProfile, bool) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	profile, ok := ps.users[userID]
	return profile, ok
}

// All returns every registered profile.
func (ps *ProfileStore) All() []*models.UserProfile {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	profiles := make([]*models.UserProfile, 0, len(ps.users))
	for _, profile := range ps.users {
		profiles = append(profiles, profile)
	}
	return profiles
}
