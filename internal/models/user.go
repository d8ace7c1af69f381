package models

import "time"

// Preferences holds a user's optional food preferences. All fields are
// always present and default to empty slices; dietary tags are soft
// preferences, not safety constraints.
type Preferences struct {
	Dietary      []string `json:"dietary_preferences"`
	Restrictions []string `json:"dietary_restrictions"`
	Allergens    []string `json:"allergens"`
	Dislikes     []string `json:"dislikes"`
}

// Interaction is one rating a user gave for a food type.
type Interaction struct {
	FoodType  string    `json:"food_type"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile tracks a registered user's preferences and learning state.
// PreferenceScore[t] always equals the sum of ratings recorded for t in
// InteractionHistory.
type UserProfile struct {
	ID                 string         `json:"user_id"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Preferences        Preferences    `json:"preferences"`
	PreferenceScore    map[string]int `json:"preference_score"`
	InteractionHistory []Interaction  `json:"interaction_history"`
	JoinedAt           time.Time      `json:"joined_at"`
}
