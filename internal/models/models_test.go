package models

import (
	"testing"
	"time"
)

func TestFoodItemAvailability(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	item := FoodItem{Expiry: now.Add(time.Minute)}
	if !item.AvailableAt(now) {
		t.Error("future expiry should be available")
	}

	item.Expiry = now
	if item.AvailableAt(now) {
		t.Error("expiry exactly now is not available")
	}

	item.Expiry = now.Add(-time.Minute)
	if item.AvailableAt(now) {
		t.Error("past expiry is not available")
	}
}

func TestHoursToExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	item := FoodItem{Expiry: now.Add(90 * time.Minute)}
	if got := item.HoursToExpiry(now); got != 1.5 {
		t.Errorf("expected 1.5 hours, got %v", got)
	}
}

func TestGetSchemaCoversAllTopics(t *testing.T) {
	topics := []string{
		TopicOrderPlaced,
		TopicSurpriseBagCreated,
		TopicItemAdded,
		TopicQuantityUpdated,
		TopicItemRemoved,
		TopicUserRegistered,
		TopicInteractionRecorded,
	}
	for _, topic := range topics {
		if _, err := GetSchema(topic); err != nil {
			t.Errorf("GetSchema(%s): %v", topic, err)
		}
	}
	if _, err := GetSchema("mystery_events"); err == nil {
		t.Error("expected error for unknown topic")
	}
}
