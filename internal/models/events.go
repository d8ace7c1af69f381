package models

import (
	"fmt"
	"log"
	"time"

	"github.com/xitongsys/parquet-go/schema"
)

// Activity stream topics. Every marketplace mutation emits one event.
const (
	TopicOrderPlaced         = "order_placed_events"
	TopicSurpriseBagCreated  = "surprise_bag_events"
	TopicItemAdded           = "item_added_events"
	TopicQuantityUpdated     = "quantity_updated_events"
	TopicItemRemoved         = "item_removed_events"
	TopicUserRegistered      = "user_registered_events"
	TopicInteractionRecorded = "interaction_events"
)

// BaseEvent is the common structure for all activity events
type BaseEvent struct {
	Timestamp    int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType    string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID       string `json:"userId,omitempty" parquet:"name=userId,type=BYTE_ARRAY,convertedtype=UTF8"`
	RestaurantID string `json:"restaurantId,omitempty" parquet:"name=restaurantId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderPlacedEvent represents a custom-bag order being recorded
type OrderPlacedEvent struct {
	BaseEvent
	OrderID   string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderType string  `json:"orderType" parquet:"name=orderType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Items     string  `json:"itemIds" parquet:"name=itemIds,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalCost float64 `json:"totalCost" parquet:"name=totalCost,type=DOUBLE"`
	Status    string  `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// SurpriseBagEvent represents a free surprise bag being handed out
type SurpriseBagEvent struct {
	BaseEvent
	ItemCount int32  `json:"itemCount" parquet:"name=itemCount,type=INT32"`
	Items     string `json:"itemIds" parquet:"name=itemIds,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// ItemAddedEvent represents an admin adding a surplus item
type ItemAddedEvent struct {
	BaseEvent
	ItemID        string `json:"itemId" parquet:"name=itemId,type=BYTE_ARRAY,convertedtype=UTF8"`
	FoodType      string `json:"foodType" parquet:"name=foodType,type=BYTE_ARRAY,convertedtype=UTF8"`
	OriginalPrice int32  `json:"originalPrice" parquet:"name=originalPrice,type=INT32"`
	Quantity      int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
	Expiry        int64  `json:"expiry" parquet:"name=expiry,type=INT64"`
}

// QuantityUpdatedEvent represents an admin quantity change
type QuantityUpdatedEvent struct {
	BaseEvent
	ItemID   string `json:"itemId" parquet:"name=itemId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quantity int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
}

// ItemRemovedEvent represents an admin removing an item
type ItemRemovedEvent struct {
	BaseEvent
	ItemID string `json:"itemId" parquet:"name=itemId,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// UserRegisteredEvent represents a new user registration
type UserRegisteredEvent struct {
	BaseEvent
	Location           string `json:"location" parquet:"name=location,type=BYTE_ARRAY,convertedtype=UTF8"`
	DietaryPreferences string `json:"dietaryPreferences" parquet:"name=dietaryPreferences,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// InteractionEvent represents a rating a user gave for a food type
type InteractionEvent struct {
	BaseEvent
	FoodType string `json:"foodType" parquet:"name=foodType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Rating   int32  `json:"rating" parquet:"name=rating,type=INT32"`
}

func GetSchema(eventType string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch eventType {
	case TopicOrderPlaced:
		sh, err = schema.NewSchemaHandlerFromStruct(new(OrderPlacedEvent))
	case TopicSurpriseBagCreated:
		sh, err = schema.NewSchemaHandlerFromStruct(new(SurpriseBagEvent))
	case TopicItemAdded:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ItemAddedEvent))
	case TopicQuantityUpdated:
		sh, err = schema.NewSchemaHandlerFromStruct(new(QuantityUpdatedEvent))
	case TopicItemRemoved:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ItemRemovedEvent))
	case TopicUserRegistered:
		sh, err = schema.NewSchemaHandlerFromStruct(new(UserRegisteredEvent))
	case TopicInteractionRecorded:
		sh, err = schema.NewSchemaHandlerFromStruct(new(InteractionEvent))
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err != nil {
		log.Printf("Error creating schema for %s: %v", eventType, err)
		return nil, fmt.Errorf("error creating schema for %s: %w", eventType, err)
	}

	return sh, nil
}

func NewBaseEvent(eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
	}
}
