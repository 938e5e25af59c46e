package notify

import (
	"encoding/json"
	"time"
)

const (
	EventCatalogChanged     = "CatalogChanged"
	EventMenuItemAdded      = "MenuItemAdded"
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventEventCreated       = "EventCreated"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}
