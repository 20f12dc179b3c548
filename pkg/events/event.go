package events

import "time"

// Domain event codes published on the bus. The notification consumer
// resolves each code against the notification_types registry.
const (
	EventPublished     = "EVENT_PUBLISHED"
	EventCancelled     = "EVENT_CANCELLED"
	ApplicationCreated = "APPLICATION_CREATED"
	ApplicationDecided = "APPLICATION_DECIDED"
	ChatMessageSent    = "CHAT_MESSAGE_SENT"
)

// Event is the contract for everything published on the bus.
type Event interface {
	// EventType returns the unique code, e.g. "EVENT_PUBLISHED".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
