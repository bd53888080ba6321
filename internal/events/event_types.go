package events

import (
	"time"

	"github.com/spec-kit/user-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated EventType = "user_created"
	EventUserUpdated EventType = "user_updated"
	EventUserDeleted EventType = "user_deleted"
)

// UserEventTypes lists every event the user service publishes.
var UserEventTypes = []EventType{EventUserCreated, EventUserUpdated, EventUserDeleted}

// Event represents a mutation of the user collection.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int         `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload carries the stored record.
type UserCreatedPayload struct {
	Record domain.Record `json:"record"`
}

// UserUpdatedPayload lists the fields the patch touched.
type UserUpdatedPayload struct {
	Fields []string      `json:"fields"`
	Record domain.Record `json:"record"`
}

// UserDeletedPayload reports the collection size after removal.
type UserDeletedPayload struct {
	Remaining int `json:"remaining"`
}
