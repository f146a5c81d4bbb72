package events

import "time"

// Event types
const (
	UserProvisioned = "user.provisioned"
)

// Stream names
const (
	UserEventsStream = "user.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// UserProvisionedEvent is emitted once both the user and profile rows exist.
type UserProvisionedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
