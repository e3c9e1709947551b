package websocket

import "github.com/google/uuid"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action of a client message.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError Event = "error"
	EventPong  Event = "pong"
	EventSlots Event = "slots"
)

// SlotsEvent carries the committed slot count of one class. Clients use it to
// reconcile optimistic UI state.
type SlotsEvent struct {
	Event          Event     `json:"event"`
	ClassID        uuid.UUID `json:"class_id"`
	AvailableSlots int       `json:"available_slots"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
