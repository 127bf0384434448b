package usecase

import (
	"time"
)

// SelectionChangedQueue is the default queue for selection events, one per accepted change.
const SelectionChangedQueue = "seat.selection.changed"

type SelectionAction string

const (
	ActionSelected   SelectionAction = "selected"
	ActionDeselected SelectionAction = "deselected"
)

type SelectionChangedEvent struct {
	EventID     string          `json:"event_id"`
	ItineraryID string          `json:"itinerary_id"`
	Action      SelectionAction `json:"action"`
	SegmentID   string          `json:"segment_id"`
	TravelerID  string          `json:"traveler_id"`
	SeatNumber  string          `json:"seat_number"`
	Price       string          `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	Selections  int             `json:"selections"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
