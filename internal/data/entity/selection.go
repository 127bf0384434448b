package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectionRow is the persisted form of one seat selection.
type SelectionRow struct {
	BaseSimple
	ItineraryID uuid.UUID       `db:"itinerary_id"`
	Position    int             `db:"position"`
	SegmentID   string          `db:"segment_id"`
	TravelerID  string          `db:"traveler_id"`
	SeatNumber  string          `db:"seat_number"`
	Price       decimal.Decimal `db:"price"`
	Currency    string          `db:"currency"`
}
