package seatmap

import (
	"strings"

	"seatmap-engine/internal/data/entity"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusBlocked   Status = "blocked"
	StatusSelected  Status = "selected"
)

// ResolveStatus folds the live selection state and the seat's traveler pricing into one status.
//
// A selection on the segment always wins. Otherwise the availability flag of the traveler's
// pricing entry is used, or of the first entry when no traveler is given. A seat without
// a usable entry is blocked.
func ResolveStatus(seat *entity.Seat, selections SelectionReader, segmentID, travelerID string) Status {
	if selections != nil {
		if _, ok := selections.HolderOf(segmentID, seat.Number); ok {
			return StatusSelected
		}
	}

	if len(seat.TravelerPricing) == 0 {
		return StatusBlocked
	}

	pricing := &seat.TravelerPricing[0]
	if travelerID != "" {
		pricing = seat.PricingFor(travelerID)
		if pricing == nil {
			return StatusBlocked
		}
	}

	switch strings.ToUpper(pricing.SeatAvailabilityStatus) {
	case entity.SeatAvailable:
		return StatusAvailable
	case entity.SeatOccupied:
		return StatusOccupied
	default:
		return StatusBlocked
	}
}
