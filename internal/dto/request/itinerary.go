package request

import "encoding/json"

// LoadItineraryRequest carries a distribution-system seatmap response ({data, dictionaries})
// together with the travelers that may select seats.
type LoadItineraryRequest struct {
	TravelerIDs   []string        `json:"traveler_ids" validate:"omitempty,max=9,dive,required,max=64"`
	MaxSelections int             `json:"max_selections" validate:"gte=0,max=9"`
	Currency      string          `json:"currency" validate:"omitempty,iso4217"`
	Seatmap       json.RawMessage `json:"seatmap" validate:"required"`
}
