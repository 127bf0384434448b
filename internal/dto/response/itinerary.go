package response

import (
	"time"

	"seatmap-engine/internal/data/entity"
)

type ItineraryResponse struct {
	ID            string                 `json:"id"`
	Fingerprint   string                 `json:"fingerprint"`
	Status        entity.ItineraryStatus `json:"status"`
	TravelerIDs   []string               `json:"traveler_ids"`
	MaxSelections int                    `json:"max_selections"`
	Currency      string                 `json:"currency"`
	Segments      []SegmentResponse      `json:"segments"`
	Selections    []SelectionResponse    `json:"selections"`
	CreatedAt     time.Time              `json:"created_at"`
}

type SegmentResponse struct {
	Index          int                            `json:"index"`
	SegmentID      string                         `json:"segment_id"`
	CarrierCode    string                         `json:"carrier_code,omitempty"`
	Number         string                         `json:"number,omitempty"`
	Aircraft       string                         `json:"aircraft,omitempty"`
	CabinClass     string                         `json:"cabin_class,omitempty"`
	Departure      *entity.FlightEndpoint         `json:"departure,omitempty"`
	Arrival        *entity.FlightEndpoint         `json:"arrival,omitempty"`
	Decks          []DeckResponse                 `json:"decks"`
	AvailableSeats map[string]int                 `json:"available_seats,omitempty"`
	Counters       []entity.AvailableSeatsCounter `json:"available_seats_counters,omitempty"`
}

type DeckResponse struct {
	Index      int             `json:"index"`
	DeckType   entity.DeckType `json:"deck_type,omitempty"`
	Seats      int             `json:"seats"`
	Facilities int             `json:"facilities"`
}

// SegmentToResponse summarizes a seatmap without its seat-level detail.
func SegmentToResponse(index int, segmentID string, sm *entity.Seatmap) SegmentResponse {
	res := SegmentResponse{
		Index:       index,
		SegmentID:   segmentID,
		CarrierCode: sm.CarrierCode,
		Number:      sm.Number,
		Aircraft:    sm.AircraftCode(),
		CabinClass:  sm.CabinClass,
		Departure:   sm.Departure,
		Arrival:     sm.Arrival,
		Counters:    sm.AvailableSeatsCounters,
		Decks:       make([]DeckResponse, len(sm.Decks)),
	}

	for i, d := range sm.Decks {
		res.Decks[i] = DeckResponse{
			Index:      i,
			DeckType:   d.DeckType,
			Seats:      len(d.Seats),
			Facilities: len(d.Facilities),
		}
	}

	return res
}
