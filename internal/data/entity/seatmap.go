package entity

type DeckType string

const (
	DeckMain  DeckType = "MAIN"
	DeckUpper DeckType = "UPPER"
	DeckLower DeckType = "LOWER"
)

// DeckConfiguration holds the advisory geometry declared by the carrier.
// Every field may be absent or disagree with the seat coordinates.
type DeckConfiguration struct {
	Width         *int  `json:"width,omitempty"`
	Length        *int  `json:"length,omitempty"`
	StartSeatRow  *int  `json:"startSeatRow,omitempty"`
	EndSeatRow    *int  `json:"endSeatRow,omitempty"`
	StartWingsRow *int  `json:"startWingsRow,omitempty"`
	EndWingsRow   *int  `json:"endWingsRow,omitempty"`
	StartWingsX   *int  `json:"startWingsX,omitempty"`
	EndWingsX     *int  `json:"endWingsX,omitempty"`
	ExitRowsX     []int `json:"exitRowsX,omitempty"`
}

type Deck struct {
	DeckType          DeckType           `json:"deckType,omitempty"`
	DeckConfiguration *DeckConfiguration `json:"deckConfiguration,omitempty"`
	Seats             []Seat             `json:"seats" validate:"dive"`
	Facilities        []Facility         `json:"facilities,omitempty"`
}

// ExitRows returns the declared exit rows, empty when no configuration was sent.
func (d *Deck) ExitRows() []int {
	if d.DeckConfiguration == nil {
		return nil
	}
	return d.DeckConfiguration.ExitRowsX
}

type Aircraft struct {
	Code string `json:"code,omitempty"`
}

type FlightEndpoint struct {
	IataCode string `json:"iataCode,omitempty"`
	At       string `json:"at,omitempty"`
}

type AvailableSeatsCounter struct {
	TravelerID string `json:"travelerId"`
	Value      int    `json:"value"`
}

// Seatmap is one segment's seat inventory. It is replaced wholesale on re-fetch.
type Seatmap struct {
	Type                   string                  `json:"type,omitempty"`
	FlightOfferID          string                  `json:"flightOfferId,omitempty"`
	SegmentID              string                  `json:"segmentId,omitempty" validate:"max=32"`
	CarrierCode            string                  `json:"carrierCode,omitempty"`
	Number                 string                  `json:"number,omitempty"`
	CabinClass             string                  `json:"class,omitempty"`
	Aircraft               *Aircraft               `json:"aircraft,omitempty"`
	Departure              *FlightEndpoint         `json:"departure,omitempty"`
	Arrival                *FlightEndpoint         `json:"arrival,omitempty"`
	Decks                  []Deck                  `json:"decks" validate:"dive"`
	AvailableSeatsCounters []AvailableSeatsCounter `json:"availableSeatsCounters,omitempty"`
}

func (s *Seatmap) AircraftCode() string {
	if s.Aircraft == nil {
		return ""
	}
	return s.Aircraft.Code
}

type Dictionaries struct {
	Facilities          map[string]string `json:"facilities,omitempty"`
	SeatCharacteristics map[string]string `json:"seatCharacteristics,omitempty"`
}

// SeatmapResponse is the envelope returned by the seatmap display API.
type SeatmapResponse struct {
	Data         []Seatmap     `json:"data" validate:"dive"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`
}
