package entity

type ItineraryStatus string

const (
	ItineraryStatusOpen   ItineraryStatus = "open"
	ItineraryStatusClosed ItineraryStatus = "closed"
)

// Itinerary is the persisted seat-selection draft for one booking.
type Itinerary struct {
	Base
	Fingerprint   string          `db:"fingerprint"`
	TravelerIDs   []string        `db:"traveler_ids"`
	MaxSelections int             `db:"max_selections"`
	Currency      string          `db:"currency"`
	Payload       []byte          `db:"payload"` // raw SeatmapResponse JSON
	Status        ItineraryStatus `db:"status"`
}
