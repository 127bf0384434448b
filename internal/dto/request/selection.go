package request

type SelectSeatRequest struct {
	Segment    *int   `json:"segment" validate:"required,gte=0"`
	TravelerID string `json:"traveler_id" validate:"required,max=64"`
	SeatNumber string `json:"seat_number" validate:"required,max=8,alphanum"`
}

// DeselectSeatRequest removes either the traveler's seat or whoever holds the seat.
type DeselectSeatRequest struct {
	Segment    int    `validate:"gte=0"`
	TravelerID string `validate:"required_without=SeatNumber,max=64"`
	SeatNumber string `validate:"required_without=TravelerID,max=8"`
}
