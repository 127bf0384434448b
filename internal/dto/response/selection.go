package response

import (
	"seatmap-engine/internal/seatmap"
)

type SelectionResponse struct {
	SegmentID  string `json:"segment_id"`
	TravelerID string `json:"traveler_id"`
	SeatNumber string `json:"seat_number"`
	Price      string `json:"price"`
	Currency   string `json:"currency,omitempty"`
}

type SeatStatusResponse struct {
	SegmentIndex    int            `json:"segment_index"`
	SegmentID       string         `json:"segment_id"`
	SeatNumber      string         `json:"seat_number"`
	TravelerID      string         `json:"traveler_id,omitempty"`
	Status          seatmap.Status `json:"status"`
	Characteristics []string       `json:"characteristics,omitempty"`
}

type TotalResponse struct {
	Amount     string            `json:"amount"`
	Currency   string            `json:"currency"`
	Selections int               `json:"selections"`
	ByCurrency map[string]string `json:"by_currency,omitempty"`
}

func SelectionToResponse(rec seatmap.SelectionRecord) SelectionResponse {
	return SelectionResponse{
		SegmentID:  rec.SegmentID,
		TravelerID: rec.TravelerID,
		SeatNumber: rec.SeatNumber,
		Price:      rec.Price.StringFixed(2),
		Currency:   rec.Currency,
	}
}

func SelectionsToResponse(records []seatmap.SelectionRecord) []SelectionResponse {
	out := make([]SelectionResponse, len(records))
	for i, r := range records {
		out[i] = SelectionToResponse(r)
	}
	return out
}

func TotalToResponse(total seatmap.Total, records []seatmap.SelectionRecord) TotalResponse {
	res := TotalResponse{
		Amount:     total.Amount.StringFixed(2),
		Currency:   total.Currency,
		Selections: len(records),
	}
	sums := seatmap.SumByCurrency(records)
	if len(sums) > 1 {
		res.ByCurrency = make(map[string]string, len(sums))
		for c, amount := range sums {
			res.ByCurrency[c] = amount.StringFixed(2)
		}
	}
	return res
}
