package response

import (
	"seatmap-engine/internal/data/entity"
	"seatmap-engine/internal/seatmap"
)

type CabinViewResponse struct {
	SegmentIndex int               `json:"segment_index"`
	SegmentID    string            `json:"segment_id"`
	DeckIndex    int               `json:"deck_index"`
	DeckType     entity.DeckType   `json:"deck_type,omitempty"`
	StartRow     int               `json:"start_row"`
	EndRow       int               `json:"end_row"`
	MinColumn    int               `json:"min_column"`
	MaxColumn    int               `json:"max_column"`
	Layout       LayoutResponse    `json:"layout"`
	WingRows     *seatmap.RowRange `json:"wing_rows,omitempty"`
	ExitRows     []int             `json:"exit_rows,omitempty"`
	Cells        [][]CellResponse  `json:"cells"`
}

type LayoutResponse struct {
	Pattern  string     `json:"pattern"`
	Columns  []string   `json:"columns"`
	Sections [][]string `json:"sections"`
	Widebody bool       `json:"widebody"`
}

type CellResponse struct {
	Kind         seatmap.CellKind    `json:"kind"`
	Row          int                 `json:"row"`
	Column       int                 `json:"column"`
	SeatNumber   string              `json:"seat_number,omitempty"`
	ColumnLabel  string              `json:"column_label,omitempty"`
	RowNumber    int                 `json:"row_number,omitempty"`
	Cabin        string              `json:"cabin,omitempty"`
	Status       seatmap.Status      `json:"status,omitempty"`
	Traits       *seatmap.SeatTraits `json:"traits,omitempty"`
	Price        *PriceResponse      `json:"price,omitempty"`
	FacilityCode string              `json:"facility_code,omitempty"`
	FacilityName string              `json:"facility_name,omitempty"`
}

type PriceResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

// CabinViewToResponse renders a cabin view. status resolves the status of each seat cell;
// travelerID picks whose price is shown.
func CabinViewToResponse(view *seatmap.CabinView, dictionaries *entity.Dictionaries, travelerID string, status func(*entity.Seat) seatmap.Status) CabinViewResponse {
	res := CabinViewResponse{
		SegmentIndex: view.SegmentIndex,
		SegmentID:    view.SegmentID,
		DeckIndex:    view.DeckIndex,
		DeckType:     view.DeckType,
		StartRow:     view.Grid.StartRow,
		EndRow:       view.Grid.EndRow,
		MinColumn:    view.Grid.MinColumn,
		MaxColumn:    view.Grid.MaxColumn,
		Layout: LayoutResponse{
			Pattern:  view.Layout.Pattern(),
			Columns:  view.Layout.Columns,
			Sections: view.Layout.Sections,
			Widebody: view.Layout.Widebody,
		},
		WingRows: view.WingRows,
		ExitRows: view.ExitRows,
		Cells:    make([][]CellResponse, len(view.Cells)),
	}

	var facilityNames map[string]string
	if dictionaries != nil {
		facilityNames = dictionaries.Facilities
	}

	for r, row := range view.Cells {
		res.Cells[r] = make([]CellResponse, len(row))
		for c, cell := range row {
			out := CellResponse{Kind: cell.Kind, Row: cell.Row, Column: cell.Column}

			switch cell.Kind {
			case seatmap.CellSeat:
				out.SeatNumber = cell.Seat.Number
				out.ColumnLabel = cell.ColumnLabel
				out.RowNumber = cell.RowNumber
				out.Cabin = cell.Seat.Cabin
				out.Traits = cell.Traits
				out.Status = status(cell.Seat)
				out.Price = seatPrice(cell.Seat, travelerID)
			case seatmap.CellFacility:
				out.FacilityCode = cell.Facility.Code
				out.FacilityName = seatmap.FacilityName(cell.Facility.Code, facilityNames)
			}

			res.Cells[r][c] = out
		}
	}

	return res
}

func seatPrice(seat *entity.Seat, travelerID string) *PriceResponse {
	var pricing *entity.TravelerPricing
	switch {
	case travelerID != "":
		pricing = seat.PricingFor(travelerID)
	case len(seat.TravelerPricing) > 0:
		pricing = &seat.TravelerPricing[0]
	}
	if pricing == nil || pricing.Price == nil {
		return nil
	}
	return &PriceResponse{Amount: pricing.Price.Total.StringFixed(2), Currency: pricing.Price.Currency}
}
