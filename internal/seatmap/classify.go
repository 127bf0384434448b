package seatmap

import (
	"seatmap-engine/internal/data/entity"
)

// DefaultAisleThreshold is the seat occupancy ratio under which a column is treated as an aisle.
const DefaultAisleThreshold = 0.10

type SeatTraits struct {
	Exit          bool `json:"exit"`
	ExtraLegroom  bool `json:"extra_legroom"`
	Bulkhead      bool `json:"bulkhead"`
	Preferred     bool `json:"preferred"`
	Premium       bool `json:"premium"`
	Bassinet      bool `json:"bassinet"`
	Window        bool `json:"window"`
	AisleAdjacent bool `json:"aisle_adjacent"`
}

// ClassifiedCell is a grid cell with its primary kind settled and, for seats, its traits.
type ClassifiedCell struct {
	Kind        CellKind
	Row         int
	Column      int
	Seat        *entity.Seat
	Facility    *entity.Facility
	ColumnLabel string
	RowNumber   int
	Traits      *SeatTraits
}

// Classify labels every cell of the grid. It is pure: the grid is not modified.
func Classify(grid *Grid, layout CabinLayout, exitRows []int, aisleThreshold float64) [][]ClassifiedCell {
	if aisleThreshold <= 0 {
		aisleThreshold = DefaultAisleThreshold
	}

	aisleColumns := inferAisleColumns(grid, layout, aisleThreshold)

	exits := make(map[int]bool, len(exitRows))
	for _, r := range exitRows {
		exits[r] = true
	}

	out := make([][]ClassifiedCell, grid.Rows())
	for r, row := range grid.Cells {
		out[r] = make([]ClassifiedCell, len(row))
		for c, cell := range row {
			cc := ClassifiedCell{
				Kind:     cell.Kind,
				Row:      cell.Row,
				Column:   cell.Column,
				Seat:     cell.Seat,
				Facility: cell.Facility,
			}

			switch cell.Kind {
			case CellSeat:
				cc.ColumnLabel = cell.Seat.ColumnLabel()
				cc.RowNumber = cell.Seat.RowNumber()
				cc.Traits = seatTraits(cell.Seat, cc.ColumnLabel, cc.RowNumber, layout, exits)
			case CellEmpty:
				if aisleColumns[c] {
					cc.Kind = CellAisle
				}
			}

			out[r][c] = cc
		}
	}

	return out
}

// inferAisleColumns returns the grid column offsets whose empty cells are aisle.
func inferAisleColumns(grid *Grid, layout CabinLayout, threshold float64) map[int]bool {
	aisles := make(map[int]bool)
	rows := grid.Rows()
	if rows == 0 {
		return aisles
	}

	occupied := make([]int, grid.Columns())
	labelColumns := make(map[string]map[int]int)
	for _, row := range grid.Cells {
		for c, cell := range row {
			if cell.Kind != CellSeat {
				continue
			}
			occupied[c]++

			label := cell.Seat.ColumnLabel()
			if labelColumns[label] == nil {
				labelColumns[label] = make(map[int]int)
			}
			labelColumns[label][c]++
		}
	}

	for c, n := range occupied {
		if float64(n)/float64(rows) < threshold {
			aisles[c] = true
		}
	}

	// Columns strictly between two adjacent sections are aisle as well.
	for i := 0; i+1 < len(layout.Sections); i++ {
		left, okLeft := sectionEdge(layout.Sections[i], labelColumns, true)
		right, okRight := sectionEdge(layout.Sections[i+1], labelColumns, false)
		if !okLeft || !okRight {
			continue
		}
		for c := left + 1; c < right; c++ {
			aisles[c] = true
		}
	}

	return aisles
}

// sectionEdge finds the rightmost (or leftmost) grid column used by a section.
func sectionEdge(section []string, labelColumns map[string]map[int]int, rightmost bool) (int, bool) {
	edge, found := 0, false
	for _, label := range section {
		c, ok := dominantColumn(labelColumns[label])
		if !ok {
			continue
		}
		if !found || (rightmost && c > edge) || (!rightmost && c < edge) {
			edge, found = c, true
		}
	}
	return edge, found
}

// dominantColumn is the column offset where a label appears most often; ties go to the lower offset.
func dominantColumn(counts map[int]int) (int, bool) {
	best, bestCount := 0, 0
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	return best, bestCount > 0
}

func seatTraits(seat *entity.Seat, label string, rowNumber int, layout CabinLayout, exits map[int]bool) *SeatTraits {
	t := &SeatTraits{
		Exit:         seat.HasCode(CodeExit) || exits[rowNumber],
		ExtraLegroom: seat.HasCode(CodeLegroom),
		Bulkhead:     seat.HasCode(CodeBulkhead),
		Preferred:    seat.HasCode(CodePreferred),
		Bassinet:     seat.HasCode(CodeBassinet),
		Premium:      isPremiumCabin(seat.Cabin),
	}

	// Explicit positional codes win; geometry is only consulted when none is present.
	if seat.HasCode(CodeWindow) || seat.HasCode(CodeAisle) || seat.HasCode(CodeCenter) {
		t.Window = seat.HasCode(CodeWindow)
		t.AisleAdjacent = seat.HasCode(CodeAisle)
	} else {
		t.Window = layout.IsEdge(label)
		t.AisleAdjacent = layout.IsAisleAdjacent(label)
	}

	return t
}
