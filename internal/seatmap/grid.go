package seatmap

import (
	"errors"
	"fmt"

	"seatmap-engine/internal/data/entity"

	"go.uber.org/zap"
)

// Grid extents beyond these are treated as malformed coordinates.
const (
	MaxGridRows    = 256
	MaxGridColumns = 32
)

var ErrGridTooLarge = errors.New("deck coordinates exceed the grid bounds")

type CellKind string

const (
	CellEmpty    CellKind = "empty"
	CellSeat     CellKind = "seat"
	CellFacility CellKind = "facility"
	CellAisle    CellKind = "aisle"
)

// Cell is one position of the cabin grid. Row and Column are physical coordinates.
type Cell struct {
	Kind     CellKind
	Row      int
	Column   int
	Seat     *entity.Seat
	Facility *entity.Facility
}

// Grid is a dense cabin grid bounded by the observed item coordinates.
type Grid struct {
	StartRow  int
	EndRow    int
	MinColumn int
	MaxColumn int
	Cells     [][]Cell // [row-StartRow][column-MinColumn]
}

func (g *Grid) Rows() int {
	return len(g.Cells)
}

func (g *Grid) Columns() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// At returns the cell at physical coordinates.
func (g *Grid) At(row, column int) (*Cell, bool) {
	r, c := row-g.StartRow, column-g.MinColumn
	if r < 0 || r >= g.Rows() || c < 0 || c >= g.Columns() {
		return nil, false
	}
	return &g.Cells[r][c], true
}

type placement struct {
	row, column int
	seat        *entity.Seat
	facility    *entity.Facility
}

// BuildGrid lays a deck's seats and facilities into a grid sized from their coordinates.
// Seats are placed before facilities; on a coordinate collision the later item wins.
func BuildGrid(deck *entity.Deck, log *zap.Logger) *Grid {
	if log == nil {
		log = zap.NewNop()
	}
	if deck == nil {
		return newGrid(0, 0, 0, 0)
	}

	items := make([]placement, 0, len(deck.Seats)+len(deck.Facilities))
	seen := make(map[string]bool, len(deck.Seats))

	for i := range deck.Seats {
		seat := &deck.Seats[i]
		if seen[seat.Number] {
			log.Warn("Duplicate seat number in deck", zap.String("seat_number", seat.Number))
		}
		seen[seat.Number] = true

		row, col, ok := seat.Coordinates.Point()
		if !ok {
			log.Warn("Seat without coordinates skipped", zap.String("seat_number", seat.Number))
			continue
		}
		items = append(items, placement{row: row, column: col, seat: seat})
	}

	for i := range deck.Facilities {
		facility := &deck.Facilities[i]
		row, col, ok := facility.Coordinates.Point()
		if !ok {
			log.Warn("Facility without coordinates skipped", zap.String("code", facility.Code))
			continue
		}
		items = append(items, placement{row: row, column: col, facility: facility})
	}

	if len(items) == 0 {
		return declaredGrid(deck.DeckConfiguration)
	}

	startRow, endRow := items[0].row, items[0].row
	minCol, maxCol := items[0].column, items[0].column
	for _, it := range items[1:] {
		startRow = min(startRow, it.row)
		endRow = max(endRow, it.row)
		minCol = min(minCol, it.column)
		maxCol = max(maxCol, it.column)
	}

	if !withinSpan(startRow, endRow, MaxGridRows) || !withinSpan(minCol, maxCol, MaxGridColumns) {
		log.Warn("Deck coordinates out of bounds, using declared geometry",
			zap.Int("start_row", startRow),
			zap.Int("end_row", endRow),
			zap.Int("min_column", minCol),
			zap.Int("max_column", maxCol),
		)
		return declaredGrid(deck.DeckConfiguration)
	}

	grid := newGrid(startRow, endRow, minCol, maxCol)
	for _, it := range items {
		cell, _ := grid.At(it.row, it.column)
		if cell.Kind != CellEmpty {
			log.Warn("Coordinate collision, later item wins",
				zap.Int("row", it.row),
				zap.Int("column", it.column),
				zap.String("previous", describe(cell)),
			)
		}

		cell.Seat, cell.Facility = it.seat, it.facility
		if it.seat != nil {
			cell.Kind = CellSeat
		} else {
			cell.Kind = CellFacility
		}
	}

	return grid
}

// declaredGrid is the fallback for a deck without placeable items.
func declaredGrid(cfg *entity.DeckConfiguration) *Grid {
	if cfg != nil && cfg.StartSeatRow != nil && cfg.EndSeatRow != nil && cfg.Width != nil &&
		withinSpan(*cfg.StartSeatRow, *cfg.EndSeatRow, MaxGridRows) &&
		*cfg.Width > 0 && *cfg.Width <= MaxGridColumns {
		return newGrid(*cfg.StartSeatRow, *cfg.EndSeatRow, 0, *cfg.Width-1)
	}
	return newGrid(0, 0, 0, 0)
}

// withinSpan reports whether lo..hi holds at most limit positions. The difference is
// taken in uint64 so opposite-signed extremes cannot overflow.
func withinSpan(lo, hi, limit int) bool {
	if hi < lo {
		return false
	}
	return uint64(hi)-uint64(lo) < uint64(limit)
}

// CheckExtents rejects a deck whose placed items span more than MaxGridRows x MaxGridColumns.
func CheckExtents(deck *entity.Deck) error {
	var (
		startRow, endRow, minCol, maxCol int
		found                            bool
	)
	visit := func(c *entity.Coordinates) {
		row, col, ok := c.Point()
		if !ok {
			return
		}
		if !found {
			startRow, endRow, minCol, maxCol, found = row, row, col, col, true
			return
		}
		startRow, endRow = min(startRow, row), max(endRow, row)
		minCol, maxCol = min(minCol, col), max(maxCol, col)
	}

	for i := range deck.Seats {
		visit(deck.Seats[i].Coordinates)
	}
	for i := range deck.Facilities {
		visit(deck.Facilities[i].Coordinates)
	}

	if found && (!withinSpan(startRow, endRow, MaxGridRows) || !withinSpan(minCol, maxCol, MaxGridColumns)) {
		return fmt.Errorf("rows %d..%d, columns %d..%d: %w", startRow, endRow, minCol, maxCol, ErrGridTooLarge)
	}
	return nil
}

func newGrid(startRow, endRow, minCol, maxCol int) *Grid {
	cells := make([][]Cell, endRow-startRow+1)
	for r := range cells {
		cells[r] = make([]Cell, maxCol-minCol+1)
		for c := range cells[r] {
			cells[r][c] = Cell{Kind: CellEmpty, Row: startRow + r, Column: minCol + c}
		}
	}

	return &Grid{
		StartRow:  startRow,
		EndRow:    endRow,
		MinColumn: minCol,
		MaxColumn: maxCol,
		Cells:     cells,
	}
}

func describe(c *Cell) string {
	switch {
	case c.Seat != nil:
		return "seat " + c.Seat.Number
	case c.Facility != nil:
		return "facility " + c.Facility.Code
	default:
		return string(c.Kind)
	}
}
