package seatmap

import (
	"fmt"
	"strconv"
	"strings"

	"seatmap-engine/internal/data/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Options struct {
	// MaxSelections caps the selections per segment; zero means one per traveler.
	MaxSelections   int
	AisleThreshold  float64
	DefaultCurrency string
	Layouts         *LayoutRegistry
	Dictionaries    *entity.Dictionaries
}

// RowRange is an inclusive range of declared rows.
type RowRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CabinView is the read-only, render-ready picture of one deck of one segment.
type CabinView struct {
	SegmentIndex int
	DeckIndex    int
	SegmentID    string
	DeckType     entity.DeckType
	Grid         *Grid
	Layout       CabinLayout
	Cells        [][]ClassifiedCell
	WingRows     *RowRange
	ExitRows     []int
}

// Engine binds the seatmaps of an itinerary to its selection state.
type Engine struct {
	seatmaps   []entity.Seatmap
	selections *SelectionManager
	opts       Options
	log        *zap.Logger
}

func NewEngine(seatmaps []entity.Seatmap, travelerIDs []string, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		seatmaps:   seatmaps,
		selections: NewSelectionManager(travelerIDs, opts.MaxSelections),
		opts:       opts,
		log:        log.With(zap.String("component", "seatmap")),
	}
}

func (e *Engine) Segments() int {
	return len(e.seatmaps)
}

func (e *Engine) Seatmap(segmentIndex int) (*entity.Seatmap, error) {
	if segmentIndex < 0 || segmentIndex >= len(e.seatmaps) {
		return nil, fmt.Errorf("segment %d: %w", segmentIndex, ErrSegmentNotFound)
	}
	return &e.seatmaps[segmentIndex], nil
}

// SegmentID is the seatmap's segment identifier, or its 1-based position when the carrier sent none.
func (e *Engine) SegmentID(segmentIndex int) (string, error) {
	sm, err := e.Seatmap(segmentIndex)
	if err != nil {
		return "", err
	}
	if sm.SegmentID != "" {
		return sm.SegmentID, nil
	}
	return strconv.Itoa(segmentIndex + 1), nil
}

func (e *Engine) Dictionaries() *entity.Dictionaries {
	return e.opts.Dictionaries
}

// CabinView rebuilds the grid, layout and classification of a deck.
func (e *Engine) CabinView(segmentIndex, deckIndex int) (*CabinView, error) {
	sm, err := e.Seatmap(segmentIndex)
	if err != nil {
		return nil, err
	}
	if deckIndex < 0 || deckIndex >= len(sm.Decks) {
		return nil, fmt.Errorf("segment %d deck %d: %w", segmentIndex, deckIndex, ErrDeckNotFound)
	}
	segmentID, _ := e.SegmentID(segmentIndex)

	deck := &sm.Decks[deckIndex]
	grid := BuildGrid(deck, e.log.With(zap.String("segment_id", segmentID), zap.Int("deck", deckIndex)))
	layout := e.opts.Layouts.For(sm.AircraftCode()).ClassifyColumns(ColumnLabels(deck.Seats))
	cells := Classify(grid, layout, deck.ExitRows(), e.opts.AisleThreshold)

	view := &CabinView{
		SegmentIndex: segmentIndex,
		DeckIndex:    deckIndex,
		SegmentID:    segmentID,
		DeckType:     deck.DeckType,
		Grid:         grid,
		Layout:       layout,
		Cells:        cells,
		ExitRows:     deck.ExitRows(),
	}
	if cfg := deck.DeckConfiguration; cfg != nil && cfg.StartWingsRow != nil && cfg.EndWingsRow != nil {
		view.WingRows = &RowRange{Start: *cfg.StartWingsRow, End: *cfg.EndWingsRow}
	}

	return view, nil
}

// FindSeat looks a seat number up across all decks of a segment.
func (e *Engine) FindSeat(segmentIndex int, seatNumber string) (*entity.Seat, error) {
	sm, err := e.Seatmap(segmentIndex)
	if err != nil {
		return nil, err
	}

	want := normalizeSeat(seatNumber)
	for d := range sm.Decks {
		for s := range sm.Decks[d].Seats {
			if normalizeSeat(sm.Decks[d].Seats[s].Number) == want {
				return &sm.Decks[d].Seats[s], nil
			}
		}
	}
	return nil, fmt.Errorf("seat %s on segment %d: %w", seatNumber, segmentIndex, ErrSeatNotFound)
}

// SeatStatus resolves a seat's status on a segment, optionally for one traveler.
func (e *Engine) SeatStatus(segmentIndex int, seatNumber, travelerID string) (Status, error) {
	seat, err := e.FindSeat(segmentIndex, seatNumber)
	if err != nil {
		return "", err
	}
	segmentID, _ := e.SegmentID(segmentIndex)
	return ResolveStatus(seat, e.selections, segmentID, travelerID), nil
}

// StatusOf resolves the status of a seat already looked up on the segment.
func (e *Engine) StatusOf(segmentIndex int, seat *entity.Seat, travelerID string) Status {
	segmentID, _ := e.SegmentID(segmentIndex)
	return ResolveStatus(seat, e.selections, segmentID, travelerID)
}

// AvailableCount counts the seats of a segment still selectable by a traveler.
func (e *Engine) AvailableCount(segmentIndex int, travelerID string) (int, error) {
	sm, err := e.Seatmap(segmentIndex)
	if err != nil {
		return 0, err
	}
	segmentID, _ := e.SegmentID(segmentIndex)

	n := 0
	for d := range sm.Decks {
		for s := range sm.Decks[d].Seats {
			if ResolveStatus(&sm.Decks[d].Seats[s], e.selections, segmentID, travelerID) == StatusAvailable {
				n++
			}
		}
	}
	return n, nil
}

// Select assigns a seat to a traveler at the price offered to that traveler.
func (e *Engine) Select(segmentIndex int, travelerID, seatNumber string) (SelectionRecord, error) {
	segmentID, err := e.SegmentID(segmentIndex)
	if err != nil {
		return SelectionRecord{}, err
	}
	if !e.selections.Knows(travelerID) {
		return SelectionRecord{}, fmt.Errorf("traveler %s: %w", travelerID, ErrUnknownTraveler)
	}

	seat, err := e.FindSeat(segmentIndex, seatNumber)
	if err != nil {
		return SelectionRecord{}, err
	}

	pricing := seat.PricingFor(travelerID)
	if pricing == nil || !strings.EqualFold(pricing.SeatAvailabilityStatus, entity.SeatAvailable) {
		return SelectionRecord{}, fmt.Errorf("seat %s for traveler %s: %w", seat.Number, travelerID, ErrSeatUnavailable)
	}

	rec := SelectionRecord{
		SegmentID:  segmentID,
		TravelerID: travelerID,
		SeatNumber: seat.Number,
		Price:      decimal.Zero,
	}
	if pricing.Price != nil {
		rec.Price = pricing.Price.Total
		rec.Currency = pricing.Price.Currency
	}

	if err := e.selections.Select(rec); err != nil {
		e.log.Debug("Seat selection rejected",
			zap.String("segment_id", segmentID),
			zap.String("traveler_id", travelerID),
			zap.String("seat_number", seat.Number),
			zap.Error(err),
		)
		return SelectionRecord{}, fmt.Errorf("select seat %s: %w", seat.Number, err)
	}

	rec.SeatNumber = normalizeSeat(rec.SeatNumber)
	return rec, nil
}

func (e *Engine) Deselect(segmentIndex int, travelerID string) (bool, error) {
	segmentID, err := e.SegmentID(segmentIndex)
	if err != nil {
		return false, err
	}
	return e.selections.Deselect(segmentID, travelerID), nil
}

func (e *Engine) DeselectBySeat(segmentIndex int, seatNumber string) (SelectionRecord, bool, error) {
	segmentID, err := e.SegmentID(segmentIndex)
	if err != nil {
		return SelectionRecord{}, false, err
	}
	rec, ok := e.selections.DeselectBySeat(segmentID, seatNumber)
	return rec, ok, nil
}

func (e *Engine) Selections() []SelectionRecord {
	return e.selections.Selections()
}

// RestoreSelections replaces the selection state with previously persisted records.
func (e *Engine) RestoreSelections(records []SelectionRecord) error {
	return e.selections.Restore(records)
}

func (e *Engine) Total() (Total, error) {
	return Aggregate(e.selections.Selections(), e.opts.DefaultCurrency)
}
