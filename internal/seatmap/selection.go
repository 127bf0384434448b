package seatmap

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SelectionRecord is one traveler's seat choice on one segment.
type SelectionRecord struct {
	SegmentID  string          `json:"segment_id"`
	TravelerID string          `json:"traveler_id"`
	SeatNumber string          `json:"seat_number"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
}

// SelectionReader is the read side of the selection state used by the status resolver.
type SelectionReader interface {
	HolderOf(segmentID, seatNumber string) (SelectionRecord, bool)
}

type slot struct {
	segment string
	key     string
}

// SelectionManager holds the seat selections of a whole itinerary.
//
// Records live in an ordered arena indexed by (segment, traveler) and (segment, seat).
// It is not safe for concurrent use; hosts serialize calls themselves.
type SelectionManager struct {
	travelers     map[string]bool
	maxSelections int

	records    []SelectionRecord
	byTraveler map[slot]int
	bySeat     map[slot]int
}

// NewSelectionManager creates a manager for the given travelers. maxSelections caps the
// records per segment; zero means one per traveler.
func NewSelectionManager(travelerIDs []string, maxSelections int) *SelectionManager {
	travelers := make(map[string]bool, len(travelerIDs))
	for _, id := range travelerIDs {
		travelers[id] = true
	}

	return &SelectionManager{
		travelers:     travelers,
		maxSelections: maxSelections,
		byTraveler:    make(map[slot]int),
		bySeat:        make(map[slot]int),
	}
}

// Knows reports whether the traveler may hold selections. Without a traveler list everyone may.
func (m *SelectionManager) Knows(travelerID string) bool {
	return len(m.travelers) == 0 || m.travelers[travelerID]
}

// Limit is the maximum number of records per segment; zero means unbounded.
func (m *SelectionManager) Limit() int {
	limit := len(m.travelers)
	if m.maxSelections > 0 && (limit == 0 || m.maxSelections < limit) {
		limit = m.maxSelections
	}
	return limit
}

// Select records a seat for a traveler, replacing the traveler's previous seat on the segment.
// A rejected call leaves the state unchanged.
func (m *SelectionManager) Select(rec SelectionRecord) error {
	rec.SeatNumber = normalizeSeat(rec.SeatNumber)

	if !m.Knows(rec.TravelerID) {
		return ErrUnknownTraveler
	}

	if idx, ok := m.bySeat[slot{rec.SegmentID, rec.SeatNumber}]; ok && m.records[idx].TravelerID != rec.TravelerID {
		return ErrSeatTaken
	}

	prior, replacing := m.byTraveler[slot{rec.SegmentID, rec.TravelerID}]
	if !replacing {
		if limit := m.Limit(); limit > 0 && m.countSegment(rec.SegmentID) >= limit {
			return ErrCapacityExceeded
		}
	} else {
		m.removeAt(prior)
	}

	m.records = append(m.records, rec)
	m.reindex()
	return nil
}

// Deselect removes the traveler's record on the segment. Returns false when there was none.
func (m *SelectionManager) Deselect(segmentID, travelerID string) bool {
	idx, ok := m.byTraveler[slot{segmentID, travelerID}]
	if !ok {
		return false
	}
	m.removeAt(idx)
	m.reindex()
	return true
}

// DeselectBySeat removes whichever record occupies the seat on the segment.
func (m *SelectionManager) DeselectBySeat(segmentID, seatNumber string) (SelectionRecord, bool) {
	idx, ok := m.bySeat[slot{segmentID, normalizeSeat(seatNumber)}]
	if !ok {
		return SelectionRecord{}, false
	}
	rec := m.records[idx]
	m.removeAt(idx)
	m.reindex()
	return rec, true
}

func (m *SelectionManager) HolderOf(segmentID, seatNumber string) (SelectionRecord, bool) {
	idx, ok := m.bySeat[slot{segmentID, normalizeSeat(seatNumber)}]
	if !ok {
		return SelectionRecord{}, false
	}
	return m.records[idx], true
}

func (m *SelectionManager) SelectionOf(segmentID, travelerID string) (SelectionRecord, bool) {
	idx, ok := m.byTraveler[slot{segmentID, travelerID}]
	if !ok {
		return SelectionRecord{}, false
	}
	return m.records[idx], true
}

// Selections returns a copy of all records in selection order.
func (m *SelectionManager) Selections() []SelectionRecord {
	out := make([]SelectionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// SegmentSelections returns the records of one segment in selection order.
func (m *SelectionManager) SegmentSelections(segmentID string) []SelectionRecord {
	var out []SelectionRecord
	for _, r := range m.records {
		if r.SegmentID == segmentID {
			out = append(out, r)
		}
	}
	return out
}

// Restore replays records into an empty manager, rejecting any that break an invariant.
func (m *SelectionManager) Restore(records []SelectionRecord) error {
	m.records = nil
	m.reindex()
	for _, r := range records {
		if err := m.Select(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *SelectionManager) countSegment(segmentID string) int {
	n := 0
	for _, r := range m.records {
		if r.SegmentID == segmentID {
			n++
		}
	}
	return n
}

func (m *SelectionManager) removeAt(idx int) {
	m.records = append(m.records[:idx], m.records[idx+1:]...)
}

func (m *SelectionManager) reindex() {
	clear(m.byTraveler)
	clear(m.bySeat)
	for i, r := range m.records {
		m.byTraveler[slot{r.SegmentID, r.TravelerID}] = i
		m.bySeat[slot{r.SegmentID, r.SeatNumber}] = i
	}
}

func normalizeSeat(seatNumber string) string {
	return strings.ToUpper(strings.TrimSpace(seatNumber))
}
