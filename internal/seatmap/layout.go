package seatmap

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"seatmap-engine/internal/data/entity"
)

// CabinLayout groups the seat columns of a deck into sections separated by aisles.
type CabinLayout struct {
	Columns  []string   `json:"columns"`
	Sections [][]string `json:"sections"`
	Widebody bool       `json:"widebody"`
}

// Aisles is the number of aisles implied by the section boundaries.
func (l CabinLayout) Aisles() int {
	if len(l.Sections) < 2 {
		return 0
	}
	return len(l.Sections) - 1
}

// IsEdge reports whether label is the first or last column of the cabin.
func (l CabinLayout) IsEdge(label string) bool {
	n := len(l.Columns)
	return n > 0 && (l.Columns[0] == label || l.Columns[n-1] == label)
}

// IsAisleAdjacent reports whether label borders an aisle between two sections.
func (l CabinLayout) IsAisleAdjacent(label string) bool {
	for i, section := range l.Sections {
		if len(section) == 0 {
			continue
		}
		if i > 0 && section[0] == label {
			return true
		}
		if i < len(l.Sections)-1 && section[len(section)-1] == label {
			return true
		}
	}
	return false
}

// Pattern renders the layout as section sizes, e.g. "3-4-3".
func (l CabinLayout) Pattern() string {
	sizes := make([]string, len(l.Sections))
	for i, s := range l.Sections {
		sizes[i] = fmt.Sprint(len(s))
	}
	return strings.Join(sizes, "-")
}

// LayoutStrategy turns the distinct seat column labels of a deck into a CabinLayout.
type LayoutStrategy interface {
	ClassifyColumns(labels []string) CabinLayout
}

// HeuristicLayout infers sections from the column count alone:
// up to 6 columns split in two halves, 7-8 as 2/x/2, 9 or more as 3/x/3.
type HeuristicLayout struct{}

func (HeuristicLayout) ClassifyColumns(labels []string) CabinLayout {
	columns := normalizeLabels(labels)
	n := len(columns)

	var sizes []int
	switch {
	case n == 0:
		sizes = nil
	case n == 1:
		sizes = []int{1}
	case n <= 6:
		sizes = []int{n / 2, n - n/2}
	case n <= 8:
		sizes = []int{2, n - 4, 2}
	default:
		sizes = []int{3, n - 6, 3}
	}

	return newLayout(columns, split(columns, sizes))
}

// DetectCabinLayout applies the default heuristic.
func DetectCabinLayout(labels []string) CabinLayout {
	return HeuristicLayout{}.ClassifyColumns(labels)
}

// ConfiguredLayout applies authoritative sections and falls back when the
// observed labels are not all covered by the configuration.
type ConfiguredLayout struct {
	Sections [][]string
	Fallback LayoutStrategy
}

func (c ConfiguredLayout) ClassifyColumns(labels []string) CabinLayout {
	columns := normalizeLabels(labels)

	known := make(map[string]bool)
	for _, section := range c.Sections {
		for _, label := range section {
			known[label] = true
		}
	}

	observed := make(map[string]bool, len(columns))
	for _, label := range columns {
		if !known[label] {
			return c.fallback().ClassifyColumns(labels)
		}
		observed[label] = true
	}

	var sections [][]string
	for _, section := range c.Sections {
		var kept []string
		for _, label := range section {
			if observed[label] {
				kept = append(kept, label)
			}
		}
		if len(kept) > 0 {
			sections = append(sections, kept)
		}
	}

	return newLayout(columns, sections)
}

func (c ConfiguredLayout) fallback() LayoutStrategy {
	if c.Fallback == nil {
		return HeuristicLayout{}
	}
	return c.Fallback
}

// LayoutRegistry picks a strategy per aircraft type code.
type LayoutRegistry struct {
	byAircraft map[string][][]string
	fallback   LayoutStrategy
}

func NewLayoutRegistry(byAircraft map[string][][]string) *LayoutRegistry {
	return &LayoutRegistry{byAircraft: byAircraft, fallback: HeuristicLayout{}}
}

func (r *LayoutRegistry) For(aircraftCode string) LayoutStrategy {
	if r == nil {
		return HeuristicLayout{}
	}
	if sections, ok := r.byAircraft[strings.ToUpper(aircraftCode)]; ok {
		return ConfiguredLayout{Sections: sections, Fallback: r.fallback}
	}
	return r.fallback
}

// ParseLayouts reads "359=ABC-DEFG-HJK;320=ABC-DEF" into per-aircraft sections.
func ParseLayouts(s string) (map[string][][]string, error) {
	out := make(map[string][][]string)
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		code, pattern, ok := strings.Cut(entry, "=")
		code, pattern = strings.ToUpper(strings.TrimSpace(code)), strings.TrimSpace(pattern)
		if !ok || code == "" || pattern == "" {
			return nil, fmt.Errorf("invalid layout entry %q", entry)
		}

		var sections [][]string
		for _, group := range strings.Split(pattern, "-") {
			group = strings.ToUpper(strings.TrimSpace(group))
			if group == "" {
				return nil, fmt.Errorf("empty section in layout %q", entry)
			}
			sections = append(sections, strings.Split(group, ""))
		}
		out[code] = sections
	}
	return out, nil
}

// ColumnLabels returns the sorted distinct column labels of a deck's seats.
func ColumnLabels(seats []entity.Seat) []string {
	labels := make([]string, 0, len(seats))
	for i := range seats {
		labels = append(labels, seats[i].ColumnLabel())
	}
	return normalizeLabels(labels)
}

func normalizeLabels(labels []string) []string {
	set := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" || set[l] {
			continue
		}
		set[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func split(columns []string, sizes []int) [][]string {
	sections := make([][]string, 0, len(sizes))
	start := 0
	for _, size := range sizes {
		sections = append(sections, slices.Clone(columns[start:start+size]))
		start += size
	}
	return sections
}

func newLayout(columns []string, sections [][]string) CabinLayout {
	l := CabinLayout{Columns: columns, Sections: sections}
	l.Widebody = l.Aisles() > 1
	return l
}
