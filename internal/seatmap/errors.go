package seatmap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded: maximum seats reached")
	ErrSeatTaken        = errors.New("seat already selected by another traveler")
	ErrUnknownTraveler  = errors.New("traveler not found on itinerary")
	ErrMixedCurrency    = errors.New("selections span more than one currency")

	ErrSegmentNotFound = errors.New("segment not found")
	ErrDeckNotFound    = errors.New("deck not found")
	ErrSeatNotFound    = errors.New("seat not found")
	ErrSeatUnavailable = errors.New("seat is not available")
)

// MixedCurrencyError carries the per-currency sums that could not be combined.
type MixedCurrencyError struct {
	Totals map[string]decimal.Decimal
}

func (e *MixedCurrencyError) Error() string {
	currencies := make([]string, 0, len(e.Totals))
	for c := range e.Totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	parts := make([]string, len(currencies))
	for i, c := range currencies {
		parts[i] = fmt.Sprintf("%s %s", e.Totals[c].StringFixed(2), c)
	}
	return fmt.Sprintf("%s: %s", ErrMixedCurrency.Error(), strings.Join(parts, ", "))
}

func (e *MixedCurrencyError) Is(target error) bool {
	return target == ErrMixedCurrency
}
