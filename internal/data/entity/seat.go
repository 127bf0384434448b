package entity

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Traveler pricing availability flags as sent by the distribution system.
const (
	SeatAvailable = "AVAILABLE"
	SeatOccupied  = "OCCUPIED"
	SeatBlocked   = "BLOCKED"
)

type Coordinates struct {
	X *int `json:"x,omitempty"` // row axis (aircraft length)
	Y *int `json:"y,omitempty"` // column axis (aircraft width)
}

// Point returns the (row, column) pair, or ok=false when either axis is missing.
func (c *Coordinates) Point() (row, column int, ok bool) {
	if c == nil || c.X == nil || c.Y == nil {
		return 0, 0, false
	}
	return *c.X, *c.Y, true
}

func NewCoordinates(row, column int) *Coordinates {
	return &Coordinates{X: &row, Y: &column}
}

type SeatPrice struct {
	Currency string           `json:"currency,omitempty" validate:"omitempty,iso4217"`
	Total    decimal.Decimal  `json:"total"`
	Base     *decimal.Decimal `json:"base,omitempty"`
}

type TravelerPricing struct {
	TravelerID             string     `json:"travelerId" validate:"max=64"`
	SeatAvailabilityStatus string     `json:"seatAvailabilityStatus"`
	Price                  *SeatPrice `json:"price,omitempty"`
}

type SeatAmenity struct {
	AmenityType  string `json:"amenityType,omitempty"`
	IsChargeable *bool  `json:"isChargeable,omitempty"`
}

type Seat struct {
	Cabin                string            `json:"cabin,omitempty"`
	Number               string            `json:"number" validate:"max=8"` // 14C
	CharacteristicsCodes []string          `json:"characteristicsCodes,omitempty"`
	Coordinates          *Coordinates      `json:"coordinates,omitempty"`
	TravelerPricing      []TravelerPricing `json:"travelerPricing,omitempty" validate:"dive"`
	Amenities            []SeatAmenity     `json:"amenities,omitempty"`
}

// ColumnLabel strips the digits from the seat number ("14C" -> "C").
func (s *Seat) ColumnLabel() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, strings.TrimSpace(s.Number))
}

// RowNumber strips the letters from the seat number ("14C" -> 14). Returns 0 when no digits remain.
func (s *Seat) RowNumber() int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s.Number)

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func (s *Seat) HasCode(code string) bool {
	for _, c := range s.CharacteristicsCodes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// PricingFor returns the pricing entry of a traveler, or nil when the seat is not offered to them.
func (s *Seat) PricingFor(travelerID string) *TravelerPricing {
	for i := range s.TravelerPricing {
		if s.TravelerPricing[i].TravelerID == travelerID {
			return &s.TravelerPricing[i]
		}
	}
	return nil
}

type Facility struct {
	Code        string       `json:"code"`               // LA, GA, ST, CL ...
	Column      string       `json:"column,omitempty"`   // A, B, C
	Row         string       `json:"row,omitempty"`      // 40
	Position    string       `json:"position,omitempty"` // FRONT, REAR, SEAT
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
