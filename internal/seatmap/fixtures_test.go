package seatmap

import (
	"strconv"

	"seatmap-engine/internal/data/entity"

	"github.com/shopspring/decimal"
)

func seatAt(number string, row, column int, codes ...string) entity.Seat {
	return entity.Seat{
		Cabin:                "ECONOMY",
		Number:               number,
		CharacteristicsCodes: codes,
		Coordinates:          entity.NewCoordinates(row, column),
	}
}

func priced(s entity.Seat, travelerID, status, total, currency string) entity.Seat {
	s.TravelerPricing = append(s.TravelerPricing, entity.TravelerPricing{
		TravelerID:             travelerID,
		SeatAvailabilityStatus: status,
		Price: &entity.SeatPrice{
			Currency: currency,
			Total:    decimal.RequireFromString(total),
		},
	})
	return s
}

func facilityAt(code string, row, column int) entity.Facility {
	return entity.Facility{Code: code, Coordinates: entity.NewCoordinates(row, column)}
}

// narrowDeck is a 3-3 cabin of the given rows with the aisle at column 3.
func narrowDeck(firstRow, rows int) entity.Deck {
	var deck entity.Deck
	labels := []string{"A", "B", "C", "", "D", "E", "F"}
	for r := 0; r < rows; r++ {
		for c, label := range labels {
			if label == "" {
				continue
			}
			number := seatNumber(firstRow+r, label)
			deck.Seats = append(deck.Seats, priced(seatAt(number, firstRow+r, c), "1", entity.SeatAvailable, "10.00", "EUR"))
		}
	}
	return deck
}

func seatNumber(row int, label string) string {
	return strconv.Itoa(row) + label
}
