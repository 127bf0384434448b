package seatmap

import (
	"github.com/shopspring/decimal"
)

type Total struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// SumByCurrency groups selection prices by currency. Records without a currency are keyed by "".
func SumByCurrency(records []SelectionRecord) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		sums[r.Currency] = sums[r.Currency].Add(r.Price)
	}
	return sums
}

// Aggregate totals the selections. Records without a currency count toward whichever
// currency the rest share; two or more distinct currencies yield a *MixedCurrencyError.
func Aggregate(records []SelectionRecord, defaultCurrency string) (Total, error) {
	sums := SumByCurrency(records)

	total := Total{Amount: decimal.Zero, Currency: defaultCurrency}
	priced := make(map[string]decimal.Decimal)
	for currency, amount := range sums {
		total.Amount = total.Amount.Add(amount)
		if currency != "" {
			priced[currency] = amount
			total.Currency = currency
		}
	}

	if len(priced) > 1 {
		return Total{}, &MixedCurrencyError{Totals: priced}
	}
	return total, nil
}
