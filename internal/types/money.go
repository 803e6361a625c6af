// README: Common money value object used across modules.
package types

import "strconv"

const CurrencyINR = "INR"

type Money struct {
	Amount   float64
	Currency string
}

// String renders whole rupees for INR, the way vendor apps show fares.
// Halves round to even.
func (m Money) String() string {
	amount := strconv.FormatFloat(m.Amount, 'f', 0, 64)
	if m.Currency == CurrencyINR || m.Currency == "" {
		return "₹" + amount
	}
	return amount + " " + m.Currency
}
