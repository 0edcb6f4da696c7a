package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts travel through the service as integer centimos so cart arithmetic
// never accumulates float error; decimals exist only at the API boundary.

var centsPerUnit = decimal.NewFromInt(100)

// ParseToCents converts a decimal amount string (e.g. "18.50") into centimos.
// More than two fraction digits or a non-numeric value is rejected.
func ParseToCents(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("amount is required")
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	cents := dec.Mul(centsPerUnit)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", value)
	}
	return int(cents.IntPart()), nil
}

// FromCents renders centimos as a plain decimal string with two fraction digits.
func FromCents(cents int) string {
	return decimal.NewFromInt(int64(cents)).Div(centsPerUnit).StringFixed(2)
}

// Format prepends the currency symbol to the two-digit decimal rendering,
// matching how amounts appear in the menu and the WhatsApp order message.
func Format(symbol string, cents int) string {
	return symbol + FromCents(cents)
}
