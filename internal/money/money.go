// Package money converts bank-formatted figures into signed integer cents.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ParseEuropean parses an amount written with "." as thousands separator and
// "," as decimal separator into cents. A blank figure is zero.
// Examples: "1.234,56" -> 123456, "-3,20" -> -320, "10,00" -> 1000.
func ParseEuropean(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, nil
	}

	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return parseDecimal(s, clean)
}

// ParseLenient parses a figure that may carry a currency symbol and may use
// either notation. A comma switches to European notation; otherwise the value
// is read as-is. Blank input is zero.
func ParseLenient(s string) (int64, error) {
	clean := strings.NewReplacer("€", "", "$", "", "£", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, nil
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return parseDecimal(s, clean)
}

// FromFloat converts a native spreadsheet or API number into cents,
// rounding half away from zero.
func FromFloat(f float64) int64 {
	return decimal.NewFromFloat(f).Mul(hundred).Round(0).IntPart()
}

// ToFloat converts cents back into a decimal number of currency units.
func ToFloat(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// Format renders cents as a plain decimal string, e.g. -320 -> "-3.20".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func parseDecimal(raw, clean string) (int64, error) {
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("amount %q out of range", raw)
	}

	return cents.IntPart(), nil
}
