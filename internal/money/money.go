// Package money parses and formats the currency amounts used across the catalog and ledger.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const symbol = "R$"

// dotGroups matches amounts such as "1.234" or "12.345.678" that only use dots as thousands separators.
var dotGroups = regexp.MustCompile(`^-?[1-9]\d{0,2}(\.\d{3})+$`)

// Parse reads an amount typed by a person or found in a spreadsheet.
// Accepted forms: "12.50", "12,50", "1.234,56", "1,234.56", "R$ 8".
// When both separators are present the rightmost one is the decimal separator.
// Dots alone are thousands separators when every group after the first has three digits,
// so "1.234" is 1234 while "12.50" stays 12.5.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), symbol))
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		if strings.Count(clean, ",") > 1 {
			return decimal.Zero, fmt.Errorf("invalid amount %q", s)
		}

		clean = strings.Replace(clean, ",", ".", 1)
	case dotGroups.MatchString(clean):
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, nil
}

// Format renders an amount with two fixed decimals, e.g. "R$ 12.50".
func Format(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", symbol, d.StringFixed(2))
}

// FormatSigned renders an amount with an explicit sign, e.g. "+ R$ 6.00" or "- R$ 80.00".
func FormatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "- " + Format(d.Abs())
	}

	return "+ " + Format(d)
}
