package models

import (
	"fmt"
	"strings"
)

// FormatMoney renders a monetary amount with a magnitude suffix, e.g.
// "$1.50T", "$250.30B", "$50.20M". Amounts under a million are grouped with
// commas instead.
func FormatMoney(amount float64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%.2fT", symbol, amount/1e12)
	case amount >= 1e9:
		return fmt.Sprintf("%s%.2fB", symbol, amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("%s%.2fM", symbol, amount/1e6)
	default:
		return symbol + groupThousands(amount)
	}
}

// FormatPrice renders a share price with two decimals and the currency
// symbol, e.g. "$182.52".
func FormatPrice(price float64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, price)
}

// FormatPercent renders a percentage with an explicit sign, e.g. "+12.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatRatio renders a unitless ratio such as P/E or beta.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatCount renders an integer with thousands separators, e.g. "164,000".
func FormatCount(n int64) string {
	return groupThousands(float64(n))
}

// groupThousands formats a non-negative amount with comma separators and no
// decimals.
func groupThousands(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
