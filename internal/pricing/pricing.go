// Package pricing converts between display prices ("৳65,000") and the
// integer amounts orders are computed in.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse extracts the integer amount from a display price by stripping
// every non-digit rune (currency symbol, thousands separators). An input
// with no digits parses to 0.
func Parse(display string) int {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		// Only possible on overflow of a digits-only string.
		return 0
	}
	return n
}

// Total computes the tax-inclusive amount round(unit * (1 + taxRate)),
// half away from zero.
func Total(unitPrice int, taxRate float64) int {
	total := decimal.NewFromInt(int64(unitPrice)).
		Mul(decimal.NewFromFloat(1).Add(decimal.NewFromFloat(taxRate))).
		Round(0)
	return int(total.IntPart())
}

// Format renders an integer amount as a display price with thousands
// separators, e.g. 65000 -> "৳65,000".
func Format(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return fmt.Sprintf("৳-%s", out)
	}
	return fmt.Sprintf("৳%s", out)
}
