package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amount is a monetary value the backend may send as a number, a numeric
// string or null. Anything unparseable counts as zero.
type Amount struct{ decimal.Decimal }

func NewAmount(f float64) Amount { return Amount{decimal.NewFromFloat(f)} }

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// FromMinor converts paise to rupees.
func FromMinor(d decimal.Decimal) decimal.Decimal { return d.Div(hundred) }

// FormatINR renders ₹ with Indian digit grouping (12,34,567) at the given precision.
func FormatINR(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	out := "₹" + groupIndian(intPart) + frac
	if neg {
		out = "-" + out
	}
	return out
}

func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
