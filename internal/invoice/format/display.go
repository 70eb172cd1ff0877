package format

import (
	"strings"

	"github.com/inkbill/inkbill/pkg/money"
)

// Money renders an amount for print: thousands separated by dots, comma
// decimal mark, currency code suffixed ("1.234,56 EUR").
func Money(a money.Amount, currency string) string {
	s := a.String()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	if c := strings.TrimSpace(currency); c != "" {
		b.WriteByte(' ')
		b.WriteString(c)
	}
	return b.String()
}

// Quantity renders a quantity with trailing zeros trimmed ("3", "1.25").
func Quantity(q money.Quantity) string {
	return q.String()
}

// Percent renders a tax rate as a percentage ("8%", "7.5%").
func Percent(r money.Rate) string {
	s := money.Amount(r).String() // basis points / 100 = percent, 2dp
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + "%"
}
