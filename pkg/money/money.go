// Package money implements fixed-point monetary arithmetic over integer
// minor units. All invoice math happens on int64 values; decimal strings
// appear only at parse/format boundaries.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// AmountScale is the number of minor units per major currency unit.
	AmountScale int64 = 100
	// QuantityScale fixes quantities at three decimal places.
	QuantityScale int64 = 1000
	// RateScale expresses tax rates in basis points of a fraction,
	// so Rate(10000) == 1.0 and Rate(800) == 0.08.
	RateScale int64 = 10000
)

// Amount is a monetary value in minor units (cents for most currencies).
type Amount int64

// Quantity is a count of goods at scale 3 (Quantity(3000) == 3).
type Quantity int64

// Rate is a tax fraction at scale 4 (Rate(800) == 0.08).
type Rate int64

var (
	ErrMalformedDecimal = errors.New("malformed_decimal")
	ErrScaleExceeded    = errors.New("decimal_scale_exceeded")
	ErrValueOutOfRange  = errors.New("decimal_out_of_range")
)

// RoundHalfUpDiv divides n by d rounding half away from zero. d must be
// positive; the sign of the result follows n.
func RoundHalfUpDiv(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2) / d)
}

// MulQuantityPrice computes quantity × unit price rounded half-up to the
// minor unit. This is the per-line rounding step: the product is rounded
// once here and never again.
func MulQuantityPrice(q Quantity, p Amount) Amount {
	return Amount(RoundHalfUpDiv(int64(q)*int64(p), QuantityScale))
}

// ApplyRate computes a×r rounded half-up to the minor unit.
func (a Amount) ApplyRate(r Rate) Amount {
	return Amount(RoundHalfUpDiv(int64(a)*int64(r), RateScale))
}

// parseFixed parses a plain decimal string into an integer scaled by the
// given number of fractional digits. It rejects anything that would lose
// precision instead of silently rounding.
func parseFixed(s string, digits int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMalformedDecimal
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, ErrMalformedDecimal
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if len(fracPart) > digits {
		return 0, fmt.Errorf("%w: %q has more than %d decimal places", ErrScaleExceeded, s, digits)
	}
	for len(fracPart) < digits {
		fracPart += "0"
	}
	if intPart == "" {
		intPart = "0"
	}

	var value int64
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
		}
		d := int64(r - '0')
		if value > (math.MaxInt64-d)/10 {
			return 0, fmt.Errorf("%w: %q", ErrValueOutOfRange, s)
		}
		value = value*10 + d
	}
	if neg {
		value = -value
	}
	return value, nil
}

func formatFixed(v int64, digits int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	scale := int64(1)
	for i := 0; i < digits; i++ {
		scale *= 10
	}
	s := fmt.Sprintf("%d.%0*d", v/scale, digits, v%scale)
	if neg {
		return "-" + s
	}
	return s
}

// ParseAmount parses a decimal string ("19.99") into minor units.
func ParseAmount(s string) (Amount, error) {
	v, err := parseFixed(s, 2)
	return Amount(v), err
}

// ParseQuantity parses a decimal string ("1.5") into a scale-3 quantity.
func ParseQuantity(s string) (Quantity, error) {
	v, err := parseFixed(s, 3)
	return Quantity(v), err
}

// ParseRate parses a fraction string ("0.08") into basis points.
func ParseRate(s string) (Rate, error) {
	v, err := parseFixed(s, 4)
	return Rate(v), err
}

func (a Amount) String() string { return formatFixed(int64(a), 2) }

func (q Quantity) String() string {
	s := formatFixed(int64(q), 3)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func (r Rate) String() string {
	s := formatFixed(int64(r), 4)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// Valid reports whether the rate is inside [0, 1].
func (r Rate) Valid() bool { return r >= 0 && r <= Rate(RateScale) }

// MarshalJSON emits the decimal string form so persisted invoices stay
// lossless across languages and storage.
func (a Amount) MarshalJSON() ([]byte, error)   { return jsonString(a.String()) }
func (q Quantity) MarshalJSON() ([]byte, error) { return jsonString(q.String()) }
func (r Rate) MarshalJSON() ([]byte, error)     { return jsonString(r.String()) }

func (a *Amount) UnmarshalJSON(b []byte) error {
	s, err := jsonUnquote(b)
	if err != nil {
		return err
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s, err := jsonUnquote(b)
	if err != nil {
		return err
	}
	v, err := ParseQuantity(s)
	if err != nil {
		return err
	}
	*q = v
	return nil
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	s, err := jsonUnquote(b)
	if err != nil {
		return err
	}
	v, err := ParseRate(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func jsonString(s string) ([]byte, error) {
	return []byte(`"` + s + `"`), nil
}

// jsonUnquote accepts both quoted decimal strings and bare JSON numbers so
// hand-written drafts remain loadable.
func jsonUnquote(b []byte) (string, error) {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], nil
	}
	if s == "null" {
		return "0", nil
	}
	return s, nil
}
