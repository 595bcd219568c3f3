package money

import (
	"errors"
	"strconv"
	"strings"
)

// Cents is a monetary amount in BRL minor units.
type Cents int64

var ErrInvalidAmount = errors.New("invalid amount")

// FormatBRL renders an amount the way the storefront shows prices,
// e.g. 123456 -> "R$ 1.234,56".
func FormatBRL(v Cents) string {
	neg := v < 0
	if neg {
		v = -v
	}

	reais := int64(v) / 100
	cents := int64(v) % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "R$ " + b.String() + "," + pad2(cents)
	if neg {
		out = "-" + out
	}
	return out
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseBRL reads localized free-text currency input such as "R$ 1.234,56",
// "50,00" or "50". Thousands dots are stripped and the decimal comma is
// converted before parsing.
func ParseBRL(raw string) (Cents, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, found := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	switch {
	case strings.HasPrefix(whole, "-"):
		neg = true
		whole = whole[1:]
	case strings.HasPrefix(whole, "+"):
		whole = whole[1:]
	}
	// one sign only; "--5" is garbage, not a double negation
	if strings.HasPrefix(whole, "-") || strings.HasPrefix(whole, "+") {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}

	reais, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var cents int64
	if found {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, ErrInvalidAmount
		}
	}

	total := reais*100 + cents
	if neg {
		total = -total
	}
	return Cents(total), nil
}
