package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in minor units. It serializes as a decimal
// string with exactly two fraction digits ("19.99") and accepts either a
// JSON string or number on input.
type Cents int64

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := ParseCents(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCents converts a decimal string such as "19.99" or "5" to cents.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse money: empty value")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	var minor int64
	switch len(frac) {
	case 0:
	case 1:
		minor, err = strconv.ParseInt(frac, 10, 64)
		minor *= 10
	case 2:
		minor, err = strconv.ParseInt(frac, 10, 64)
	default:
		return 0, fmt.Errorf("parse money %q: more than two fraction digits", s)
	}
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	total := units*100 + minor
	if neg {
		total = -total
	}
	return Cents(total), nil
}
