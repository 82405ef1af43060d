package models

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

type (
	// PriceInCents ...
	PriceInCents int64
)

var (
	priceRegex = regexp.MustCompile(`^(-?)(\d*)(?:\.(\d{1,2}))?$`)
)

// ParsePriceInCents parses a decimal money string like "12.30" into cents.
func ParsePriceInCents(s string) (PriceInCents, error) {
	m := priceRegex.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("invalid price: '%s'", s)
	}
	var units int64
	if m[2] != "" {
		units, _ = strconv.ParseInt(m[2], 10, 64)
	}
	var cents int64
	if m[3] != "" {
		cents, _ = strconv.ParseInt(m[3], 10, 64)
		if len(m[3]) == 1 {
			cents *= 10
		}
	}
	p := PriceInCents(100*units + cents)
	if m[1] == "-" {
		p = -p
	}
	return p, nil
}

// MustParsePriceInCents ...
func MustParsePriceInCents(s string) PriceInCents {
	p, err := ParsePriceInCents(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Format ...
func (p PriceInCents) Format() string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s%d.%02d", sign, p/100, p%100)
}

// Decimal ...
func (p PriceInCents) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

// MarshalJSON ...
func (p PriceInCents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.Format() + `"`), nil
}

// UnmarshalJSON ...
func (p *PriceInCents) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParsePriceInCents(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
