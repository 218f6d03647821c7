package directplus

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type currency struct {
	numeric  string
	exponent int32
}

var currencies = map[string]currency{
	"AUD": {"036", 2},
	"CAD": {"124", 2},
	"CZK": {"203", 2},
	"DKK": {"208", 2},
	"HKD": {"344", 2},
	"ISK": {"352", 0},
	"JPY": {"392", 0},
	"NOK": {"578", 2},
	"SGD": {"702", 2},
	"SEK": {"752", 2},
	"CHF": {"756", 2},
	"GBP": {"826", 2},
	"USD": {"840", 2},
	"EUR": {"978", 2},
}

func lookupCurrency(code string) (currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return currency{}, fmt.Errorf("%q: %w", code, ErrUnsupportedCurrency)
	}
	return c, nil
}

// CurrencyCode returns the three digit DEVISE code of an ISO 4217 alpha code.
func CurrencyCode(code string) (string, error) {
	c, err := lookupCurrency(code)
	if err != nil {
		return "", err
	}
	return c.numeric, nil
}

// SupportedCurrencies lists the alpha codes the processor accepts.
func SupportedCurrencies() []string {
	out := make([]string, 0, len(currencies))
	for code := range currencies {
		out = append(out, code)
	}
	return out
}

// ToMinorUnits converts a major-unit amount to the integer the gateway sends.
// Amounts with more decimals than the currency allows are rejected.
func ToMinorUnits(amount decimal.Decimal, code string) (int64, error) {
	c, err := lookupCurrency(code)
	if err != nil {
		return 0, err
	}
	minor := amount.Shift(c.exponent)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%s has more than %d decimals for %s: %w", amount, c.exponent, code, ErrInvalidAmount)
	}
	if minor.IsNegative() {
		return 0, fmt.Errorf("%s is negative: %w", amount, ErrInvalidAmount)
	}
	return minor.IntPart(), nil
}
