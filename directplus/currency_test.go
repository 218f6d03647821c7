package directplus

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCurrencyCode(t *testing.T) {
	tests := map[string]string{
		"EUR": "978",
		"usd": "840",
		"GBP": "826",
		"JPY": "392",
		"ISK": "352",
		"AUD": "036",
	}
	for alpha, want := range tests {
		got, err := CurrencyCode(alpha)
		require.NoError(t, err)
		require.Equal(t, want, got, alpha)
	}

	_, err := CurrencyCode("XYZ")
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
	require.Len(t, SupportedCurrencies(), 14)
}

func TestToMinorUnits(t *testing.T) {
	got, err := ToMinorUnits(decimal.RequireFromString("12.34"), "EUR")
	require.NoError(t, err)
	require.Equal(t, int64(1234), got)

	got, err = ToMinorUnits(decimal.RequireFromString("1500"), "JPY")
	require.NoError(t, err)
	require.Equal(t, int64(1500), got)

	_, err = ToMinorUnits(decimal.RequireFromString("1.5"), "JPY")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ToMinorUnits(decimal.RequireFromString("0.001"), "EUR")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ToMinorUnits(decimal.RequireFromString("-1"), "EUR")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ToMinorUnits(decimal.RequireFromString("1"), "XXX")
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestOperations(t *testing.T) {
	codes := make(map[string]Operation)
	for op := OpAuthorize; op <= OpForceCaptureDirectly; op++ {
		require.True(t, op.Valid(), op.String())
		require.Len(t, op.Code(), 5)
		_, dup := codes[op.Code()]
		require.False(t, dup, op.Code())
		codes[op.Code()] = op

		parsed, ok := ParseOperation(op.Code())
		require.True(t, ok)
		require.Equal(t, op, parsed)
	}
	require.Len(t, codes, 18)

	require.Equal(t, "00053", OpSubscriberPurchase.Code())
	require.Equal(t, "subscriber_purchase", OpSubscriberPurchase.String())
	require.Equal(t, "00061", OpForceCaptureDirectly.Code())

	_, ok := ParseOperation("99999")
	require.False(t, ok)
	require.False(t, Operation(0).Valid())
	require.Equal(t, "operation(0)", Operation(0).String())
}
