package ident

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUniqueRequestID(t *testing.T) {
	base := time.Date(2026, time.March, 4, 10, 11, 12, 0, time.UTC)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := UniqueRequestID("order-1", base.Add(time.Duration(i)*time.Microsecond))
		require.Len(t, id, 10)

		n, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
		require.Less(t, n, int64(MaxQuestionNumber))

		_, dup := seen[id]
		require.False(t, dup, "duplicate question number %s", id)
		seen[id] = struct{}{}
	}
}

func TestUniqueRequestID_Deterministic(t *testing.T) {
	now := time.Date(2026, time.March, 4, 10, 11, 12, 345, time.UTC)
	require.Equal(t, UniqueRequestID("seed", now), UniqueRequestID("seed", now))
	require.Len(t, UniqueRequestID("", now), 10)
}

func TestAuthorizationRoundTrip(t *testing.T) {
	token := FormatAuthorization("0000012345", "0000067890")
	require.Equal(t, "00000123450000067890", token)

	call, trans, err := SplitAuthorization(token)
	require.NoError(t, err)
	require.Equal(t, "0000012345", call)
	require.Equal(t, "0000067890", trans)
}

func TestSplitAuthorization_Short(t *testing.T) {
	for _, token := range []string{"", "123", "0000012345000006789"} {
		_, _, err := SplitAuthorization(token)
		require.ErrorIs(t, err, ErrShortAuthorization, token)
	}
}
