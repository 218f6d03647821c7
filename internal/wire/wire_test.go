package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var fields Fields
	fields.Add("version", "00104")
	fields.Add("reference", "order #1&2")
	fields.Add("pays", "")

	require.Equal(t, "VERSION=00104&REFERENCE=order+%231%262&PAYS=", Encode(fields))

	v, ok := fields.Get("REFERENCE")
	require.True(t, ok)
	require.Equal(t, "order #1&2", v)

	_, ok = fields.Get("cvv")
	require.False(t, ok)
}

func TestDecode(t *testing.T) {
	t.Run("latin-1 and key normalisation", func(t *testing.T) {
		body := []byte("NUMTRANS=0000000042&CODEREPONSE=00004&COMMENTAIRE=PAYBOX : Num\xe9ro de porteur invalide")

		params, err := Decode(body)
		require.NoError(t, err)
		require.Equal(t, "0000000042", params["numtrans"])
		require.Equal(t, "00004", params["codereponse"])
		require.Equal(t, "PAYBOX : Numéro de porteur invalide", params["commentaire"])
	})

	t.Run("empty values are dropped and values keep later '='", func(t *testing.T) {
		params, err := Decode([]byte("PORTEUR=&REFABONNE=abc=def&LONELY&=x"))
		require.NoError(t, err)
		require.NotContains(t, params, "porteur")
		require.NotContains(t, params, "lonely")
		require.Equal(t, "abc=def", params["refabonne"])
		require.Len(t, params, 1)
	})

	t.Run("bad escapes keep the raw value", func(t *testing.T) {
		params, err := Decode([]byte("COMMENTAIRE=100%25 ok&OTHER=50%zz"))
		require.NoError(t, err)
		require.Equal(t, "100% ok", params["commentaire"])
		require.Equal(t, "50%zz", params["other"])
	})
}

func TestJoinLatin1RoundTrip(t *testing.T) {
	var fields Fields
	fields.Add("codereponse", "00000")
	fields.Add("commentaire", "Opération réussie")

	body, err := EncodeLatin1(Join(fields))
	require.NoError(t, err)
	require.Contains(t, string(body), "Op\xe9ration")

	params, err := Decode(body)
	require.NoError(t, err)
	require.Equal(t, "Opération réussie", params["commentaire"])
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		value   int64
		width   int
		want    string
		wantErr bool
	}{
		{value: 100, width: 10, want: "0000000100"},
		{value: 0, width: 10, want: "0000000000"},
		{value: 9999999999, width: 10, want: "9999999999"},
		{value: 10000000000, width: 10, wantErr: true},
		{value: -1, width: 10, wantErr: true},
	}

	for _, tt := range tests {
		got, err := Numeric(tt.value, tt.width)
		if tt.wantErr {
			require.Error(t, err, "value %d", tt.value)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}
