package directplus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrub(t *testing.T) {
	transcript := `opening connection to preprod-ppps.paybox.com:443...
<- "DATEQ=30092013162007&TYPE=00056&PORTEUR=1111222233334444&DATEVAL=0914&CVV=123&CLE=1999888I&DATENAISS=01011980&REFABONNE=u1&SITE=1999888"
-> "NUMTRANS=0000000000&PORTEUR=SLDLrcsLMPC&CODEREPONSE=00000"`

	scrubbed := Scrub(transcript)

	require.Contains(t, scrubbed, "PORTEUR=[FILTERED]&DATEVAL=0914")
	require.Contains(t, scrubbed, "CVV=[FILTERED]&")
	require.Contains(t, scrubbed, "CLE=[FILTERED]&")
	require.Contains(t, scrubbed, "DATENAISS=[FILTERED]&")
	require.NotContains(t, scrubbed, "1111222233334444")
	require.NotContains(t, scrubbed, "1999888I")
	require.NotContains(t, scrubbed, "SLDLrcsLMPC")
	require.Contains(t, scrubbed, "REFABONNE=u1")
	require.Contains(t, scrubbed, "SITE=1999888")
}

func TestScrub_Markers(t *testing.T) {
	require.Equal(t, "PORTEUR=[FILTERED]", Scrub("PORTEUR=4242424242424242"))
	require.Equal(t, "CLE=[FILTERED]", Scrub("CLE=pa%2Bss%26"))
	// lower case keys and longer names are left alone
	require.Equal(t, "porteur=4242424242424242", Scrub("porteur=4242424242424242"))
	require.Equal(t, "XCLE=secret", Scrub("XCLE=secret"))
	require.Equal(t, "PORTEUR=&CVV=", Scrub("PORTEUR=&CVV="))
}
