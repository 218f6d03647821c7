package directplus

import "regexp"

var sensitiveFields = regexp.MustCompile(`\b(CLE|PORTEUR|CVV|DATENAISS)=[^&\s"']+`)

// Scrub masks the password, card number, verification value and birth date
// in a wire transcript.
func Scrub(transcript string) string {
	return sensitiveFields.ReplaceAllString(transcript, "${1}=[FILTERED]")
}
