package wire

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/moov-io/iso8583/padding"
)

// Field is one KEY=value pair of a question.
type Field struct {
	Key   string
	Value string
}

// Fields keeps insertion order so that a question is always encoded the same way.
type Fields []Field

func (f *Fields) Add(key, value string) {
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the first value stored under key.
func (f Fields) Get(key string) (string, bool) {
	for _, field := range f {
		if strings.EqualFold(field.Key, key) {
			return field.Value, true
		}
	}
	return "", false
}

// Encode serializes fields as UPPERCASE_KEY=escaped_value joined with '&'.
func Encode(fields Fields) string {
	var sb strings.Builder
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(strings.ToUpper(field.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(field.Value))
	}
	return sb.String()
}

// Join serializes fields without escaping, the layout of the processor's replies.
func Join(fields Fields) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, strings.ToUpper(field.Key)+"="+field.Value)
	}
	return strings.Join(parts, "&")
}

var zeroPadder = padding.Left('0')

// Numeric renders value as a zero-padded decimal string of exactly width digits.
func Numeric(value int64, width int) (string, error) {
	if value < 0 {
		return "", fmt.Errorf("negative value %d", value)
	}
	digits := strconv.FormatInt(value, 10)
	if len(digits) > width {
		return "", fmt.Errorf("value %d exceeds %d digits", value, width)
	}
	return string(zeroPadder.Pad([]byte(digits), width)), nil
}
