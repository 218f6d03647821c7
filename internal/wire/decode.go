package wire

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Decode parses a Latin-1 encoded "key=value&key=value" reply.
// Keys are lower-cased, values unescaped (the raw value is kept when unescaping
// fails) and pairs without a value are dropped.
func Decode(body []byte) (map[string]string, error) {
	utf, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decoding latin-1: %w", err)
	}

	params := make(map[string]string)
	for _, pair := range strings.Split(strings.TrimSpace(string(utf)), "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || value == "" || key == "" {
			continue
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		params[strings.ToLower(key)] = value
	}
	return params, nil
}

// EncodeLatin1 converts an encoded reply to ISO-8859-1 the way the processor sends it.
func EncodeLatin1(s string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encoding latin-1: %w", err)
	}
	return out, nil
}
