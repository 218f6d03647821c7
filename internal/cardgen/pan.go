// Package cardgen holds PAN helpers shared by the CLI, the sandbox and tests.
package cardgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const panLen = 16

// GeneratePAN returns a random Luhn-valid 16 digit PAN starting with bin.
func GeneratePAN(bin string) (string, error) {
	if err := ValidateBIN(bin); err != nil {
		return "", err
	}
	digits, err := randomDigits(panLen - 1 - len(bin))
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	body := bin + digits
	return body + string(luhnCheckDigit(body)), nil
}

// randomDigits 使用拒绝采样避免模偏差。
func randomDigits(count int) (string, error) {
	const threshold = 250 // 256 - (256 % 10)
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 32)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			if b < threshold && sb.Len() < count {
				sb.WriteByte('0' + b%10)
			}
		}
	}
	return sb.String(), nil
}

func luhnCheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidatePAN checks length (13..19), digits and the Luhn check digit.
func ValidatePAN(pan string) error {
	if pan == "" {
		return fmt.Errorf("pan is required")
	}
	if !IsDigits(pan) {
		return fmt.Errorf("pan must contain digits only")
	}
	if l := len(pan); l < 13 || l > 19 {
		return fmt.Errorf("pan length must be 13..19 digits (got %d)", l)
	}
	if pan[len(pan)-1] != luhnCheckDigit(pan[:len(pan)-1]) {
		return fmt.Errorf("invalid luhn check digit")
	}
	return nil
}

func ValidateBIN(bin string) error {
	if !IsDigits(bin) || bin == "" {
		return fmt.Errorf("bin must contain digits only")
	}
	switch len(bin) {
	case 6, 8, 9:
		return nil
	default:
		return fmt.Errorf("bin must be 6, 8, or 9 digits")
	}
}

func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MaskPAN keeps the first six and last four digits.
func MaskPAN(pan string) string {
	cleaned := NormalizePAN(pan)
	n := len(cleaned)
	switch {
	case n == 0:
		return ""
	case n <= 4:
		return strings.Repeat("*", n)
	case n < 10:
		return strings.Repeat("*", n-4) + cleaned[n-4:]
	}
	return cleaned[:6] + strings.Repeat("*", n-10) + cleaned[n-4:]
}

// NormalizePAN 去除空格/横线/制表。
func NormalizePAN(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(s))
}

// HashPAN is a hex HMAC-SHA256 of the PAN under key. Never log the input.
func HashPAN(pan string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(NormalizePAN(pan)))
	return hex.EncodeToString(h.Sum(nil))
}
