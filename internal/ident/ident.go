// Package ident produces the identifiers exchanged with the processor: question
// numbers and the 20 character authorization token.
package ident

import (
	"errors"
	"time"

	"github.com/alovak/directplus/internal/wire"
	"github.com/cespare/xxhash/v2"
)

// MaxQuestionNumber bounds NUMQUESTION.
const MaxQuestionNumber = 2147483647

const (
	questionWidth = 10
	partWidth     = 10
)

var ErrShortAuthorization = errors.New("authorization must be at least 20 characters")

// UniqueRequestID derives a 10 digit question number from seed and the clock.
// The seed hash is shifted left by nine decimal digits and the nanosecond of the
// second is added, so two calls inside the same second differ unless they share
// the same nanosecond.
func UniqueRequestID(seed string, now time.Time) string {
	h := xxhash.Sum64String(seed) % MaxQuestionNumber
	v := (h*uint64(time.Second) + uint64(now.Nanosecond())) % MaxQuestionNumber

	// v < MaxQuestionNumber always fits ten digits
	id, _ := wire.Numeric(int64(v), questionWidth)
	return id
}

// FormatAuthorization joins the call number and the transaction number.
func FormatAuthorization(callNumber, transactionNumber string) string {
	return callNumber + transactionNumber
}

// SplitAuthorization returns the call number (first 10 characters) and the
// transaction number (next 10 characters) of token.
func SplitAuthorization(token string) (callNumber, transactionNumber string, err error) {
	if len(token) < partWidth*2 {
		return "", "", ErrShortAuthorization
	}
	return token[:partWidth], token[partWidth : partWidth*2], nil
}
