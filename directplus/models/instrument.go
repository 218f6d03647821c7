package models

// PaymentInstrument is the card data needed to build a question.
type PaymentInstrument interface {
	CardNumber() string
	CardVerification() string
	ExpiryMonth() int
	ExpiryYear() int
}

// Card is a plain card. VerificationValue is optional.
type Card struct {
	Number            string
	VerificationValue string
	Month             int
	Year              int
}

func (c Card) CardNumber() string       { return c.Number }
func (c Card) CardVerification() string { return c.VerificationValue }
func (c Card) ExpiryMonth() int         { return c.Month }
func (c Card) ExpiryYear() int          { return c.Year }

// IsNil reports whether p is nil or a nil *Card.
func IsNil(p PaymentInstrument) bool {
	if p == nil {
		return true
	}
	c, ok := p.(*Card)
	return ok && c == nil
}
