package directplus

import (
	"fmt"

	"github.com/alovak/directplus/directplus/models"
	"github.com/alovak/directplus/internal/expiry"
	"github.com/alovak/directplus/internal/ident"
	"github.com/alovak/directplus/internal/wire"
)

const (
	voidCardNumber = "000000000000000"
	voidExpiry     = "0000"
)

// fields is the operation specific part of a question. A nil field is not
// sent at all; a pointer to "" is sent with an empty value.
type fields struct {
	reference     *string
	porteur       *string
	dateval       *string
	cvv           *string
	refabonne     *string
	numappel      *string
	numtrans      *string
	errorcodetest *string
}

func value(s string) *string { return &s }

func present(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (f *fields) addInvoice(opts models.Options) {
	f.reference = value(opts.OrderID)
}

func (f *fields) addCard(op Operation, card models.PaymentInstrument, opts models.Options) error {
	dateval, err := expiry.MMYY(card.ExpiryMonth(), card.ExpiryYear())
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidExpiry, err)
	}

	porteur := opts.CreditCardReference
	if porteur == "" {
		porteur = card.CardNumber()
	}
	f.porteur = value(porteur)
	f.dateval = value(dateval)
	f.cvv = present(card.CardVerification())
	return nil
}

func (f *fields) addUserReference(opts models.Options) {
	f.refabonne = value(opts.UserReference)
}

func (f *fields) addAuthorization(op Operation, authorization string) error {
	call, trans, err := ident.SplitAuthorization(authorization)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidAuthorization, err)
	}
	f.numappel = value(call)
	f.numtrans = value(trans)
	return nil
}

func (f *fields) addTestErrorCode(opts models.Options) {
	f.errorcodetest = present(opts.ErrorCodeTest)
}

func (f fields) appendTo(q *wire.Fields) {
	for _, field := range []struct {
		key string
		v   *string
	}{
		{"reference", f.reference},
		{"porteur", f.porteur},
		{"dateval", f.dateval},
		{"cvv", f.cvv},
		{"refabonne", f.refabonne},
		{"numappel", f.numappel},
		{"numtrans", f.numtrans},
		{"errorcodetest", f.errorcodetest},
	} {
		if field.v != nil {
			q.Add(field.key, *field.v)
		}
	}
}

// check reports the first required caller field op is missing.
func check(op Operation, card models.PaymentInstrument, authorization string, opts models.Options) error {
	for _, r := range requirementOrder {
		if !op.requires(r.req) {
			continue
		}
		var ok bool
		switch r.req {
		case needCard:
			ok = !models.IsNil(card)
		case needOrderID:
			ok = opts.OrderID != ""
		case needUserReference:
			ok = opts.UserReference != ""
		case needCardReference:
			ok = opts.CreditCardReference != ""
		case needAuthorization:
			ok = authorization != ""
		}
		if !ok {
			return &PreconditionError{Operation: op, Field: r.field}
		}
	}
	return nil
}
