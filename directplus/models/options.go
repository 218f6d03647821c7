package models

// Options carries the caller supplied references of an operation.
// Empty strings are treated as not provided.
type Options struct {
	// OrderID is sent as REFERENCE and ARCHIVAGE and seeds the question number.
	OrderID string
	// UserReference identifies the stored-card subscriber (REFABONNE).
	UserReference string
	// CreditCardReference is the processor token of a stored card; it replaces
	// the card number in PORTEUR when set.
	CreditCardReference string
	// Currency is an ISO 4217 alpha code; the gateway default applies when empty.
	Currency string
	// ErrorCodeTest asks the test platform to answer with the given code.
	ErrorCodeTest string
}
