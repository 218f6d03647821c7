package models

import "time"

// Profile is a stored-card subscriber.
type Profile struct {
    Reference string
    // CardToken is returned to the merchant in PORTEUR and accepted in place of the PAN.
    CardToken string
    PANHash   string
    MaskedPAN string
    // Expiry is kept as MMYY, the DATEVAL layout
    Expiry    string
    CreatedAt time.Time
}

type TransactionStatus string

const (
    TransactionStatusAuthorized TransactionStatus = "authorized"
    TransactionStatusCaptured   TransactionStatus = "captured"
    TransactionStatusVoided     TransactionStatus = "voided"
    TransactionStatusRefunded   TransactionStatus = "refunded"
)

type Transaction struct {
    CallNumber        string
    TransactionNumber string
    Subscriber        string
    Type              string
    Amount            int64
    Currency          string
    Status            TransactionStatus
    CreatedAt         time.Time
}
