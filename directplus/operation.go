package directplus

import "fmt"

// Operation is a Direct Plus question type.
type Operation int

const (
	OpAuthorize Operation = iota + 1
	OpCapture
	OpPurchase
	OpCredit
	OpVoid
	OpVerify
	OpCaptureDirectly
	OpRefund
	OpConsultation
	OpSubscriberAuthorize
	OpSubscriberCapture
	OpSubscriberPurchase
	OpSubscriberCredit
	OpSubscriberVoid
	OpSubscriberCreate
	OpSubscriberUpdate
	OpSubscriberDestroy
	OpForceCaptureDirectly
)

// requirement is a caller field an operation cannot be sent without.
type requirement uint8

const (
	needCard requirement = 1 << iota
	needOrderID
	needUserReference
	needCardReference
	needAuthorization
)

// requirementOrder fixes the order fields are checked and reported in.
var requirementOrder = []struct {
	req   requirement
	field string
}{
	{needCard, "payment instrument"},
	{needOrderID, "order_id"},
	{needUserReference, "user_reference"},
	{needCardReference, "credit_card_reference"},
	{needAuthorization, "authorization"},
}

type operationInfo struct {
	code     string
	name     string
	requires requirement
}

var operations = map[Operation]operationInfo{
	OpAuthorize:            {code: "00001", name: "authorize"},
	OpCapture:              {code: "00002", name: "capture"},
	OpPurchase:             {code: "00003", name: "purchase"},
	OpCredit:               {code: "00004", name: "credit"},
	OpVoid:                 {code: "00005", name: "void"},
	OpVerify:               {code: "00011", name: "verify"},
	OpCaptureDirectly:      {code: "00012", name: "capture_directly"},
	OpRefund:               {code: "00014", name: "refund", requires: needAuthorization},
	OpConsultation:         {code: "00017", name: "consultation"},
	OpSubscriberAuthorize:  {code: "00051", name: "subscriber_authorize", requires: needCard | needUserReference},
	OpSubscriberCapture:    {code: "00052", name: "subscriber_capture", requires: needOrderID | needUserReference | needAuthorization},
	OpSubscriberPurchase:   {code: "00053", name: "subscriber_purchase", requires: needCard | needUserReference | needCardReference},
	OpSubscriberCredit:     {code: "00054", name: "subscriber_credit", requires: needAuthorization},
	OpSubscriberVoid:       {code: "00055", name: "subscriber_void", requires: needOrderID | needUserReference | needAuthorization},
	OpSubscriberCreate:     {code: "00056", name: "subscriber_create", requires: needCard | needUserReference},
	OpSubscriberUpdate:     {code: "00057", name: "subscriber_update", requires: needCard},
	OpSubscriberDestroy:    {code: "00058", name: "subscriber_destroy"},
	OpForceCaptureDirectly: {code: "00061", name: "force_capture_directly"},
}

var operationsByCode = func() map[string]Operation {
	m := make(map[string]Operation, len(operations))
	for op, info := range operations {
		m[info.code] = op
	}
	return m
}()

// Code is the TYPE value sent on the wire.
func (o Operation) Code() string {
	return operations[o].code
}

func (o Operation) String() string {
	if info, ok := operations[o]; ok {
		return info.name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	_, ok := operations[o]
	return ok
}

// ParseOperation maps a TYPE code back to its operation.
func ParseOperation(code string) (Operation, bool) {
	op, ok := operationsByCode[code]
	return op, ok
}

func (o Operation) requires(r requirement) bool {
	return operations[o].requires&r != 0
}
