package directplus

import (
	"fmt"

	"github.com/alovak/directplus/internal/ident"
	"github.com/alovak/directplus/internal/wire"
)

const (
	keyCode              = "codereponse"
	keyComment           = "commentaire"
	keyCallNumber        = "numappel"
	keyTransactionNumber = "numtrans"
	keyCardNumber        = "porteur"
	keyCardReference     = "credit_card_reference"

	SuccessMessage = "The transaction was approved"
	FailureMessage = "The transaction failed"
)

type codeSet map[string]struct{}

func newCodeSet(codes ...string) codeSet {
	s := make(codeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s codeSet) has(code string) bool {
	_, ok := s[code]
	return ok
}

var (
	successCodes           = newCodeSet("00000")
	fraudCodes             = newCodeSet("00102", "00104", "00105", "00134", "00138", "00141", "00143", "00156", "00157", "00159")
	unavailableCodes       = newCodeSet("00001", "00017", "00097", "00098")
	unknownProfileCodes    = newCodeSet("00017")
	alreadyExistingProfile = newCodeSet("00016")
)

// IsSuccess reports whether code is an approval.
func IsSuccess(code string) bool { return successCodes.has(code) }

// IsFraudReview reports whether code flags the transaction as suspected fraud.
func IsFraudReview(code string) bool { return fraudCodes.has(code) }

// IsServiceUnavailable reports whether code asks for the backup endpoint.
func IsServiceUnavailable(code string) bool { return unavailableCodes.has(code) }

// IsUnknownProfile reports whether code means the subscriber does not exist.
func IsUnknownProfile(code string) bool { return unknownProfileCodes.has(code) }

// IsAlreadyExistingProfile reports whether code means the subscriber is already registered.
func IsAlreadyExistingProfile(code string) bool { return alreadyExistingProfile.has(code) }

// Category is the single label of a response code.
type Category int

const (
	CategoryFailure Category = iota
	CategorySuccess
	CategoryFraudReview
	CategoryAlreadyExistingProfile
	CategoryUnknownProfile
	CategoryServiceUnavailable
)

var categoryNames = map[Category]string{
	CategoryFailure:                "failure",
	CategorySuccess:                "success",
	CategoryFraudReview:            "fraud_review",
	CategoryAlreadyExistingProfile: "already_existing_profile",
	CategoryUnknownProfile:         "unknown_profile",
	CategoryServiceUnavailable:     "service_unavailable",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify labels code. 00017 is both unknown-profile and unavailable; the
// profile label wins, the Response flags keep both.
func Classify(code string) Category {
	switch {
	case IsSuccess(code):
		return CategorySuccess
	case IsFraudReview(code):
		return CategoryFraudReview
	case IsAlreadyExistingProfile(code):
		return CategoryAlreadyExistingProfile
	case IsUnknownProfile(code):
		return CategoryUnknownProfile
	case IsServiceUnavailable(code):
		return CategoryServiceUnavailable
	default:
		return CategoryFailure
	}
}

// Response is the normalized answer to a question.
type Response struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Authorization string `json:"authorization,omitempty"`
	FraudReview   bool   `json:"fraud_review"`
	// ErrorCode is the processor code of a non successful answer.
	ErrorCode string `json:"error_code,omitempty"`

	Code                   string   `json:"code"`
	Category               Category `json:"category"`
	UnknownProfile         bool     `json:"unknown_profile"`
	AlreadyExistingProfile bool     `json:"already_existing_profile"`
	ServiceUnavailable     bool     `json:"service_unavailable"`
	CardReference          string   `json:"credit_card_reference,omitempty"`

	Test bool `json:"test"`
	// Backup is set when the answer came from the backup endpoint.
	Backup bool `json:"backup"`
	// Params holds every decoded key, including ones not mapped above.
	Params map[string]string `json:"params"`
}

func parseReply(body []byte) (map[string]string, error) {
	params, err := wire.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if porteur, ok := params[keyCardNumber]; ok {
		params[keyCardReference] = porteur
	}
	return params, nil
}

func newResponse(params map[string]string, test, backup bool) *Response {
	code := params[keyCode]
	success := IsSuccess(code)

	message := SuccessMessage
	if !success {
		message = params[keyComment]
		if message == "" {
			message = FailureMessage
		}
	}

	var errorCode string
	if !success {
		errorCode = code
	}

	return &Response{
		Success:                success,
		Message:                message,
		Authorization:          ident.FormatAuthorization(params[keyCallNumber], params[keyTransactionNumber]),
		FraudReview:            IsFraudReview(code),
		ErrorCode:              errorCode,
		Code:                   code,
		Category:               Classify(code),
		UnknownProfile:         IsUnknownProfile(code),
		AlreadyExistingProfile: IsAlreadyExistingProfile(code),
		ServiceUnavailable:     IsServiceUnavailable(code),
		CardReference:          params[keyCardReference],
		Test:                   test,
		Backup:                 backup,
		Params:                 params,
	}
}
