package models

import "github.com/alovak/directplus/internal/wire"

// Response codes the sandbox answers with.
const (
    CodeApproved           = "00000"
    CodeUnavailable        = "00001"
    CodeMissingValue       = "00002"
    CodeRefused            = "00003"
    CodeInvalidCard        = "00004"
    CodeInvalidQuestion    = "00005"
    CodeAccessDenied       = "00006"
    CodeInvalidExpiry      = "00008"
    CodeInvalidType        = "00009"
    CodeUnknownCurrency    = "00010"
    CodeInvalidAmount      = "00011"
    CodeInvalidVersion     = "00013"
    CodeExistingProfile    = "00016"
    CodeUnknownProfile     = "00017"
    CodeUnknownTransaction = "00018"
)

// Answer is what the sandbox sends back for a question.
type Answer struct {
    Code              string
    Comment           string
    QuestionNumber    string
    CallNumber        string
    TransactionNumber string
    CardReference     string
    Subscriber        string
}

// Fields lays the answer out in the processor's key order.
func (a Answer) Fields() wire.Fields {
    var f wire.Fields
    f.Add("numtrans", a.TransactionNumber)
    f.Add("numappel", a.CallNumber)
    f.Add("numquestion", a.QuestionNumber)
    f.Add("site", "")
    f.Add("rang", "")
    f.Add("autorisation", "")
    f.Add("codereponse", a.Code)
    f.Add("commentaire", a.Comment)
    if a.Subscriber != "" {
        f.Add("refabonne", a.Subscriber)
    }
    if a.CardReference != "" {
        f.Add("porteur", a.CardReference)
    }
    return f
}
