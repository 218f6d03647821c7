package sandbox

import (
    "errors"
    "fmt"
    "net/url"
    "strconv"
    "strings"
    "time"

    "github.com/alovak/directplus/directplus"
    "github.com/alovak/directplus/internal/cardgen"
    "github.com/alovak/directplus/internal/expiry"
    "github.com/alovak/directplus/sandbox/models"
    "github.com/google/uuid"
)

const protocolVersion = "00104"

var currencyCodes = func() map[string]struct{} {
    m := make(map[string]struct{})
    for _, alpha := range directplus.SupportedCurrencies() {
        numeric, _ := directplus.CurrencyCode(alpha)
        m[numeric] = struct{}{}
    }
    return m
}()

// Service answers Direct Plus questions.
type Service struct {
    repo *Repository
    cfg  *Config
    now  func() time.Time
}

func NewService(repo *Repository, cfg *Config) *Service {
    if cfg == nil {
        cfg = DefaultConfig()
    }
    return &Service{
        repo: repo,
        cfg:  cfg,
        now:  time.Now,
    }
}

func decline(code, comment string) *models.Answer {
    return &models.Answer{Code: code, Comment: comment}
}

func missing(key, opType string) *models.Answer {
    return decline(models.CodeMissingValue, fmt.Sprintf("Mandatory values missing keyword:%s Type:%s", key, opType))
}

// Answer validates the envelope of q and dispatches on its TYPE.
func (s *Service) Answer(q url.Values) *models.Answer {
    ans := s.answer(q)
    ans.QuestionNumber = q.Get("NUMQUESTION")
    return ans
}

func (s *Service) answer(q url.Values) *models.Answer {
    if s.cfg.OutageCode != "" {
        return decline(s.cfg.OutageCode, "Service temporairement indisponible")
    }
    if q.Get("SITE") != s.cfg.Site || q.Get("RANG") != s.cfg.Rang || q.Get("CLE") != s.cfg.Key {
        return decline(models.CodeAccessDenied, "Accès refusé ou site / rang incorrect")
    }
    if q.Get("VERSION") != protocolVersion {
        return decline(models.CodeInvalidVersion, "Version du protocole invalide")
    }
    opType := q.Get("TYPE")
    op, ok := directplus.ParseOperation(opType)
    if !ok {
        return decline(models.CodeInvalidType, "Type d'opération invalide")
    }
    if !isNumeric(q.Get("NUMQUESTION"), 10) {
        return decline(models.CodeInvalidQuestion, "Numéro de question invalide")
    }
    if _, ok := currencyCodes[q.Get("DEVISE")]; !ok {
        return decline(models.CodeUnknownCurrency, "Devise inconnue")
    }
    if !isNumeric(q.Get("MONTANT"), 10) {
        return decline(models.CodeInvalidAmount, "Montant incorrect")
    }
    if code := q.Get("ERRORCODETEST"); code != "" {
        return decline(code, "Code erreur de test")
    }

    switch op {
    case directplus.OpSubscriberCreate:
        return s.createProfile(q, opType)
    case directplus.OpSubscriberUpdate:
        return s.updateProfile(q, opType)
    case directplus.OpSubscriberDestroy:
        return s.destroyProfile(q, opType)
    case directplus.OpSubscriberAuthorize:
        return s.charge(q, opType, models.TransactionStatusAuthorized)
    case directplus.OpSubscriberPurchase:
        return s.charge(q, opType, models.TransactionStatusCaptured)
    case directplus.OpSubscriberCapture:
        return s.followUp(q, opType, models.TransactionStatusAuthorized, models.TransactionStatusCaptured)
    case directplus.OpSubscriberVoid:
        return s.followUp(q, opType, "", models.TransactionStatusVoided)
    case directplus.OpSubscriberCredit, directplus.OpRefund:
        return s.followUp(q, opType, models.TransactionStatusCaptured, models.TransactionStatusRefunded)
    default:
        return decline(models.CodeInvalidType, "Type d'opération non supporté par le bac à sable")
    }
}

// checkCard validates PORTEUR and DATEVAL of a new card.
func (s *Service) checkCard(q url.Values) (pan, dateval string, ans *models.Answer) {
    pan = cardgen.NormalizePAN(q.Get("PORTEUR"))
    if err := cardgen.ValidatePAN(pan); err != nil {
        return "", "", decline(models.CodeInvalidCard, "Numéro de porteur invalide")
    }
    dateval = q.Get("DATEVAL")
    month, year, err := expiry.ParseMMYY(dateval)
    if err != nil || expiry.IsExpired(month, year, s.now(), time.UTC) {
        return "", "", decline(models.CodeInvalidExpiry, "Date de fin de validité incorrecte")
    }
    return pan, dateval, nil
}

func (s *Service) createProfile(q url.Values, opType string) *models.Answer {
    ref := q.Get("REFABONNE")
    if ref == "" {
        return missing("REFABONNE", opType)
    }
    if _, err := s.repo.GetProfile(ref); err == nil {
        return decline(models.CodeExistingProfile, "Abonné déjà existant")
    }
    pan, dateval, ans := s.checkCard(q)
    if ans != nil {
        return ans
    }

    profile := models.Profile{
        Reference: ref,
        CardToken: newCardToken(),
        PANHash:   cardgen.HashPAN(pan, []byte(s.cfg.PANHashKey)),
        MaskedPAN: cardgen.MaskPAN(pan),
        Expiry:    dateval,
        CreatedAt: s.now(),
    }
    if err := s.repo.CreateProfile(profile); err != nil {
        if errors.Is(err, ErrConflict) {
            return decline(models.CodeExistingProfile, "Abonné déjà existant")
        }
        return decline(models.CodeRefused, err.Error())
    }
    return s.approve(profile, q, opType, "")
}

func (s *Service) updateProfile(q url.Values, opType string) *models.Answer {
    profile, err := s.repo.GetProfile(q.Get("REFABONNE"))
    if err != nil {
        return decline(models.CodeUnknownProfile, "Abonné inexistant")
    }
    if q.Get("PORTEUR") != profile.CardToken {
        pan, dateval, ans := s.checkCard(q)
        if ans != nil {
            return ans
        }
        profile.PANHash = cardgen.HashPAN(pan, []byte(s.cfg.PANHashKey))
        profile.MaskedPAN = cardgen.MaskPAN(pan)
        profile.Expiry = dateval
    }
    if err := s.repo.UpdateProfile(profile); err != nil {
        return decline(models.CodeUnknownProfile, "Abonné inexistant")
    }
    return s.approve(profile, q, opType, "")
}

func (s *Service) destroyProfile(q url.Values, opType string) *models.Answer {
    ref := q.Get("REFABONNE")
    if err := s.repo.DeleteProfile(ref); err != nil {
        return decline(models.CodeUnknownProfile, "Abonné inexistant")
    }
    return &models.Answer{Code: models.CodeApproved, Comment: "Opération réussie", Subscriber: ref}
}

// charge accepts either the card token or the stored PAN in PORTEUR.
func (s *Service) charge(q url.Values, opType string, status models.TransactionStatus) *models.Answer {
    profile, err := s.repo.GetProfile(q.Get("REFABONNE"))
    if err != nil {
        return decline(models.CodeUnknownProfile, "Abonné inexistant")
    }
    porteur := q.Get("PORTEUR")
    if porteur != profile.CardToken && cardgen.HashPAN(porteur, []byte(s.cfg.PANHashKey)) != profile.PANHash {
        return decline(models.CodeInvalidCard, "Numéro de porteur invalide")
    }
    return s.approve(profile, q, opType, status)
}

// followUp moves a transaction from one status to another. An empty from
// accepts authorized and captured transactions.
func (s *Service) followUp(q url.Values, opType string, from, to models.TransactionStatus) *models.Answer {
    call, trans := q.Get("NUMAPPEL"), q.Get("NUMTRANS")
    if call == "" {
        return missing("NUMAPPEL", opType)
    }
    if trans == "" {
        return missing("NUMTRANS", opType)
    }
    tx, err := s.repo.GetTransaction(call, trans)
    if err != nil {
        return decline(models.CodeUnknownTransaction, "Transaction non trouvée")
    }
    if ref := q.Get("REFABONNE"); ref != "" && ref != tx.Subscriber {
        return decline(models.CodeUnknownTransaction, "Transaction non trouvée")
    }

    allowed := tx.Status == from
    if from == "" {
        allowed = tx.Status == models.TransactionStatusAuthorized || tx.Status == models.TransactionStatusCaptured
    }
    if !allowed {
        return decline(models.CodeRefused, fmt.Sprintf("Opération impossible sur une transaction %s", tx.Status))
    }
    if err := s.repo.UpdateTransactionStatus(call, trans, to); err != nil {
        return decline(models.CodeUnknownTransaction, "Transaction non trouvée")
    }
    return &models.Answer{
        Code:              models.CodeApproved,
        Comment:           "Opération réussie",
        CallNumber:        call,
        TransactionNumber: trans,
        Subscriber:        tx.Subscriber,
    }
}

// approve records a transaction when status is set and answers with fresh numbers.
func (s *Service) approve(profile models.Profile, q url.Values, opType string, status models.TransactionStatus) *models.Answer {
    call, trans := s.repo.NextNumbers()
    if status != "" {
        amount, _ := strconv.ParseInt(q.Get("MONTANT"), 10, 64)
        err := s.repo.CreateTransaction(models.Transaction{
            CallNumber:        call,
            TransactionNumber: trans,
            Subscriber:        profile.Reference,
            Type:              opType,
            Amount:            amount,
            Currency:          q.Get("DEVISE"),
            Status:            status,
            CreatedAt:         s.now(),
        })
        if err != nil {
            return decline(models.CodeRefused, err.Error())
        }
    }
    return &models.Answer{
        Code:              models.CodeApproved,
        Comment:           "Opération réussie",
        CallNumber:        call,
        TransactionNumber: trans,
        CardReference:     profile.CardToken,
        Subscriber:        profile.Reference,
    }
}

func newCardToken() string {
    return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

func isNumeric(s string, width int) bool {
    return len(s) == width && cardgen.IsDigits(s)
}
