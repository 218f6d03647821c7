package directplus

import (
	"context"
	"fmt"

	"github.com/alovak/directplus/internal/ident"
	"github.com/alovak/directplus/internal/wire"
	"golang.org/x/exp/slog"
)

const (
	protocolVersion = "00104"
	activity        = "027"
	dateLayout      = "02012006150405" // ddmmyyyyHHMMSS
	amountWidth     = 10
)

// commit completes the question with the protocol fields, posts it to the
// primary endpoint and, when the processor reports itself unavailable, posts
// the same bytes once to the backup endpoint.
func (g *Gateway) commit(ctx context.Context, op Operation, amount int64, currencyCode string, f fields) (*Response, error) {
	if currencyCode == "" {
		currencyCode = g.config.DefaultCurrency
	}
	devise, err := CurrencyCode(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	montant, err := wire.Numeric(amount, amountWidth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidAmount, err)
	}

	var reference string
	if f.reference != nil {
		reference = *f.reference
	}
	now := g.now()
	numquestion := ident.UniqueRequestID(reference, now)

	var q wire.Fields
	q.Add("version", protocolVersion)
	q.Add("type", op.Code())
	q.Add("dateq", now.Format(dateLayout))
	q.Add("numquestion", numquestion)
	q.Add("site", g.creds.site)
	q.Add("rang", g.creds.rang)
	q.Add("cle", g.creds.key)
	q.Add("pays", "")
	q.Add("archivage", reference)
	q.Add("activite", activity)
	f.appendTo(&q)
	q.Add("montant", montant)
	q.Add("devise", devise)

	payload := []byte(wire.Encode(q))

	logger := g.logger.With(slog.String("operation", op.String()), slog.String("numquestion", numquestion))
	logger.Debug("sending question", slog.String("payload", Scrub(string(payload))))

	primary, backup := g.config.Endpoints.urls(g.config.Test)

	params, err := g.exchange(ctx, primary, payload)
	if err != nil {
		logger.Error("posting question", slog.String("url", primary), slog.Any("err", err))
		return nil, err
	}

	var usedBackup bool
	if code := params[keyCode]; IsServiceUnavailable(code) {
		logger.Warn("primary endpoint unavailable, retrying on backup", slog.String("code", code), slog.String("url", backup))

		params, err = g.exchange(ctx, backup, payload)
		if err != nil {
			logger.Error("posting question", slog.String("url", backup), slog.Any("err", err))
			return nil, err
		}
		usedBackup = true
	}

	resp := newResponse(params, g.config.Test, usedBackup)
	logger.Info("question answered",
		slog.String("code", resp.Code),
		slog.Bool("success", resp.Success),
		slog.String("category", resp.Category.String()),
	)
	return resp, nil
}

// exchange returns transport errors untouched.
func (g *Gateway) exchange(ctx context.Context, url string, payload []byte) (map[string]string, error) {
	body, err := g.poster.Post(ctx, url, payload)
	if err != nil {
		return nil, err
	}
	return parseReply(body)
}
