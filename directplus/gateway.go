// Package directplus is a client for the Paybox Direct Plus server-to-server
// protocol: it builds questions, posts them with a single backup failover and
// classifies the processor's answers.
package directplus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alovak/directplus/directplus/models"
	"github.com/alovak/directplus/internal/httpclient"
	"golang.org/x/exp/slog"
)

const siteLength = 7

// Poster delivers an encoded question to url and returns the raw reply.
type Poster interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
}

type credentials struct {
	site string
	rang string
	key  string
}

func newCredentials(login, password string) (credentials, error) {
	if len(login) <= siteLength {
		return credentials{}, fmt.Errorf("login must be the %d digit site followed by the rank: %w", siteLength, ErrInvalidCredentials)
	}
	if password == "" {
		return credentials{}, fmt.Errorf("password is required: %w", ErrInvalidCredentials)
	}
	return credentials{site: login[:siteLength], rang: login[siteLength:], key: password}, nil
}

// Gateway is safe for concurrent use; it keeps no per-call state.
type Gateway struct {
	config *Config
	creds  credentials
	poster Poster
	logger *slog.Logger
	now    func() time.Time
}

// NewGateway validates config and derives the credentials. A nil poster uses
// the default HTTP transport with config.Timeout.
func NewGateway(logger *slog.Logger, config *Config, poster Poster) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "EUR"
	}
	if cfg.VerifyAmount <= 0 {
		cfg.VerifyAmount = 100
	}
	if _, err := CurrencyCode(cfg.DefaultCurrency); err != nil {
		return nil, fmt.Errorf("default currency: %w", err)
	}

	creds, err := newCredentials(cfg.Login, cfg.Password)
	if err != nil {
		return nil, err
	}

	if poster == nil {
		poster = httpclient.New(&http.Client{Timeout: cfg.Timeout})
	}

	return &Gateway{
		config: &cfg,
		creds:  creds,
		poster: poster,
		logger: logger.With(slog.String("gateway", "directplus"), slog.Bool("test", cfg.Test)),
		now:    time.Now,
	}, nil
}

// Purchase charges a stored card. opts.CreditCardReference and
// opts.UserReference are required.
func (g *Gateway) Purchase(ctx context.Context, amount int64, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	return g.cardQuestion(ctx, OpSubscriberPurchase, amount, card, opts)
}

// Authorize reserves amount on the subscriber's card.
func (g *Gateway) Authorize(ctx context.Context, amount int64, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	return g.cardQuestion(ctx, OpSubscriberAuthorize, amount, card, opts)
}

// Capture settles a previous authorization.
func (g *Gateway) Capture(ctx context.Context, amount int64, authorization string, opts models.Options) (*Response, error) {
	return g.referenceQuestion(ctx, OpSubscriberCapture, amount, authorization, opts)
}

// Credit refunds amount against a previous transaction of a subscriber.
func (g *Gateway) Credit(ctx context.Context, amount int64, identification string, opts models.Options) (*Response, error) {
	return g.referenceQuestion(ctx, OpSubscriberCredit, amount, identification, opts)
}

// Refund refunds a previous transaction.
func (g *Gateway) Refund(ctx context.Context, amount int64, authorization string, opts models.Options) (*Response, error) {
	if err := check(OpRefund, nil, authorization, opts); err != nil {
		return nil, err
	}
	var f fields
	f.addInvoice(opts)
	if err := f.addAuthorization(OpRefund, authorization); err != nil {
		return nil, err
	}
	f.addUserReference(opts)
	return g.commit(ctx, OpRefund, amount, opts.Currency, f)
}

// Void cancels a previous transaction. The card fields are sent as placeholders.
func (g *Gateway) Void(ctx context.Context, amount int64, authorization string, opts models.Options) (*Response, error) {
	if err := check(OpSubscriberVoid, nil, authorization, opts); err != nil {
		return nil, err
	}
	var f fields
	f.addInvoice(opts)
	if err := f.addAuthorization(OpSubscriberVoid, authorization); err != nil {
		return nil, err
	}
	f.addUserReference(opts)
	f.porteur = value(voidCardNumber)
	f.dateval = value(voidExpiry)
	return g.commit(ctx, OpSubscriberVoid, amount, opts.Currency, f)
}

// Verify authorizes Config.VerifyAmount and, when that succeeds, voids it.
// The void outcome is logged only; the authorize outcome is returned.
// Fields the void needs are checked before anything is sent.
func (g *Gateway) Verify(ctx context.Context, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	amount := g.config.VerifyAmount

	if err := check(OpSubscriberAuthorize, card, "", opts); err != nil {
		return nil, err
	}
	if err := check(OpSubscriberVoid, nil, "pending", opts); err != nil {
		return nil, err
	}

	auth, err := g.Authorize(ctx, amount, card, opts)
	if err != nil || !auth.Success {
		return auth, err
	}

	void, err := g.Void(ctx, amount, auth.Authorization, opts)
	switch {
	case err != nil:
		g.logger.Warn("verify: void failed", slog.String("authorization", auth.Authorization), slog.Any("err", err))
	case !void.Success:
		g.logger.Warn("verify: void declined", slog.String("authorization", auth.Authorization), slog.String("code", void.Code))
	}
	return auth, nil
}

// CreatePaymentProfile registers a subscriber and its card.
func (g *Gateway) CreatePaymentProfile(ctx context.Context, amount int64, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	return g.cardQuestion(ctx, OpSubscriberCreate, amount, card, opts)
}

// UpdatePaymentProfile replaces the card of a subscriber.
func (g *Gateway) UpdatePaymentProfile(ctx context.Context, amount int64, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	if err := check(OpSubscriberUpdate, card, "", opts); err != nil {
		return nil, err
	}
	var f fields
	if err := f.addCard(OpSubscriberUpdate, card, opts); err != nil {
		return nil, err
	}
	f.addUserReference(opts)
	f.addTestErrorCode(opts)
	return g.commit(ctx, OpSubscriberUpdate, amount, opts.Currency, f)
}

// DestroyPaymentProfile removes a subscriber.
func (g *Gateway) DestroyPaymentProfile(ctx context.Context, amount int64, opts models.Options) (*Response, error) {
	var f fields
	f.addUserReference(opts)
	f.addTestErrorCode(opts)
	return g.commit(ctx, OpSubscriberDestroy, amount, opts.Currency, f)
}

func (g *Gateway) cardQuestion(ctx context.Context, op Operation, amount int64, card models.PaymentInstrument, opts models.Options) (*Response, error) {
	if err := check(op, card, "", opts); err != nil {
		return nil, err
	}
	var f fields
	f.addInvoice(opts)
	if err := f.addCard(op, card, opts); err != nil {
		return nil, err
	}
	f.addUserReference(opts)
	f.addTestErrorCode(opts)
	return g.commit(ctx, op, amount, opts.Currency, f)
}

func (g *Gateway) referenceQuestion(ctx context.Context, op Operation, amount int64, authorization string, opts models.Options) (*Response, error) {
	if err := check(op, nil, authorization, opts); err != nil {
		return nil, err
	}
	var f fields
	f.addInvoice(opts)
	if err := f.addAuthorization(op, authorization); err != nil {
		return nil, err
	}
	f.addUserReference(opts)
	f.addTestErrorCode(opts)
	return g.commit(ctx, op, amount, opts.Currency, f)
}
