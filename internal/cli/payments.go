package cli

import (
	"context"
	"fmt"

	"github.com/alovak/directplus/directplus"
	"github.com/alovak/directplus/directplus/models"
	"github.com/alovak/directplus/internal/cardgen"
	"github.com/alovak/directplus/internal/expiry"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type paymentFlags struct {
	amount        string
	currency      string
	orderID       string
	userRef       string
	cardRef       string
	cardNumber    string
	expiry        string
	cvv           string
	generateBIN   string
	authorization string
	errorCodeTest string
}

func (f *paymentFlags) register(cmd *cobra.Command, withAmount, withCard, withAuthorization bool) {
	fs := cmd.Flags()
	if withAmount {
		fs.StringVar(&f.amount, "amount", "0", "amount in major units, e.g. 12.34")
	}
	fs.StringVar(&f.currency, "currency", "", "ISO 4217 alpha code (default from config)")
	fs.StringVar(&f.orderID, "order-id", "", "merchant order reference")
	fs.StringVar(&f.userRef, "user-ref", "", "subscriber reference")
	fs.StringVar(&f.errorCodeTest, "error-code-test", "", "ask the test platform to answer with this code")
	if withCard {
		fs.StringVar(&f.cardRef, "card-ref", "", "stored card reference returned at profile creation")
		fs.StringVar(&f.cardNumber, "card", "", "card number")
		fs.StringVar(&f.expiry, "expiry", "", "card expiry, MM/YY or MMYY")
		fs.StringVar(&f.cvv, "cvv", "", "card verification value")
		fs.StringVar(&f.generateBIN, "generate-card", "", "use a random Luhn-valid card number starting with this BIN")
	}
	if withAuthorization {
		fs.StringVar(&f.authorization, "authorization", "", "20 digit authorization returned by a previous operation")
	}
}

func (f *paymentFlags) options() models.Options {
	return models.Options{
		OrderID:             f.orderID,
		UserReference:       f.userRef,
		CreditCardReference: f.cardRef,
		Currency:            f.currency,
		ErrorCodeTest:       f.errorCodeTest,
	}
}

func (f *paymentFlags) minorUnits(defaultCurrency string) (int64, error) {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", f.amount, err)
	}
	currency := f.currency
	if currency == "" {
		currency = defaultCurrency
	}
	return directplus.ToMinorUnits(amount, currency)
}

func (f *paymentFlags) card() (models.Card, error) {
	month, year, err := expiry.ParseCardFace(f.expiry)
	if err != nil {
		return models.Card{}, fmt.Errorf("expiry: %w", err)
	}
	pan := cardgen.NormalizePAN(f.cardNumber)
	if pan == "" && f.generateBIN != "" {
		if pan, err = cardgen.GeneratePAN(f.generateBIN); err != nil {
			return models.Card{}, fmt.Errorf("generate card: %w", err)
		}
	}
	if pan == "" && f.cardRef == "" {
		return models.Card{}, fmt.Errorf("one of --card, --card-ref or --generate-card is required")
	}
	if pan != "" {
		if err := cardgen.ValidatePAN(pan); err != nil {
			return models.Card{}, fmt.Errorf("card: %w", err)
		}
	}
	return models.Card{Number: pan, VerificationValue: f.cvv, Month: month, Year: year}, nil
}

type cardCall func(g *directplus.Gateway, ctx context.Context, amount int64, card models.PaymentInstrument, opts models.Options) (*directplus.Response, error)

type referenceCall func(g *directplus.Gateway, ctx context.Context, amount int64, authorization string, opts models.Options) (*directplus.Response, error)

func newCardCommand(global *globalFlags, use, short string, call cardCall) *cobra.Command {
	pf := &paymentFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := global.gateway(cmd)
			if err != nil {
				return err
			}
			amount, err := pf.minorUnits(cfg.Gateway.DefaultCurrency)
			if err != nil {
				return err
			}
			card, err := pf.card()
			if err != nil {
				return err
			}
			resp, err := call(g, cmd.Context(), amount, card, pf.options())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	pf.register(cmd, true, true, false)
	return cmd
}

func newReferenceCommand(global *globalFlags, use, short string, call referenceCall) *cobra.Command {
	pf := &paymentFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := global.gateway(cmd)
			if err != nil {
				return err
			}
			amount, err := pf.minorUnits(cfg.Gateway.DefaultCurrency)
			if err != nil {
				return err
			}
			resp, err := call(g, cmd.Context(), amount, pf.authorization, pf.options())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	pf.register(cmd, true, false, true)
	return cmd
}

func newPaymentCommands(global *globalFlags) []*cobra.Command {
	verify := &paymentFlags{}
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Authorize a small amount and void it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := global.gateway(cmd)
			if err != nil {
				return err
			}
			card, err := verify.card()
			if err != nil {
				return err
			}
			resp, err := g.Verify(cmd.Context(), card, verify.options())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	verify.register(verifyCmd, false, true, false)

	return []*cobra.Command{
		newCardCommand(global, "authorize", "Authorize an amount on a subscriber's card", (*directplus.Gateway).Authorize),
		newCardCommand(global, "purchase", "Charge a stored card", (*directplus.Gateway).Purchase),
		newReferenceCommand(global, "capture", "Capture an authorization", (*directplus.Gateway).Capture),
		newReferenceCommand(global, "void", "Cancel a transaction", (*directplus.Gateway).Void),
		newReferenceCommand(global, "refund", "Refund a transaction", (*directplus.Gateway).Refund),
		newReferenceCommand(global, "credit", "Credit a subscriber against a transaction", (*directplus.Gateway).Credit),
		verifyCmd,
	}
}

func newProfileCommand(global *globalFlags) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored card subscribers",
	}

	destroy := &paymentFlags{}
	destroyCmd := &cobra.Command{
		Use:   "destroy",
		Short: "Remove a subscriber",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, cfg, err := global.gateway(cmd)
			if err != nil {
				return err
			}
			amount, err := destroy.minorUnits(cfg.Gateway.DefaultCurrency)
			if err != nil {
				return err
			}
			resp, err := g.DestroyPaymentProfile(cmd.Context(), amount, destroy.options())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	destroy.register(destroyCmd, true, false, false)

	profile.AddCommand(
		newCardCommand(global, "create", "Register a subscriber and its card", (*directplus.Gateway).CreatePaymentProfile),
		newCardCommand(global, "update", "Replace the card of a subscriber", (*directplus.Gateway).UpdatePaymentProfile),
		destroyCmd,
	)
	return profile
}
