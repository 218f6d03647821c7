package sandbox_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alovak/directplus/directplus"
	dpmodels "github.com/alovak/directplus/directplus/models"
	"github.com/alovak/directplus/sandbox"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAPI(t *testing.T) {
	router := chi.NewRouter()

	api := sandbox.NewAPI(sandbox.NewService(sandbox.NewRepository(), sandbox.DefaultConfig()))
	api.AppendRoutes(router)

	form := "VERSION=00104&TYPE=00056&SITE=1999888&RANG=032&CLE=1999888I&NUMQUESTION=0000000042" +
		"&DEVISE=978&MONTANT=0000000000&REFABONNE=u1&PORTEUR=4242424242424242&DATEVAL=1299"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/PPPS.php", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "ISO-8859-1")

	body := w.Body.String()
	require.Contains(t, body, "CODEREPONSE=00000")
	require.Contains(t, body, "NUMQUESTION=0000000042")
	require.Contains(t, body, "REFABONNE=u1")
	require.Contains(t, body, "COMMENTAIRE=Op\xe9ration r\xe9ussie")
}

func newGateway(t *testing.T, primary, backup string) *directplus.Gateway {
	t.Helper()
	cfg := directplus.DefaultConfig()
	cfg.Login = "1999888032"
	cfg.Password = "1999888I"
	cfg.Endpoints.TestURL = primary
	cfg.Endpoints.TestBackupURL = backup

	g, err := directplus.NewGateway(discard, cfg, nil)
	require.NoError(t, err)
	return g
}

func newServer(t *testing.T, cfg *sandbox.Config, repo *sandbox.Repository) string {
	t.Helper()
	app := sandbox.NewApp(discard, cfg, repo)
	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)
	return srv.URL + cfg.Path
}

func TestGatewayAgainstSandbox(t *testing.T) {
	repo := sandbox.NewRepository()
	url := newServer(t, sandbox.DefaultConfig(), repo)
	g := newGateway(t, url, url)
	ctx := context.Background()

	card := dpmodels.Card{Number: "4242424242424242", VerificationValue: "123", Month: 12, Year: 2099}
	opts := dpmodels.Options{OrderID: "order-1", UserReference: "user-1"}

	profile, err := g.CreatePaymentProfile(ctx, 0, card, opts)
	require.NoError(t, err)
	require.True(t, profile.Success, profile.Message)
	require.NotEmpty(t, profile.CardReference)
	require.Len(t, profile.Authorization, 20)

	dup, err := g.CreatePaymentProfile(ctx, 0, card, opts)
	require.NoError(t, err)
	require.False(t, dup.Success)
	require.True(t, dup.AlreadyExistingProfile)
	require.Equal(t, "Abonné déjà existant", dup.Message)

	auth, err := g.Authorize(ctx, 1500, card, opts)
	require.NoError(t, err)
	require.True(t, auth.Success, auth.Message)

	capture, err := g.Capture(ctx, 1500, auth.Authorization, opts)
	require.NoError(t, err)
	require.True(t, capture.Success, capture.Message)

	refund, err := g.Refund(ctx, 1500, auth.Authorization, opts)
	require.NoError(t, err)
	require.True(t, refund.Success, refund.Message)

	withRef := opts
	withRef.CreditCardReference = profile.CardReference
	purchase, err := g.Purchase(ctx, 2500, card, withRef)
	require.NoError(t, err)
	require.True(t, purchase.Success, purchase.Message)

	void, err := g.Void(ctx, 2500, purchase.Authorization, opts)
	require.NoError(t, err)
	require.True(t, void.Success, void.Message)

	again, err := g.Void(ctx, 2500, purchase.Authorization, opts)
	require.NoError(t, err)
	require.False(t, again.Success)

	verify, err := g.Verify(ctx, card, opts)
	require.NoError(t, err)
	require.True(t, verify.Success, verify.Message)

	newCard := dpmodels.Card{Number: "1111222233334444", Month: 1, Year: 2098}
	updated, err := g.UpdatePaymentProfile(ctx, 0, newCard, opts)
	require.NoError(t, err)
	require.True(t, updated.Success, updated.Message)

	declined, err := g.Authorize(ctx, 100, card, opts)
	require.NoError(t, err)
	require.False(t, declined.Success)
	require.Equal(t, "00004", declined.ErrorCode)

	destroyed, err := g.DestroyPaymentProfile(ctx, 0, opts)
	require.NoError(t, err)
	require.True(t, destroyed.Success, destroyed.Message)

	// 00017 is also an unavailability code: the backup is asked too
	unknown, err := g.Authorize(ctx, 100, card, opts)
	require.NoError(t, err)
	require.False(t, unknown.Success)
	require.True(t, unknown.UnknownProfile)
	require.True(t, unknown.Backup)
	require.Equal(t, directplus.CategoryUnknownProfile, unknown.Category)
}

func TestGatewayFailsOverToBackupSandbox(t *testing.T) {
	repo := sandbox.NewRepository()

	down := sandbox.DefaultConfig()
	down.OutageCode = "00001"
	primary := newServer(t, down, repo)
	backup := newServer(t, sandbox.DefaultConfig(), repo)

	g := newGateway(t, primary, backup)
	card := dpmodels.Card{Number: "4242424242424242", Month: 12, Year: 2099}

	resp, err := g.CreatePaymentProfile(context.Background(), 0, card, dpmodels.Options{UserReference: "user-2"})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	require.True(t, resp.Backup)
}

func TestGatewayWithWrongCredentials(t *testing.T) {
	url := newServer(t, sandbox.DefaultConfig(), nil)

	cfg := directplus.DefaultConfig()
	cfg.Login = "1999888099"
	cfg.Password = "wrong"
	cfg.Endpoints.TestURL = url
	cfg.Endpoints.TestBackupURL = url
	g, err := directplus.NewGateway(discard, cfg, nil)
	require.NoError(t, err)

	resp, err := g.DestroyPaymentProfile(context.Background(), 0, dpmodels.Options{UserReference: "u"})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "00006", resp.ErrorCode)
	require.Equal(t, "Accès refusé ou site / rang incorrect", resp.Message)
}

func TestApp(t *testing.T) {
	cfg := sandbox.DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	app := sandbox.NewApp(discard, cfg, nil)
	require.NoError(t, app.Start())
	defer app.Shutdown()

	for _, path := range []string{"/-/live", "/-/ready"} {
		resp, err := http.Get("http://" + app.Addr + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
	require.True(t, strings.HasSuffix(app.URL(), "/PPPS.php"))
}
