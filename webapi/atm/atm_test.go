package atm_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraeventbus "github.com/jwhwang/atmbank/infra/eventbus"
	infrasession "github.com/jwhwang/atmbank/infra/session"
	"github.com/jwhwang/atmbank/internal/fixtures"
	"github.com/jwhwang/atmbank/pkg/domain"
	atmsvc "github.com/jwhwang/atmbank/pkg/service/atm"
	"github.com/jwhwang/atmbank/webapi"
	atmapi "github.com/jwhwang/atmbank/webapi/atm"
)

const (
	testCardNumber = "4000123412341234"
	testPin        = "4321"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := fixtures.NewMemoryStore()
	salt := strings.Repeat("ab", 16)
	store.AddCard(domain.Card{
		CardNumber:  4000123412341234,
		UserID:      7,
		PinSaltHash: salt + domain.HashPin(testPin, salt),
	})
	store.AddAccount(11, 7, "checking",
		domain.LedgerRecord{RecordIndex: 1, Action: domain.ActionDeposit, Balance: 500})

	svc := atmsvc.New(
		fixtures.NewMemoryUoW(store),
		infrasession.NewMemoryStore(2*time.Minute),
		infraeventbus.NewMemoryEventBus(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	app := fiber.New()
	atmapi.Routes(app, svc)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(atmapi.HeaderSessionToken, token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func loginHTTP(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/session", "", fiber.Map{
		"card_number": 4000123412341234,
		"pin":         testPin,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSetSessionEndpoint(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	loginHTTP(t, app)
}

func TestSetSessionWrongPin(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodPost, "/session", "", fiber.Map{
		"card_number": 4000123412341234,
		"pin":         "0000",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication failed", body["title"])
}

func TestSetSessionMissingFields(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	resp, _ := doJSON(t, app, fiber.MethodPost, "/session", "", fiber.Map{"pin": testPin})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAccountsEndpoint(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := loginHTTP(t, app)

	resp, body := doJSON(t, app, fiber.MethodGet, "/accounts?card_number="+testCardNumber, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	view := data[0].(map[string]any)
	assert.Equal(t, float64(11), view["account_id"])
	assert.Equal(t, "checking", view["name"])
	assert.Equal(t, float64(500), view["balance"])
}

func TestGetAccountsWithoutToken(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	loginHTTP(t, app)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/accounts?card_number="+testCardNumber, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAccountActionEndpointDeposit(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := loginHTTP(t, app)

	resp, body := doJSON(t, app, fiber.MethodPost, "/account/11", token, fiber.Map{
		"card_number": 4000123412341234,
		"action":      "deposit",
		"amount":      250,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(2), data["record_index"])
	assert.Equal(t, "deposit", data["action"])
	assert.Equal(t, float64(750), data["balance"])
}

func TestAccountActionInvalidAction(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := loginHTTP(t, app)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/account/11", token, fiber.Map{
		"card_number": 4000123412341234,
		"action":      "transfer",
		"amount":      10,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAccountActionInsufficientFunds(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := loginHTTP(t, app)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/account/11", token, fiber.Map{
		"card_number": 4000123412341234,
		"action":      "withdrawal",
		"amount":      501,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAccountActionUnknownAccount(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	token := loginHTTP(t, app)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/account/999", token, fiber.Map{
		"card_number": 4000123412341234,
		"action":      "deposit",
		"amount":      10,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	cases := map[error]int{
		domain.ErrInvalidCardNumber:      fiber.StatusUnauthorized,
		domain.ErrIncorrectPin:           fiber.StatusUnauthorized,
		domain.ErrInvalidSessionKey:      fiber.StatusUnauthorized,
		domain.ErrInvalidAmount:          fiber.StatusBadRequest,
		domain.ErrInvalidAction:          fiber.StatusBadRequest,
		domain.ErrNegativeAccountBalance: fiber.StatusUnprocessableEntity,
		domain.ErrAccountNotFound:        fiber.StatusNotFound,
		domain.ErrHistoryIntegrity:       fiber.StatusConflict,
	}
	for err, want := range cases {
		assert.Equal(t, want, webapi.ErrorToStatusCode(err), err.Error())
	}
	assert.Equal(t, fiber.StatusInternalServerError, webapi.ErrorToStatusCode(assert.AnError))
}
