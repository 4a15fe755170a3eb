// Package atm exposes the transaction handler over HTTP. The transport is
// deliberately thin: parse, call the service, map the domain error taxonomy
// to status codes.
package atm

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	atmsvc "github.com/jwhwang/atmbank/pkg/service/atm"
	"github.com/jwhwang/atmbank/webapi"
)

// HeaderSessionToken carries the opaque session token on authenticated calls.
const HeaderSessionToken = "X-Session-Token"

// Routes registers the ATM endpoints:
//   - POST /session        : authenticate card + PIN, issue a session token.
//   - GET  /accounts       : list the cardholder's accounts with balances.
//   - POST /account/:id    : apply a deposit or withdrawal to an account.
func Routes(app *fiber.App, svc *atmsvc.Service) {
	app.Post("/session", SetSession(svc))
	app.Get("/accounts", GetAccounts(svc))
	app.Post("/account/:id", AccountAction(svc))
}

// SetSession handles card/PIN authentication.
func SetSession(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := webapi.BindAndValidate[SetSessionRequest](c)
		if input == nil {
			return err
		}
		token, err := svc.SetSession(c.Context(), input.CardNumber, input.Pin)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err), "Authentication failed", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusCreated, "Session created", fiber.Map{"token": token})
	}
}

// GetAccounts lists the cardholder's accounts.
func GetAccounts(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cardNumber, err := strconv.ParseInt(c.Query("card_number"), 10, 64)
		if err != nil {
			return webapi.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid card number", err.Error())
		}
		token := c.Get(HeaderSessionToken)
		views, err := svc.GetAccounts(c.Context(), token, cardNumber)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err), "Failed to list accounts", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", views)
	}
}

// AccountAction applies a deposit or withdrawal.
func AccountAction(svc *atmsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return webapi.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		input, err := webapi.BindAndValidate[AccountActionRequest](c)
		if input == nil {
			return err
		}
		token := c.Get(HeaderSessionToken)
		rec, err := svc.AccountAction(c.Context(), token, input.CardNumber, accountID, input.Action, input.Amount)
		if err != nil {
			return webapi.ErrorResponseJSON(c, webapi.ErrorToStatusCode(err), "Account action failed", err.Error())
		}
		return webapi.SuccessResponseJSON(c, fiber.StatusCreated, "Action applied", LedgerRecordResponse{
			RecordIndex: rec.RecordIndex,
			Action:      string(rec.Action),
			Balance:     rec.Balance,
			TimeAt:      rec.TimeAt,
		})
	}
}
