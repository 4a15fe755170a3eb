// Package app wires configuration, adapters, and services into a runnable
// Fiber application.
package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	atmsvc "github.com/jwhwang/atmbank/pkg/service/atm"
	"github.com/jwhwang/atmbank/webapi/atm"
)

// New builds the services and returns the Fiber app with routes registered.
func New(deps *Deps) *fiber.App {
	svc := atmsvc.New(deps.Uow, deps.Sessions, deps.Bus, deps.Logger)

	app := fiber.New(fiber.Config{
		AppName: "atmbank",
	})
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
	}))

	atm.Routes(app, svc)
	return app
}
