package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/jwhwang/atmbank/pkg/app"
	"github.com/jwhwang/atmbank/pkg/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := app.SetupLogger(cfg.Log)

	deps, err := app.Setup(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	logger.Info(
		"starting server",
		"env", cfg.Env,
		"scheme", cfg.Server.Scheme,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	a := app.New(deps)
	return a.Listen(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
}
