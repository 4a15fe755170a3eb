package app

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jwhwang/atmbank/pkg/config"
)

// SetupLogger builds the root slog logger backed by a styled charmbracelet
// handler.
func SetupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Padding(0, 1).
		Foreground(errorTxtColor)
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Padding(0, 1).
		Foreground(infoTxtColor)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Padding(0, 1).
		Foreground(warnTxtColor)

	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		TimeFormat:      cfg.TimeFormat,
		ReportTimestamp: true,
	})
	handler.SetStyles(styles)
	if cfg.Format == "json" {
		handler.SetFormatter(log.JSONFormatter)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
