package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tui"
)

const configPath = "config.yml"

// main - plays one local game in the terminal.
func main() {
	conf, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := tui.New(logger, tictactoe.NewGameController(nil))

	if _, err = tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// initLogger writes to the configured file so log lines never land on the screen.
func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: conf.SlogLevel()}

	if conf.TUILogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), func() {}, nil
	}

	file, err := os.OpenFile(conf.TUILogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(slog.NewJSONHandler(file, opts)), func() { _ = file.Close() }, nil
}
