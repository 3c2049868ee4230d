package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aristath/moneyball/internal/di"
	"github.com/aristath/moneyball/internal/tui"
	"github.com/aristath/moneyball/pkg/logger"
)

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal frontend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func runTUI(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	if ctx == nil {
		ctx = context.Background()
	}

	// The screen belongs to bubbletea; logs go to a file in the data dir.
	logFile, err := os.OpenFile(cfg.LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: logFile,
	})
	logger.SetGlobalLogger(log)

	container, err := di.WireTerminal(cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	deps := tui.DepsFromClient(container.Backend, container.SessionRepo, log)
	p := tea.NewProgram(tui.NewModel(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal frontend: %w", err)
	}
	return nil
}
