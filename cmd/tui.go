package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grovetools/pkgnav/cli"
	"github.com/grovetools/pkgnav/internal/ops"
	"github.com/grovetools/pkgnav/internal/watch"
	"github.com/grovetools/pkgnav/logging"
	"github.com/grovetools/pkgnav/tui"
)

// RunTUI is the root command action: discover, start the background refresh,
// and hand the terminal to the interactive list.
func RunTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// No console logging while the TUI owns the terminal.
	eng, err := newEngine(ctx, cfg, false)
	if err != nil {
		return err
	}

	eng.supervisor.RequestFullRefresh()

	if cfg.WatchEnabled() {
		watcher := watch.New(eng.discovery.Repositories, eng.supervisor.RequestSingleRefresh, logging.NewLogger("watch"))
		go func() {
			_ = watcher.Run(ctx)
		}()
	}

	runner := ops.NewRunner(cfg.Commands, logging.NewLogger("ops"))
	model := tui.New(eng.supervisor, runner, eng.discovery, cfg.PollInterval.Std(), logging.NewLogger("tui"))
	return tui.Run(model)
}
