package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/pkgnav/cli"
)

// NewListCmd creates the non-interactive status listing command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Run one status pass and print the results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			eng, err := newEngine(ctx, cfg, true)
			if err != nil {
				return err
			}

			// Wake on store changes instead of tight polling; the ticker is
			// the timeout fallback.
			updates := eng.store.Subscribe()
			defer eng.store.Unsubscribe(updates)

			eng.supervisor.RequestFullRefresh()

			ticker := time.NewTicker(500 * time.Millisecond)
			defer ticker.Stop()
			for !eng.store.Progress().Complete {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-updates:
				case <-ticker.C:
				}
			}

			out := cmd.OutOrStdout()
			for _, rp := range eng.discovery.Repositories {
				descriptor := ""
				if !rp.HasBuildFile {
					descriptor = "  (no descriptor)"
				}
				fmt.Fprintf(out, "%-30s %s%s\n", rp.Name, eng.store.Get(rp.Name), descriptor)
			}
			progress := eng.store.Progress()
			fmt.Fprintf(out, "\n%d repositories probed, %d without descriptor\n",
				progress.Done, eng.discovery.WithoutDescriptor)
			return nil
		},
	}
}
