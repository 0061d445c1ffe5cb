// Package cmd holds the pkgnav subcommands and shared wiring.
package cmd

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/config"
	"github.com/grovetools/pkgnav/git"
	"github.com/grovetools/pkgnav/internal/repo"
	"github.com/grovetools/pkgnav/internal/status"
	"github.com/grovetools/pkgnav/logging"
	"github.com/grovetools/pkgnav/state"
)

// engine bundles the wired status machinery for one run.
type engine struct {
	discovery  *repo.DiscoveryResult
	store      *status.Store
	supervisor *status.Supervisor
}

// newEngine discovers repositories and assembles the status engine. The
// store is pre-seeded from the persisted snapshot, and each completed pass
// re-persists it.
func newEngine(ctx context.Context, cfg *config.Config, console bool) (*engine, error) {
	logging.Configure(cfg.Logging, cfg.Root, console)
	logger := logging.NewLogger("engine")

	discovery, err := repo.Discover(cfg.Root, cfg.BuildFile)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"root":               cfg.Root,
		"repositories":       len(discovery.Repositories),
		"without_descriptor": discovery.WithoutDescriptor,
	}).Info("discovered repositories")

	store := status.NewStore()
	store.Seed(state.Load(cfg.Root))

	gitClient := git.NewCLIClient(cfg.FetchTimeout.Std())
	prober := status.NewGitProber(gitClient, logging.NewLogger("probe"))
	sup := status.NewSupervisor(ctx, discovery.Repositories, prober, store, logging.NewLogger("refresh"))
	sup.OnPassComplete(func(snapshot map[string]status.SyncStatus) {
		if err := state.Save(cfg.Root, snapshot); err != nil {
			logger.WithError(err).Warn("could not persist status snapshot")
		}
	})

	return &engine{
		discovery:  discovery,
		store:      store,
		supervisor: sup,
	}, nil
}
