package status

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/internal/repo"
)

// Refresher performs one probing pass over the fixed repository list,
// writing each result into the store tagged with the pass generation.
// Probing is sequential on the calling goroutine; the generation gate in the
// store makes a parallel variant observably equivalent, so the simpler form
// is used.
type Refresher struct {
	repos  []repo.Repository
	prober Prober
	store  *Store
	logger *logrus.Entry
}

// NewRefresher creates a refresher over the given repository list.
func NewRefresher(repos []repo.Repository, prober Prober, store *Store, logger *logrus.Entry) *Refresher {
	return &Refresher{
		repos:  repos,
		prober: prober,
		store:  store,
		logger: logger,
	}
}

// Run executes the pass. It first resets every repository to Loading under
// the new generation, then probes each in order. Cancellation stops the loop
// before the next probe; a probe already in flight finishes on its own and
// its write is stale-rejected if a newer generation has started. The
// generation is marked complete whether the pass finished or was cancelled.
func (r *Refresher) Run(ctx context.Context, generation uint64) {
	names := make([]string, len(r.repos))
	for i, rp := range r.repos {
		names[i] = rp.Name
	}
	r.store.MarkAllLoading(generation, names)

	for _, rp := range r.repos {
		select {
		case <-ctx.Done():
			r.logger.WithField("generation", generation).Debug("pass cancelled")
			r.store.MarkComplete(generation)
			return
		default:
		}

		st := r.prober.Probe(ctx, rp.Path)
		if ctx.Err() != nil {
			// Result computed under a dying context is not trustworthy;
			// let the next generation re-probe.
			r.store.MarkComplete(generation)
			return
		}
		r.store.Set(rp.Name, st, generation)
		r.logger.WithFields(logrus.Fields{
			"repo":       rp.Name,
			"status":     st.String(),
			"generation": generation,
		}).Debug("probed")
	}

	r.store.MarkComplete(generation)
}
