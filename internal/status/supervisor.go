package status

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/internal/repo"
)

// SupervisorState is the lifecycle state of the supervisor.
type SupervisorState int

const (
	// Idle means no pass is running.
	Idle SupervisorState = iota

	// Running means a pass is actively probing.
	Running

	// Cancelling means a superseded pass has been signalled and is draining.
	Cancelling
)

// Supervisor owns the lifecycle of at most one active refresher at a time.
// Restarting cancels any stale pass first and waits for it to exit, so at
// most one refresher is ever writing; the store's generation gate rejects
// anything a dying pass still manages to emit. The supervisor is long-lived
// and stops only with the process (cancel the base context at shutdown).
type Supervisor struct {
	mu         sync.Mutex
	repos      []repo.Repository
	byName     map[string]repo.Repository
	store      *Store
	prober     Prober
	logger     *logrus.Entry
	baseCtx    context.Context
	generation uint64
	state      SupervisorState
	cancel     context.CancelFunc
	passDone   chan struct{}

	// onComplete, when set, receives a status snapshot after each finished
	// pass (used for persistence).
	onComplete func(map[string]SyncStatus)
}

// NewSupervisor creates a supervisor over the fixed repository list.
// baseCtx parents every pass; cancelling it stops all background work.
func NewSupervisor(baseCtx context.Context, repos []repo.Repository, prober Prober, store *Store, logger *logrus.Entry) *Supervisor {
	byName := make(map[string]repo.Repository, len(repos))
	for _, rp := range repos {
		byName[rp.Name] = rp
	}
	return &Supervisor{
		repos:   repos,
		byName:  byName,
		store:   store,
		prober:  prober,
		logger:  logger,
		baseCtx: baseCtx,
		state:   Idle,
	}
}

// OnPassComplete registers a callback invoked with a status snapshot after
// each pass that ran to completion. Must be called before the first refresh.
func (s *Supervisor) OnPassComplete(fn func(map[string]SyncStatus)) {
	s.onComplete = fn
}

// Repositories returns the fixed, ordered repository list.
func (s *Supervisor) Repositories() []repo.Repository {
	return s.repos
}

// Status returns the current status of one repository.
func (s *Supervisor) Status(name string) SyncStatus {
	return s.store.Get(name)
}

// Progress returns the progress snapshot of the active generation.
func (s *Supervisor) Progress() Progress {
	return s.store.Progress()
}

// Store exposes the underlying status store for snapshot readers.
func (s *Supervisor) Store() *Store {
	return s.store
}

// State returns the current lifecycle state.
func (s *Supervisor) State() SupervisorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the last-used generation id.
func (s *Supervisor) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// RequestFullRefresh starts a new probing pass. Any pass still running is
// cancelled and drained first, guaranteeing a strict ownership handover:
// the old refresher has exited before the new generation writes its Loading
// resets. Blocks only for the drain, never for the new pass.
func (s *Supervisor) RequestFullRefresh() {
	s.mu.Lock()
	for s.cancel != nil {
		s.state = Cancelling
		s.cancel()
		done := s.passDone
		s.mu.Unlock()
		<-done
		s.mu.Lock()
		// Loop: another caller may have started a fresh pass while we
		// were waiting outside the lock.
	}

	s.generation++
	gen := s.generation
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancel = cancel
	done := make(chan struct{})
	s.passDone = done
	s.state = Running
	s.mu.Unlock()

	s.logger.WithField("generation", gen).Debug("starting refresh pass")

	refresher := NewRefresher(s.repos, s.prober, s.store, s.logger)
	go func() {
		defer close(done)
		refresher.Run(ctx, gen)
		s.handlePassComplete(gen)
	}()
}

// handlePassComplete transitions Running -> Idle, ignoring notifications
// from superseded generations.
func (s *Supervisor) handlePassComplete(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.WithField("generation", gen).Debug("stale pass completion ignored")
		return
	}
	s.state = Idle
	s.cancel = nil
	s.passDone = nil
	onComplete := s.onComplete
	s.mu.Unlock()

	s.logger.WithField("generation", gen).Debug("refresh pass complete")
	if onComplete != nil {
		onComplete(s.store.Snapshot())
	}
}

// RequestSingleRefresh re-probes one repository under the current generation
// without restarting a full pass. Unknown names are ignored. The result
// write is generation-gated like any other, so a full refresh started in the
// meantime wins.
func (s *Supervisor) RequestSingleRefresh(name string) {
	s.mu.Lock()
	rp, ok := s.byName[name]
	gen := s.generation
	s.mu.Unlock()
	if !ok {
		return
	}

	if !s.store.MarkLoading(name, gen) {
		return
	}

	go func() {
		st := s.prober.Probe(s.baseCtx, rp.Path)
		if s.store.Set(name, st, gen) {
			s.logger.WithFields(logrus.Fields{
				"repo":   name,
				"status": st.String(),
			}).Debug("re-probed")
		}
	}()
}
