// Package tui renders the interactive repository list and drives user
// operations. It never blocks on the status engine: the view re-reads a
// snapshot at a bounded interval while probing happens in the background.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/internal/ops"
	"github.com/grovetools/pkgnav/internal/repo"
	"github.com/grovetools/pkgnav/internal/status"
)

// Model is the bubbletea model for the repository list.
type Model struct {
	supervisor *status.Supervisor
	runner     *ops.Runner
	logger     *logrus.Entry

	repos   []repo.Repository // full discovered list, fixed for the run
	visible []repo.Repository // after text filter

	statuses map[string]status.SyncStatus // latest snapshot, refreshed each tick
	progress status.Progress

	keys        KeyMap
	help        help.Model
	filterInput textinput.Model

	cursor       int
	scrollOffset int
	width        int
	height       int
	lastKeyWasG  bool // Track if last key press was 'g' for 'gg' combo

	pollInterval time.Duration
	opRunning    bool
	opMessage    string

	withoutDescriptor int
}

// New creates the TUI model. The supervisor must already own a started or
// startable refresh pass; the model only reads snapshots and requests
// refreshes.
func New(sup *status.Supervisor, runner *ops.Runner, discovery *repo.DiscoveryResult, pollInterval time.Duration, logger *logrus.Entry) *Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 64

	m := &Model{
		supervisor:        sup,
		runner:            runner,
		logger:            logger,
		repos:             discovery.Repositories,
		statuses:          sup.Store().Snapshot(),
		keys:              DefaultKeyMap,
		help:              help.New(),
		filterInput:       ti,
		pollInterval:      pollInterval,
		withoutDescriptor: discovery.WithoutDescriptor,
	}
	m.applyFilter()
	return m
}

// Init schedules the first poll tick.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// selected returns the repository under the cursor, or nil.
func (m *Model) selected() *repo.Repository {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[m.cursor]
}

// applyFilter rebuilds the visible list from the text filter.
func (m *Model) applyFilter() {
	needle := m.filterInput.Value()
	if needle == "" {
		m.visible = m.repos
	} else {
		m.visible = lo.Filter(m.repos, func(r repo.Repository, _ int) bool {
			return containsFold(r.Name, needle)
		})
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// behindRepos returns the repositories currently reported Behind.
func (m *Model) behindRepos() []repo.Repository {
	return lo.Filter(m.repos, func(r repo.Repository, _ int) bool {
		return m.statuses[r.Name].Kind == status.Behind
	})
}
