// Package state persists the last-known status snapshot so a fresh launch
// can show previous results while the first probing pass runs.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/pkgnav/internal/status"
)

// stateFileName is relative to the package root directory.
const stateFileName = ".pkgnav/state.yml"

// Entry is one persisted repository status.
type Entry struct {
	Status  string `yaml:"status"`
	Commits int    `yaml:"commits,omitempty"`
}

// Snapshot is the on-disk document.
type Snapshot struct {
	SavedAt  time.Time        `yaml:"saved_at"`
	Statuses map[string]Entry `yaml:"statuses"`
}

// kindNames covers only settled results; Loading and Unknown have no name
// here so they never reach the snapshot.
var kindNames = map[status.Kind]string{
	status.NotFound:    "not-found",
	status.NotAGitRepo: "not-a-git-repo",
	status.Modified:    "modified",
	status.FetchFailed: "fetch-failed",
	status.Behind:      "behind",
	status.Ahead:       "ahead",
	status.UpToDate:    "up-to-date",
	status.NoRemote:    "no-remote",
}

var namesToKind = func() map[string]status.Kind {
	m := make(map[string]status.Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func statePath(root string) string {
	return filepath.Join(root, stateFileName)
}

// Save writes the snapshot. Loading and Unknown entries are skipped; an
// in-flight probe is not a result worth remembering.
func Save(root string, statuses map[string]status.SyncStatus) error {
	snap := Snapshot{
		SavedAt:  time.Now(),
		Statuses: make(map[string]Entry, len(statuses)),
	}
	for name, st := range statuses {
		kindName, ok := kindNames[st.Kind]
		if !ok {
			continue
		}
		snap.Statuses[name] = Entry{Status: kindName, Commits: st.Commits}
	}

	path := statePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Load reads the snapshot. A missing or unreadable file yields an empty map;
// startup must never fail on stale state.
func Load(root string) map[string]status.SyncStatus {
	data, err := os.ReadFile(statePath(root))
	if err != nil {
		return map[string]status.SyncStatus{}
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return map[string]status.SyncStatus{}
	}

	result := make(map[string]status.SyncStatus, len(snap.Statuses))
	for name, entry := range snap.Statuses {
		kind, ok := namesToKind[entry.Status]
		if !ok {
			continue
		}
		result[name] = status.SyncStatus{Kind: kind, Commits: entry.Commits}
	}
	return result
}
