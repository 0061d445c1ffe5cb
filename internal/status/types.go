// Package status implements the asynchronous sync-status engine: probing,
// the generation-gated status store, the background refresher, and the
// supervisor that owns refresh lifecycles.
package status

import "fmt"

// Kind enumerates the possible sync states of a repository relative to its
// upstream. Exactly one Kind holds per repository at any instant.
type Kind int

const (
	// Unknown means no probe result has been recorded yet.
	Unknown Kind = iota

	// Loading means a probe for the repository is in flight.
	Loading

	// NotFound means the repository path no longer exists.
	NotFound

	// NotAGitRepo means the path exists but carries no git marker.
	NotAGitRepo

	// Modified means the working tree has uncommitted changes.
	Modified

	// FetchFailed means the remote could not be contacted.
	FetchFailed

	// Behind means the upstream has commits the local branch lacks.
	Behind

	// Ahead means the local branch has commits the upstream lacks.
	Ahead

	// UpToDate means local and upstream point at the same history.
	UpToDate

	// NoRemote means the current branch has no upstream configured.
	NoRemote
)

// SyncStatus is the result of one probe. Commits is only meaningful for
// Behind and Ahead.
type SyncStatus struct {
	Kind    Kind
	Commits int
}

// Convenience constructors for the count-free kinds.
var (
	StatusUnknown     = SyncStatus{Kind: Unknown}
	StatusLoading     = SyncStatus{Kind: Loading}
	StatusNotFound    = SyncStatus{Kind: NotFound}
	StatusNotAGitRepo = SyncStatus{Kind: NotAGitRepo}
	StatusModified    = SyncStatus{Kind: Modified}
	StatusFetchFailed = SyncStatus{Kind: FetchFailed}
	StatusUpToDate    = SyncStatus{Kind: UpToDate}
	StatusNoRemote    = SyncStatus{Kind: NoRemote}
)

// BehindBy returns a Behind status with the given commit count.
func BehindBy(n int) SyncStatus {
	return SyncStatus{Kind: Behind, Commits: n}
}

// AheadBy returns an Ahead status with the given commit count.
func AheadBy(n int) SyncStatus {
	return SyncStatus{Kind: Ahead, Commits: n}
}

// String renders the status for display and logs.
func (s SyncStatus) String() string {
	switch s.Kind {
	case Loading:
		return "loading"
	case NotFound:
		return "not found"
	case NotAGitRepo:
		return "not a git repo"
	case Modified:
		return "modified"
	case FetchFailed:
		return "fetch failed"
	case Behind:
		return fmt.Sprintf("behind %d", s.Commits)
	case Ahead:
		return fmt.Sprintf("ahead %d", s.Commits)
	case UpToDate:
		return "up to date"
	case NoRemote:
		return "no remote"
	default:
		return "unknown"
	}
}

// Progress is a point-in-time snapshot of a probing pass.
type Progress struct {
	Done     int
	Total    int
	Complete bool
}
