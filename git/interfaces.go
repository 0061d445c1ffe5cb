package git

import "context"

// Client defines the version-control operations the status engine needs.
// All methods are read-only with respect to the working tree; Fetch only
// updates remote-tracking refs.
type Client interface {
	// IsRepo checks whether path is a git repository.
	IsRepo(ctx context.Context, path string) bool

	// HasWorkingChanges reports uncommitted changes, tracked or untracked.
	HasWorkingChanges(ctx context.Context, path string) (bool, error)

	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context, path string) (string, error)

	// UpstreamOf returns the upstream tracking ref of the given branch,
	// or "" when none is configured.
	UpstreamOf(ctx context.Context, path, branch string) (string, error)

	// Fetch updates remote-tracking refs from the configured remote.
	Fetch(ctx context.Context, path string) error

	// CommitsAheadBehind counts commits reachable from only one side of
	// localRef and upstreamRef.
	CommitsAheadBehind(ctx context.Context, path, localRef, upstreamRef string) (ahead, behind int, err error)
}
