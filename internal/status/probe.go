package status

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/git"
)

// Prober computes the SyncStatus of one repository path. Implementations
// must honor the context and must not mutate the repository.
type Prober interface {
	Probe(ctx context.Context, path string) SyncStatus
}

// GitProber probes via a git.Client. The rule chain is ordered; the first
// matching rule wins:
//
//	missing path, no git marker, dirty tree, no upstream, fetch failure,
//	then commit counts with behind taking priority over ahead.
type GitProber struct {
	client git.Client
	logger *logrus.Entry
}

// NewGitProber creates a prober backed by the given git client.
func NewGitProber(client git.Client, logger *logrus.Entry) *GitProber {
	return &GitProber{client: client, logger: logger}
}

// Probe returns exactly one SyncStatus for the repository at path. All
// failures surface as status values, never as errors; one bad repository
// must not disturb the rest of a pass.
func (p *GitProber) Probe(ctx context.Context, path string) SyncStatus {
	if _, err := os.Stat(path); err != nil {
		return StatusNotFound
	}

	if !p.client.IsRepo(ctx, path) {
		return StatusNotAGitRepo
	}

	dirty, err := p.client.HasWorkingChanges(ctx, path)
	if err != nil {
		p.logger.WithField("path", path).WithError(err).Debug("working tree inspection failed")
		return StatusUnknown
	}
	if dirty {
		return StatusModified
	}

	branch, err := p.client.CurrentBranch(ctx, path)
	if err != nil {
		p.logger.WithField("path", path).WithError(err).Debug("branch lookup failed")
		return StatusUnknown
	}

	upstream, err := p.client.UpstreamOf(ctx, path, branch)
	if err != nil || upstream == "" {
		return StatusNoRemote
	}

	if err := p.client.Fetch(ctx, path); err != nil {
		p.logger.WithField("path", path).WithError(err).Debug("fetch failed")
		return StatusFetchFailed
	}

	ahead, behind, err := p.client.CommitsAheadBehind(ctx, path, branch, upstream)
	if err != nil {
		p.logger.WithField("path", path).WithError(err).Debug("divergence count failed")
		return StatusUnknown
	}

	// Behind takes priority over ahead when both are nonzero.
	switch {
	case behind > 0:
		return BehindBy(behind)
	case ahead > 0:
		return AheadBy(ahead)
	default:
		return StatusUpToDate
	}
}
