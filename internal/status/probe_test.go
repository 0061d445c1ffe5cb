package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/pkgnav/git"
	"github.com/grovetools/pkgnav/logging"
	"github.com/grovetools/pkgnav/testutil"
)

func newProber() *GitProber {
	client := git.NewCLIClient(10 * time.Second)
	return NewGitProber(client, logging.NewLogger("probe-test"))
}

func TestProbeMissingPath(t *testing.T) {
	p := newProber()
	st := p.Probe(context.Background(), "/non/existent/path")
	assert.Equal(t, StatusNotFound, st)
}

func TestProbeNotAGitRepo(t *testing.T) {
	p := newProber()
	st := p.Probe(context.Background(), t.TempDir())
	assert.Equal(t, StatusNotAGitRepo, st)
}

func TestProbeModified(t *testing.T) {
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0644))

	p := newProber()
	assert.Equal(t, StatusModified, p.Probe(context.Background(), dir))
}

func TestProbeNoRemote(t *testing.T) {
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	p := newProber()
	assert.Equal(t, StatusNoRemote, p.Probe(context.Background(), dir))
}

func TestProbeUpToDate(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	p := newProber()
	assert.Equal(t, StatusUpToDate, p.Probe(context.Background(), localDir))
}

func TestProbeIdempotent(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	p := newProber()
	first := p.Probe(context.Background(), localDir)
	second := p.Probe(context.Background(), localDir)
	assert.Equal(t, first, second)
}

func TestProbeAhead(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)
	testutil.CreateCommit(t, localDir, "local.txt", "local\n")

	p := newProber()
	assert.Equal(t, AheadBy(1), p.Probe(context.Background(), localDir))
}

func TestProbeBehind(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)
	testutil.PushRemoteCommit(t, baseDir, "r1.txt")

	p := newProber()
	assert.Equal(t, BehindBy(1), p.Probe(context.Background(), localDir))
}

func TestProbeBehindTakesPriorityOverAhead(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	// 2 commits behind, 3 ahead.
	testutil.PushRemoteCommit(t, baseDir, "r1.txt")
	testutil.PushRemoteCommit(t, baseDir, "r2.txt")
	testutil.CreateCommit(t, localDir, "l1.txt", "1\n")
	testutil.CreateCommit(t, localDir, "l2.txt", "2\n")
	testutil.CreateCommit(t, localDir, "l3.txt", "3\n")

	p := newProber()
	assert.Equal(t, BehindBy(2), p.Probe(context.Background(), localDir))
}

func TestProbeFetchFailed(t *testing.T) {
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	// Point the remote at a path that does not exist.
	testutil.RunGitCommand(t, localDir, "remote", "set-url", "origin", filepath.Join(baseDir, "gone.git"))

	p := newProber()
	assert.Equal(t, StatusFetchFailed, p.Probe(context.Background(), localDir))
}
