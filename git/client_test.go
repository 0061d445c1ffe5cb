package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/pkgnav/testutil"
)

func newClient() *CLIClient {
	return NewCLIClient(10 * time.Second)
}

func TestIsRepo(t *testing.T) {
	c := newClient()

	t.Run("plain directory", func(t *testing.T) {
		assert.False(t, c.IsRepo(context.Background(), t.TempDir()))
	})

	t.Run("git repository", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir)
		assert.True(t, c.IsRepo(context.Background(), dir))
	})
}

func TestHasWorkingChanges(t *testing.T) {
	c := newClient()
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	dirty, err := c.HasWorkingChanges(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0644))
	dirty, err = c.HasWorkingChanges(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, dirty, "untracked files count as working changes")
}

func TestCurrentBranch(t *testing.T) {
	c := newClient()
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	branch, err := c.CurrentBranch(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	testutil.CreateBranch(t, dir, "feature")
	branch, err = c.CurrentBranch(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestUpstreamOf(t *testing.T) {
	c := newClient()

	t.Run("no upstream", func(t *testing.T) {
		dir := t.TempDir()
		testutil.InitGitRepo(t, dir)

		upstream, err := c.UpstreamOf(context.Background(), dir, "main")
		require.NoError(t, err)
		assert.Empty(t, upstream)
	})

	t.Run("with upstream", func(t *testing.T) {
		baseDir := t.TempDir()
		_, localDir := testutil.SetupRemotePair(t, baseDir)

		upstream, err := c.UpstreamOf(context.Background(), localDir, "main")
		require.NoError(t, err)
		assert.Equal(t, "origin/main", upstream)
	})
}

func TestFetch(t *testing.T) {
	c := newClient()
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	assert.NoError(t, c.Fetch(context.Background(), localDir))

	testutil.RunGitCommand(t, localDir, "remote", "set-url", "origin", filepath.Join(baseDir, "gone.git"))
	assert.Error(t, c.Fetch(context.Background(), localDir))
}

func TestCommitsAheadBehind(t *testing.T) {
	c := newClient()
	baseDir := t.TempDir()
	_, localDir := testutil.SetupRemotePair(t, baseDir)

	ahead, behind, err := c.CommitsAheadBehind(context.Background(), localDir, "main", "origin/main")
	require.NoError(t, err)
	assert.Equal(t, 0, ahead)
	assert.Equal(t, 0, behind)

	testutil.CreateCommit(t, localDir, "l1.txt", "1\n")
	testutil.CreateCommit(t, localDir, "l2.txt", "2\n")
	testutil.PushRemoteCommit(t, baseDir, "r1.txt")
	testutil.RunGitCommand(t, localDir, "fetch")

	ahead, behind, err = c.CommitsAheadBehind(context.Background(), localDir, "main", "origin/main")
	require.NoError(t, err)
	assert.Equal(t, 2, ahead)
	assert.Equal(t, 1, behind)
}

func TestCommitsAheadBehindRejectsBadRefs(t *testing.T) {
	c := newClient()
	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	_, _, err := c.CommitsAheadBehind(context.Background(), dir, "main; rm -rf /", "origin/main")
	assert.Error(t, err)
}
