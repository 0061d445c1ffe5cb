// Package testutil provides git fixtures for tests: real temporary
// repositories, optionally paired with a bare remote.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RunGitCommand runs a git command in the given directory.
func RunGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed with output: %s", strings.Join(args, " "), string(output))
}

// InitGitRepo initializes a git repository with an initial commit.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()
	RunGitCommand(t, dir, "init", "--initial-branch=main")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	CreateCommit(t, dir, "README.md", "# test\n")
}

// CreateCommit creates a file and commits it.
func CreateCommit(t *testing.T, dir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
	RunGitCommand(t, dir, "add", filename)
	RunGitCommand(t, dir, "commit", "-m", "Add "+filename)
}

// CreateBranch creates and checks out a new git branch.
func CreateBranch(t *testing.T, dir, branch string) {
	t.Helper()
	RunGitCommand(t, dir, "checkout", "-b", branch)
}

// SetupRemotePair creates a bare remote plus a clone tracking it. The clone
// holds one pushed commit on main. Returns (remoteDir, localDir).
func SetupRemotePair(t *testing.T, baseDir string) (string, string) {
	t.Helper()
	remoteDir := filepath.Join(baseDir, "remote.git")
	localDir := filepath.Join(baseDir, "local")

	require.NoError(t, os.Mkdir(remoteDir, 0755))
	RunGitCommand(t, remoteDir, "init", "--bare", "--initial-branch=main")

	RunGitCommand(t, baseDir, "clone", "remote.git", "local")
	RunGitCommand(t, localDir, "config", "user.email", "test@example.com")
	RunGitCommand(t, localDir, "config", "user.name", "Test User")

	CreateCommit(t, localDir, "file.txt", "1\n")
	RunGitCommand(t, localDir, "push", "-u", "origin", "main")

	return remoteDir, localDir
}

// PushRemoteCommit adds a commit to the remote through a scratch clone,
// making any existing clone behind by one.
func PushRemoteCommit(t *testing.T, baseDir, filename string) {
	t.Helper()
	scratch := filepath.Join(baseDir, "scratch-"+filename)
	RunGitCommand(t, baseDir, "clone", "remote.git", filepath.Base(scratch))
	RunGitCommand(t, scratch, "config", "user.email", "test@example.com")
	RunGitCommand(t, scratch, "config", "user.name", "Test User")
	CreateCommit(t, scratch, filename, "remote change\n")
	RunGitCommand(t, scratch, "push", "origin", "main")
}

// WriteBuildFile drops a minimal build-descriptor file into the repository.
func WriteBuildFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# build descriptor\n"), 0644))
}
