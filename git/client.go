package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grovetools/pkgnav/command"
)

// CLIClient implements Client by shelling out to the git binary.
type CLIClient struct {
	cmdBuilder   *command.SafeBuilder
	fetchTimeout time.Duration
}

// Ensure it implements the interface
var _ Client = (*CLIClient)(nil)

// NewCLIClient creates a new CLI-backed git client. fetchTimeout bounds
// network-visible operations; zero means the builder's default timeout.
func NewCLIClient(fetchTimeout time.Duration) *CLIClient {
	return &CLIClient{
		cmdBuilder:   command.NewSafeBuilder(),
		fetchTimeout: fetchTimeout,
	}
}

// NewCLIClientWithExecutor creates a client with a custom command executor.
func NewCLIClientWithExecutor(exec command.Executor, fetchTimeout time.Duration) *CLIClient {
	return &CLIClient{
		cmdBuilder:   command.NewSafeBuilderWithExecutor(exec),
		fetchTimeout: fetchTimeout,
	}
}

func (c *CLIClient) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd, err := c.cmdBuilder.Build(ctx, "git", args...)
	if err != nil {
		return "", fmt.Errorf("failed to build command: %w", err)
	}
	execCmd, cancel := cmd.Exec()
	defer cancel()
	execCmd.Dir = dir
	out, err := execCmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo checks if the given directory is inside a git repository
func (c *CLIClient) IsRepo(ctx context.Context, path string) bool {
	cmd, err := c.cmdBuilder.Build(ctx, "git", "rev-parse", "--git-dir")
	if err != nil {
		return false
	}
	execCmd, cancel := cmd.Exec()
	defer cancel()
	execCmd.Dir = path
	return execCmd.Run() == nil
}

// HasWorkingChanges reports whether the working tree is dirty.
func (c *CLIClient) HasWorkingChanges(ctx context.Context, path string) (bool, error) {
	out, err := c.output(ctx, path, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CurrentBranch returns the checked-out branch name.
func (c *CLIClient) CurrentBranch(ctx context.Context, path string) (string, error) {
	return c.output(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
}

// UpstreamOf returns the upstream tracking ref for branch, or "" when the
// branch has no upstream configured.
func (c *CLIClient) UpstreamOf(ctx context.Context, path, branch string) (string, error) {
	if err := c.cmdBuilder.Validate("gitRef", branch); err != nil {
		return "", err
	}
	out, err := c.output(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", branch+"@{upstream}")
	if err != nil {
		// git exits non-zero when no upstream is configured; that is not
		// an error for callers, just an absent upstream.
		return "", nil
	}
	return out, nil
}

// Fetch updates remote-tracking refs. The fetch timeout applies on top of
// the caller's context.
func (c *CLIClient) Fetch(ctx context.Context, path string) error {
	cmd, err := c.cmdBuilder.Build(ctx, "git", "fetch", "--quiet")
	if err != nil {
		return fmt.Errorf("failed to build command: %w", err)
	}
	if c.fetchTimeout > 0 {
		cmd = cmd.WithTimeout(c.fetchTimeout)
	}
	execCmd, cancel := cmd.Exec()
	defer cancel()
	execCmd.Dir = path
	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("git fetch: %w", err)
	}
	return nil
}

// CommitsAheadBehind counts the divergence between localRef and upstreamRef.
func (c *CLIClient) CommitsAheadBehind(ctx context.Context, path, localRef, upstreamRef string) (ahead, behind int, err error) {
	for _, ref := range []string{localRef, upstreamRef} {
		if err := c.cmdBuilder.Validate("gitRef", ref); err != nil {
			return 0, 0, err
		}
	}
	// left-right count over upstream...local prints "<behind>\t<ahead>"
	out, err := c.output(ctx, path, "rev-list", "--left-right", "--count", upstreamRef+"..."+localRef)
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	behind, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse behind count: %w", err)
	}
	ahead, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse ahead count: %w", err)
	}
	return ahead, behind, nil
}
