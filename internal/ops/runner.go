// Package ops executes the external pull/build/clean actions against a
// repository. The command lines are opaque configuration; pkgnav only cares
// about the exit status and that a finished operation invalidates the
// repository's sync status.
package ops

import (
	"context"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/pkgnav/command"
	"github.com/grovetools/pkgnav/config"
	pkgerrors "github.com/grovetools/pkgnav/errors"
)

// Kind identifies one of the configured operations.
type Kind string

const (
	Pull  Kind = "pull"
	Build Kind = "build"
	Clean Kind = "clean"
)

// OpTimeout bounds a single operation run in captured mode.
const OpTimeout = 30 * time.Minute

// Runner builds and runs operation commands.
type Runner struct {
	commands   config.CommandsConfig
	cmdBuilder *command.SafeBuilder
	logger     *logrus.Entry
}

// NewRunner creates a runner for the configured command lines.
func NewRunner(commands config.CommandsConfig, logger *logrus.Entry) *Runner {
	return &Runner{
		commands:   commands,
		cmdBuilder: command.NewSafeBuilder(),
		logger:     logger,
	}
}

func (r *Runner) line(kind Kind) string {
	switch kind {
	case Pull:
		return r.commands.Pull
	case Build:
		return r.commands.Build
	case Clean:
		return r.commands.Clean
	default:
		return ""
	}
}

// Command returns an exec.Cmd for the operation, for callers that hand the
// terminal over to the command (the TUI does this for interactive builds).
// The release func must be invoked once the command has finished.
func (r *Runner) Command(kind Kind, repoPath string) (*exec.Cmd, context.CancelFunc, error) {
	line := r.line(kind)
	if line == "" {
		return nil, nil, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "no command configured for "+string(kind))
	}
	if err := r.cmdBuilder.Validate("fileName", repoPath); err != nil {
		return nil, nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeInvalidInput, "unsafe repository path")
	}
	cmd, err := r.cmdBuilder.Build(context.Background(), "sh", "-c", line)
	if err != nil {
		return nil, nil, err
	}
	execCmd, cancel := cmd.WithTimeout(OpTimeout).Exec()
	execCmd.Dir = repoPath
	return execCmd, cancel, nil
}

// Run executes the operation with captured output, logging the result.
// Used by batch mode and non-interactive callers.
func (r *Runner) Run(ctx context.Context, kind Kind, repoPath string) error {
	line := r.line(kind)
	if line == "" {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "no command configured for "+string(kind))
	}
	if err := r.cmdBuilder.Validate("fileName", repoPath); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeInvalidInput, "unsafe repository path")
	}

	cmd, err := r.cmdBuilder.Build(ctx, "sh", "-c", line)
	if err != nil {
		return err
	}
	execCmd, cancel := cmd.WithTimeout(OpTimeout).Exec()
	defer cancel()
	execCmd.Dir = repoPath

	start := time.Now()
	output, err := execCmd.CombinedOutput()
	entry := r.logger.WithFields(logrus.Fields{
		"op":       string(kind),
		"path":     repoPath,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).WithField("output", string(output)).Error("operation failed")
		return pkgerrors.CommandFailed(line, err)
	}
	entry.Debug("operation finished")
	return nil
}

// RunAll executes the operation over every given repository path in order,
// continuing past failures. Returns the first error encountered, if any.
func (r *Runner) RunAll(ctx context.Context, kind Kind, repoPaths []string) error {
	var firstErr error
	for _, path := range repoPaths {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.Run(ctx, kind, path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
