package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd instances. pkgnav shells out for every git query
// and package operation, so tests can swap in an executor that routes
// commands to stub binaries instead of the real tools.
type Executor interface {
	// Command creates an exec.Cmd for the given program and arguments.
	Command(name string, args ...string) *exec.Cmd

	// CommandContext creates a context-aware exec.Cmd.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// RealExecutor runs commands through os/exec.
type RealExecutor struct{}

// Command creates a standard exec.Cmd.
func (e *RealExecutor) Command(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
