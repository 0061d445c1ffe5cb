package errors

import (
	"fmt"
	"os/exec"
)

// RootNotFound creates an error for a missing package root directory
func RootNotFound(path string) *PkgError {
	return New(ErrCodeRootNotFound, fmt.Sprintf("package root directory not found: %s", path)).
		WithDetail("path", path)
}

// NoRepositories creates an error for a root containing no usable repositories
func NoRepositories(path string) *PkgError {
	return New(ErrCodeNoRepositories, fmt.Sprintf("no git repositories found under: %s", path)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PkgError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PkgError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *PkgError {
	pkgErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		pkgErr = pkgErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return pkgErr
}

// FetchFailed creates a git fetch failure error
func FetchFailed(repo string, err error) *PkgError {
	return Wrap(err, ErrCodeGitFetchFailed, fmt.Sprintf("git fetch failed for %s", repo)).
		WithDetail("repository", repo)
}
