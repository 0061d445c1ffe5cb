package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsEmptyName(t *testing.T) {
	sb := NewSafeBuilder()
	_, err := sb.Build(context.Background(), "")
	assert.Error(t, err)
}

func TestExecHonorsCallerCancellation(t *testing.T) {
	sb := NewSafeBuilder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd, err := sb.Build(ctx, "sleep", "5")
	require.NoError(t, err)

	execCmd, release := cmd.WithTimeout(time.Minute).Exec()
	defer release()

	start := time.Now()
	assert.Error(t, execCmd.Run())
	assert.Less(t, time.Since(start), 2*time.Second,
		"a cancelled parent context must preempt the command timeout")
}

func TestWithTimeoutIsCapped(t *testing.T) {
	sb := NewSafeBuilder()
	cmd, err := sb.Build(context.Background(), "true")
	require.NoError(t, err)

	cmd = cmd.WithTimeout(2 * MaxTimeout)
	assert.Equal(t, MaxTimeout, cmd.timeout)
}

func TestValidators(t *testing.T) {
	sb := NewSafeBuilder()

	assert.NoError(t, sb.Validate("repoName", "mesa-git"))
	assert.Error(t, sb.Validate("repoName", "bad;name"))
	assert.Error(t, sb.Validate("repoName", ".hidden"))

	assert.NoError(t, sb.Validate("fileName", "/tmp/pkgs/mesa-git"))
	assert.Error(t, sb.Validate("fileName", "../escape"))
	assert.Error(t, sb.Validate("fileName", "/tmp/$(rm)"))

	assert.NoError(t, sb.Validate("gitRef", "origin/main"))
	assert.Error(t, sb.Validate("gitRef", "main; rm -rf /"))

	assert.Error(t, sb.Validate("unknownType", "x"))
}
