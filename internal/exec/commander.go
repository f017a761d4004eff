// Package exec provides interfaces and implementations for external command
// execution. The archive pipeline never touches os/exec directly; every git,
// 7z, and gpg invocation goes through a Commander so tests can substitute a
// mock.
package exec

import (
	"context"
	"os/exec"
)

// Commander defines the interface for executing external commands.
type Commander interface {
	// Run executes a command in the specified directory and returns the
	// combined stdout and stderr output, plus any execution error.
	Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error)

	// Output executes a command in the specified directory and returns its
	// stdout only. Use this for commands whose stdout is parsed and whose
	// stderr must not pollute the parsed value.
	Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error)
}

// RealCommander executes commands using the real operating system.
// This is the production implementation.
type RealCommander struct{}

// Run executes the command using exec.CommandContext and returns the
// combined output.
func (c *RealCommander) Run(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Output executes the command using exec.CommandContext and returns stdout.
func (c *RealCommander) Output(ctx context.Context, dir string, command string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	return cmd.Output()
}
