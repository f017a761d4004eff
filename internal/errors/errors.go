// Package errors defines the error taxonomy shared by the archive pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pipeline failures. Stages wrap these with fmt.Errorf
// and %w so callers can classify errors with errors.Is.
var (
	// ErrProjectNotFound indicates a supplied project path is not a directory.
	ErrProjectNotFound = errors.New("project directory not found")

	// ErrNotARepository indicates a project directory has no git metadata.
	ErrNotARepository = errors.New("project does not have a git repository")

	// ErrMissingRecipient indicates encryption was requested without any
	// recipient key names.
	ErrMissingRecipient = errors.New("encryption requested without recipient keys")

	// ErrArchiveCreation indicates staging, compression, or the final move
	// failed for a project.
	ErrArchiveCreation = errors.New("archive creation failed")

	// ErrEncryption indicates the encryption command failed.
	ErrEncryption = errors.New("encryption failed")
)

// CommandError captures a failed external command invocation along with
// whatever the command printed before exiting.
type CommandError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

// NewCommandError builds a CommandError from a command's raw output and error.
func NewCommandError(tool string, args []string, output []byte, err error) *CommandError {
	return &CommandError{
		Tool:   tool,
		Args:   args,
		Output: strings.TrimSpace(string(output)),
		Err:    err,
	}
}

// Error implements the error interface with a detailed message.
func (e *CommandError) Error() string {
	operation := e.Tool
	if len(e.Args) > 0 {
		operation = fmt.Sprintf("%s %s", e.Tool, e.Args[0])
	}
	msg := fmt.Sprintf("%s failed", operation)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.Output)
	}
	return msg
}

// Unwrap returns the underlying execution error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
