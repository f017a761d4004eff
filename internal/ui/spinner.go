// Package ui renders progress and summaries and normalizes prompt aborts.
package ui

import (
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// WithSpinner runs fn behind an animated spinner when stderr is a terminal.
// In non-interactive contexts (pipes, CI, tests) fn runs directly so output
// stays clean and scriptable.
func WithSpinner(title string, fn func() error) error {
	if !term.IsTerminal(os.Stderr.Fd()) {
		return fn()
	}

	var err error
	if spinErr := spinner.New().Title(title).Action(func() { err = fn() }).Run(); spinErr != nil {
		return NormalizeAbort(spinErr)
	}
	return err
}
