package archive

import (
	"fmt"
	"os"
)

// Staging owns the per-run temporary directory in which working trees are
// staged and archives are written before moving to the output directory.
// It is created once per run and must be closed on every exit path.
type Staging struct {
	Root string
}

// NewStaging creates the run's staging directory.
func NewStaging() (*Staging, error) {
	root, err := os.MkdirTemp("", "gitvault-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	return &Staging{Root: root}, nil
}

// Close removes the staging directory and anything still inside it.
func (s *Staging) Close() error {
	return os.RemoveAll(s.Root)
}
