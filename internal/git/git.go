// Package git wraps the git executable operations the archiver depends on.
// Compression and encryption tools get the same treatment in their own
// packages; git is never reimplemented here.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackbound/gitvault/internal/errors"
	"github.com/stackbound/gitvault/internal/exec"
)

// ShortRevisionLength is the number of revision characters embedded in
// archive filenames.
const ShortRevisionLength = 8

// Client invokes a git binary through a Commander.
type Client struct {
	bin    string
	runner exec.Commander
}

// NewClient creates a Client for the given git binary. An empty bin falls
// back to "git" on PATH; a nil runner falls back to the real commander.
func NewClient(bin string, runner exec.Commander) *Client {
	if bin == "" {
		bin = "git"
	}
	if runner == nil {
		runner = &exec.RealCommander{}
	}
	return &Client{bin: bin, runner: runner}
}

// IsRepository reports whether path contains a git metadata directory.
func (c *Client) IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// Clone clones the repository at src into dst. A clone stages the committed
// tree without files ignored by .gitignore.
func (c *Client) Clone(ctx context.Context, src, dst string) error {
	args := []string{"clone", src, dst}
	output, err := c.runner.Run(ctx, "", c.bin, args...)
	if err != nil {
		return errors.NewCommandError(c.bin, args, output, err)
	}
	return nil
}

// HeadRevision returns the full hash of HEAD in dir.
func (c *Client) HeadRevision(ctx context.Context, dir string) (string, error) {
	args := []string{"rev-parse", "HEAD"}
	output, err := c.runner.Output(ctx, dir, c.bin, args...)
	if err != nil {
		return "", errors.NewCommandError(c.bin, args, output, err)
	}
	revision := strings.TrimSpace(string(output))
	if revision == "" {
		return "", fmt.Errorf("empty revision for %s", dir)
	}
	return revision, nil
}

// ExactTag returns the tag pointing at HEAD in dir, or "" when HEAD is not
// exactly tagged. A nonzero exit from git describe means no tag, not an error.
func (c *Client) ExactTag(ctx context.Context, dir string) string {
	output, err := c.runner.Output(ctx, dir, c.bin, "describe", "--exact-match", "--abbrev=0")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// VersionLabel derives the filename label from a tag and revision:
// "<tag>.<rev8>" when tagged, "<rev8>" otherwise.
func VersionLabel(tag, revision string) string {
	short := revision
	if len(short) > ShortRevisionLength {
		short = short[:ShortRevisionLength]
	}
	if tag == "" {
		return short
	}
	return fmt.Sprintf("%s.%s", tag, short)
}
