// Package archive stages project working trees and compresses them into
// versioned archive files.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/stackbound/gitvault/internal/errors"
	"github.com/stackbound/gitvault/internal/exec"
	"github.com/stackbound/gitvault/internal/git"
)

// Extension is the suffix of every archive the builder produces.
const Extension = ".7z"

// DefaultCompressionLevel is the 7z -mx value used when none is configured.
const DefaultCompressionLevel = 9

// Builder archives projects one at a time, in input order.
type Builder struct {
	Git              *git.Client
	Runner           exec.Commander
	SevenZip         string
	CompressionLevel int
	IncludeIgnored   bool
	OutputDir        string
	Logger           *log.Logger
}

// BuildAll archives every project, stopping at the first failure. Archives
// already moved to the output directory stay in place.
func (b *Builder) BuildAll(ctx context.Context, staging *Staging, projects []*Project) error {
	for _, project := range projects {
		if err := b.Build(ctx, staging, project); err != nil {
			return err
		}
	}
	return nil
}

// Build stages one project, compresses the staged tree into an archive named
// after the project and its version label, and moves the archive into the
// output directory. The staged tree is removed whether or not the build
// succeeds.
func (b *Builder) Build(ctx context.Context, staging *Staging, project *Project) error {
	project.StagingPath = filepath.Join(staging.Root, project.BaseName)
	defer os.RemoveAll(project.StagingPath)

	if b.IncludeIgnored {
		b.logger().Debug("staging verbatim copy", "project", project.BaseName)
		if err := copyTree(project.AbsolutePath, project.StagingPath); err != nil {
			return fmt.Errorf("%w: staging %s: %w", errors.ErrArchiveCreation, project.SourcePath, err)
		}
	} else {
		b.logger().Debug("staging clean clone", "project", project.BaseName)
		if err := b.Git.Clone(ctx, project.AbsolutePath, project.StagingPath); err != nil {
			return fmt.Errorf("%w: staging %s: %w", errors.ErrArchiveCreation, project.SourcePath, err)
		}
	}

	revision, err := b.Git.HeadRevision(ctx, project.AbsolutePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errors.ErrArchiveCreation, project.SourcePath, err)
	}
	tag := b.Git.ExactTag(ctx, project.AbsolutePath)
	label := git.VersionLabel(tag, revision)
	b.logger().Debug("resolved version label", "project", project.BaseName, "revision", revision, "tag", tag, "label", label)

	project.ArchivePath = filepath.Join(staging.Root, fmt.Sprintf("%s.%s%s", project.BaseName, label, Extension))
	if err := b.compress(ctx, project); err != nil {
		return err
	}

	project.OutputPath = filepath.Join(b.OutputDir, filepath.Base(project.ArchivePath))
	if err := moveFile(project.ArchivePath, project.OutputPath); err != nil {
		return fmt.Errorf("%w: moving archive for %s: %w", errors.ErrArchiveCreation, project.SourcePath, err)
	}

	b.logger().Info("archived project", "project", project.BaseName, "output", project.OutputPath)
	return nil
}

func (b *Builder) compress(ctx context.Context, project *Project) error {
	level := b.CompressionLevel
	if level <= 0 {
		level = DefaultCompressionLevel
	}

	args := []string{"a", "-t7z", "-m0=lzma", fmt.Sprintf("-mx=%d", level), project.ArchivePath, project.StagingPath}
	output, err := b.Runner.Run(ctx, "", b.SevenZip, args...)
	if err != nil {
		return fmt.Errorf("%w: compressing %s: %w", errors.ErrArchiveCreation,
			project.SourcePath, errors.NewCommandError(b.SevenZip, args, output, err))
	}
	return nil
}

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}
