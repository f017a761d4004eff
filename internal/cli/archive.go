package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackbound/gitvault/internal/archive"
	"github.com/stackbound/gitvault/internal/config"
	"github.com/stackbound/gitvault/internal/errors"
	"github.com/stackbound/gitvault/internal/git"
	"github.com/stackbound/gitvault/internal/gpg"
	"github.com/stackbound/gitvault/internal/ui"
)

// options is the merged result of command-line flags and the config file.
// Flags win over config values.
type options struct {
	projects       []string
	encrypt        bool
	recipients     []string
	keepArchive    bool
	outputDir      string
	includeIgnored bool
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := gatherOptions(cmd, args, cfg)

	if err := run(cmd.Context(), cfg, opts); err != nil {
		// Argument and project validation errors get the usage reminder;
		// pipeline failures do not.
		if stderrors.Is(err, errors.ErrProjectNotFound) ||
			stderrors.Is(err, errors.ErrNotARepository) ||
			stderrors.Is(err, errors.ErrMissingRecipient) {
			cmd.SilenceUsage = false
		}
		return err
	}
	return nil
}

func gatherOptions(cmd *cobra.Command, args []string, cfg *config.Config) options {
	opts := options{
		projects:    args,
		outputDir:   cfg.OutputDir,
		keepArchive: cfg.KeepArchive,
		recipients:  cfg.Recipients,
	}

	opts.encrypt, _ = cmd.Flags().GetBool("encrypt")
	opts.includeIgnored, _ = cmd.Flags().GetBool("include-ignored")

	if keys, _ := cmd.Flags().GetStringArray("encryption-key"); len(keys) > 0 {
		opts.recipients = keys
	}
	if keep, _ := cmd.Flags().GetBool("keep-archive"); keep {
		opts.keepArchive = true
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		opts.outputDir = dir
	}

	return opts
}

// run drives the pipeline: validate everything, build all archives, then
// encrypt when requested. The first fatal error aborts the remainder.
func run(ctx context.Context, cfg *config.Config, opts options) error {
	if opts.encrypt && len(opts.recipients) == 0 {
		return fmt.Errorf("%w: pass at least one --encryption-key", errors.ErrMissingRecipient)
	}

	projects, err := archive.ResolveProjects(opts.projects)
	if err != nil {
		return err
	}

	// Every project must pass the repository check before any staging begins.
	gitClient := git.NewClient(cfg.GitBinary, commander)
	for _, project := range projects {
		if !gitClient.IsRepository(project.AbsolutePath) {
			return fmt.Errorf("%w: %s", errors.ErrNotARepository, project.SourcePath)
		}
	}

	staging, err := archive.NewStaging()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := staging.Close(); closeErr != nil {
			logger.Warn("removing staging directory", "error", closeErr)
		}
	}()

	builder := &archive.Builder{
		Git:              gitClient,
		Runner:           commander,
		SevenZip:         cfg.SevenZipBinary,
		CompressionLevel: cfg.CompressionLevel,
		IncludeIgnored:   opts.includeIgnored,
		OutputDir:        opts.outputDir,
		Logger:           logger,
	}

	for _, project := range projects {
		title := fmt.Sprintf("Archiving %s...", project.BaseName)
		if err := ui.WithSpinner(title, func() error {
			return builder.Build(ctx, staging, project)
		}); err != nil {
			return err
		}
	}

	outputs := make([]string, 0, len(projects))
	for _, project := range projects {
		outputs = append(outputs, project.OutputPath)
	}

	if opts.encrypt {
		encryptor := &gpg.Encryptor{
			Bin:          cfg.GPGBinary,
			Runner:       commander,
			KeepArchives: opts.keepArchive,
			Logger:       logger,
		}
		encrypted, err := encryptor.EncryptAll(ctx, outputs, opts.recipients)
		if err != nil {
			return err
		}
		if opts.keepArchive {
			outputs = append(outputs, encrypted...)
		} else {
			outputs = encrypted
		}
	}

	fmt.Fprintln(os.Stdout, ui.RenderSummary(outputs))
	return nil
}
