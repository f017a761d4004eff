package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stackbound/gitvault/internal/exec"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

// commander runs every external tool the pipeline shells out to.
// Tests substitute a MockCommander.
var commander exec.Commander = &exec.RealCommander{}

var rootCmd = &cobra.Command{
	Use:   "gitvault [flags] PROJECT [PROJECT...]",
	Short: "Archive git projects into compressed, optionally encrypted backups",
	Long: `Gitvault creates a backup of each given git project directory by staging
its working tree, compressing the staged tree with 7z into an archive
named after the project and its current revision, and optionally
encrypting the result with GPG for one or more recipients.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	RunE: runArchive,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	rootCmd.Flags().BoolP("encrypt", "e", false, "Encrypt the archives with GPG")
	rootCmd.Flags().StringArray("encryption-key", nil, "Recipient key name to encrypt for (repeatable)")
	rootCmd.Flags().BoolP("keep-archive", "k", false, "Keep the unencrypted archive after encryption")
	rootCmd.Flags().StringP("output-dir", "o", "", "Directory in which to place archive files (defaults to the current directory)")
	rootCmd.Flags().BoolP("include-ignored", "i", false, "Include files ignored by .gitignore in the archive")
}
