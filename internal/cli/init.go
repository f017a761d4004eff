package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/stackbound/gitvault/internal/config"
	"github.com/stackbound/gitvault/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the gitvault config file interactively",
	Long: `Prompts for archive defaults and writes them to the global config file.
Existing values are offered as defaults, so running init again only
changes what you edit.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		outputDir := cfg.OutputDir
		level := cfg.CompressionLevel
		recipients := strings.Join(cfg.Recipients, ", ")

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Default output directory").
					Description("Where finished archives are placed").
					Value(&outputDir),
				huh.NewSelect[int]().
					Title("Compression level").
					Options(
						huh.NewOption("Fastest (1)", 1),
						huh.NewOption("Normal (5)", 5),
						huh.NewOption("Maximum (9)", 9),
					).
					Value(&level),
				huh.NewInput().
					Title("Default recipient keys").
					Description("Comma-separated GPG key names, leave empty for none").
					Value(&recipients),
			),
		).WithTheme(huh.ThemeCatppuccin())

		if err := form.Run(); err != nil {
			return ui.NormalizeAbort(err)
		}

		cfg.OutputDir = outputDir
		cfg.CompressionLevel = level
		cfg.Recipients = splitRecipients(recipients)

		path, err := config.Save(cfg)
		if err != nil {
			return err
		}
		logger.Info("wrote config", "path", path)
		return nil
	},
}

func splitRecipients(value string) []string {
	var recipients []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			recipients = append(recipients, part)
		}
	}
	return recipients
}

func init() {
	rootCmd.AddCommand(initCmd)
}
