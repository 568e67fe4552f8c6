// Package root provides the root command for the mtx CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/cmd/completion"
	"github.com/open-cli-collective/mtext-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/mtext-cli/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/mtext-cli/internal/cmd/init"
	"github.com/open-cli-collective/mtext-cli/internal/cmd/preview"
	"github.com/open-cli-collective/mtext-cli/internal/cmd/tree"
	"github.com/open-cli-collective/mtext-cli/internal/log"
	"github.com/open-cli-collective/mtext-cli/internal/version"
	"github.com/open-cli-collective/mtext-cli/internal/view"
)

// NewCmdRoot creates the root command for mtx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mtx",
		Short: "Convert editor HTML and markdown to MText",
		Long: `mtx converts rich text written in an HTML editor into MText, the
control-code format used by CAD multi-line text entities.

It understands the formatting an editor toolbar produces (bold, italic,
underline, colors, fonts, letter spacing, paragraph alignment and indents,
ordered and unordered lists) and reports anything it has to degrade.

Get started by running: mtx init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := view.ValidateFormat(output); err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			return log.Set(debug)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mtx/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging on stderr")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(tree.NewCmdTree())
	cmd.AddCommand(preview.NewCmdPreview())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
