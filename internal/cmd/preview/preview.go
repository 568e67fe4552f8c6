// Package preview provides the preview command for mtx.
package preview

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/input"
	"github.com/open-cli-collective/mtext-cli/internal/view"
	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

type previewOptions struct {
	file   string
	mtext  bool
	editor bool

	configPath string
	output     string
	noColor    bool

	stdin io.Reader
	out   io.Writer
}

// previewResult is the JSON shape of a preview.
type previewResult struct {
	Markdown string   `json:"markdown"`
	MText    string   `json:"mtext,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview editor HTML as markdown",
		Long: `Render editor HTML as markdown for a quick plain-text check of
what a note contains, optionally next to the MText it converts to.`,
		Example: `  # Preview a note
  mtx preview note.html

  # Show the MText as well
  mtx preview note.html --mtext`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runPreview(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.mtext, "mtext", false, "Also print the converted MText")
	cmd.Flags().BoolVar(&opts.editor, "editor", false, "Open editor for content when nothing is piped")

	return cmd
}

func runPreview(opts *previewOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadValidated(opts.configPath)
	if err != nil {
		return err
	}

	content, err := input.Read(input.Source{File: opts.file, Stdin: opts.stdin, Editor: opts.editor})
	if err != nil {
		return err
	}

	markdown, err := mtext.ToMarkdown(content)
	if err != nil {
		return fmt.Errorf("failed to convert to markdown: %w", err)
	}

	result := previewResult{Markdown: markdown}
	if opts.mtext {
		parsed := mtext.ParseWithOptions(content, cfg.ParseOptions())
		result.MText = cfg.Serializer().Serialize(parsed.Nodes)
		result.Warnings = parsed.Warnings
	}

	format := opts.output
	if format == "" {
		format = cfg.OutputFormat
	}
	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	if err := renderer.RenderResult(result.Markdown, result); err != nil {
		return err
	}
	if opts.mtext && renderer.Format() != view.FormatJSON {
		renderer.RenderText("")
		renderer.RenderSample("MText", result.MText)
		renderer.RenderWarnings(result.Warnings)
	}
	return nil
}
