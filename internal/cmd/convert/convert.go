// Package convert provides the convert command for mtx.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/input"
	"github.com/open-cli-collective/mtext-cli/internal/view"
)

type convertOptions struct {
	file      string
	markdown  bool
	editor    bool
	font      string
	height    float64
	wrapWidth float64
	strict    bool

	configPath string
	output     string
	noColor    bool

	stdin io.Reader
	out   io.Writer
}

// Result is the payload handed to the text renderer.
type Result struct {
	Text      string   `json:"text"`
	Height    float64  `json:"height"`
	WrapWidth float64  `json:"wrapWidth"`
	Warnings  []string `json:"warnings,omitempty"`
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert editor HTML or markdown to MText",
		Long: `Convert rich text produced by an HTML editor into an MText
control-code string for a CAD multi-line text entity.

Content can be provided via:
- a file argument
- standard input (pipe content)
- an interactive editor (with --editor)

Markup the converter does not understand is degraded to plain containers
and reported as a warning. Use --strict to fail instead.`,
		Example: `  # Convert a file
  mtx convert note.html

  # Convert from stdin
  echo '<p style="text-align:center"><b>Hi</b></p>' | mtx convert

  # Convert markdown and print the renderer payload
  mtx convert --markdown README.md -o json --height 3.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runConvert(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.markdown, "markdown", "m", false, "Treat input as markdown")
	cmd.Flags().BoolVar(&opts.editor, "editor", false, "Open editor for content when nothing is piped")
	cmd.Flags().StringVar(&opts.font, "font", "", "Fallback font family (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "Text height reported with -o json (default from config)")
	cmd.Flags().Float64Var(&opts.wrapWidth, "wrap-width", 0, "Wrap width reported with -o json (default from config)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when the markup produces warnings")

	return cmd
}

func runConvert(opts *convertOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadValidated(opts.configPath)
	if err != nil {
		return err
	}
	if opts.font != "" {
		cfg.DefaultFont = opts.font
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.wrapWidth > 0 {
		cfg.WrapWidth = opts.wrapWidth
	}

	result, err := input.Parse(input.Source{
		File:   opts.file,
		Stdin:  opts.stdin,
		Editor: opts.editor,
	}, opts.markdown, cfg.ParseOptions())
	if err != nil {
		return err
	}

	if opts.strict && len(result.Warnings) > 0 {
		return fmt.Errorf("markup produced %d warning(s): %s", len(result.Warnings), strings.Join(result.Warnings, "; "))
	}

	text := cfg.Serializer().Serialize(result.Nodes)

	format := opts.output
	if format == "" {
		format = cfg.OutputFormat
	}
	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	return renderer.RenderResult(text, Result{
		Text:      text,
		Height:    cfg.Height,
		WrapWidth: cfg.WrapWidth,
		Warnings:  result.Warnings,
	})
}
