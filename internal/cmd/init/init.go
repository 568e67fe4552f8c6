// Package init provides the init command for mtx.
package init

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/view"
	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

const sampleMarkup = `<p><b>Sample</b> <span class="mtext-tracking">text</span></p>`

type initOptions struct {
	font      string
	height    string
	wrapWidth string
	noInput   bool

	configPath string
	noColor    bool
	out        io.Writer
}

// answers holds the form values as typed by the user.
type answers struct {
	Font           string
	Height         string
	WrapWidth      string
	MarkerTracking string
	MarkerWidth    string
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mtx configuration",
		Long: `Initialize mtx with the defaults used when converting text.

This command will guide you through choosing the fallback font, the text
height and wrap width reported to the renderer, and the values applied for
the editor's tracking and width marker classes. The configuration will be
saved to ~/.config/mtx/config.yml.`,
		Example: `  # Interactive setup
  mtx init

  # Pre-populate the font
  mtx init --font Romans

  # Write defaults without prompting
  mtx init --no-input --height 3.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.font, "font", "", "Fallback font family (e.g., Arial)")
	cmd.Flags().StringVar(&opts.height, "height", "", "Text height")
	cmd.Flags().StringVar(&opts.wrapWidth, "wrap-width", "", "Wrap width (0 disables wrapping)")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "Skip prompts and save the given or default values")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := config.ResolvePath(opts.configPath)
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.noInput {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			renderer.RenderText("Initialization cancelled.")
			return nil
		}
	}

	defaults := &config.Config{}
	defaults.ApplyDefaults()

	a := answers{
		Font:           firstNonEmpty(opts.font, defaults.DefaultFont),
		Height:         firstNonEmpty(opts.height, formatFloat(defaults.Height)),
		WrapWidth:      firstNonEmpty(opts.wrapWidth, formatFloat(defaults.WrapWidth)),
		MarkerTracking: formatFloat(*defaults.MarkerTracking),
		MarkerWidth:    formatFloat(*defaults.MarkerWidth),
	}

	if !opts.noInput {
		if err := newForm(&a).Run(); err != nil {
			return err
		}
	}

	cfg, err := a.toConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	renderer.Success(fmt.Sprintf("Configuration saved to %s", configPath))
	renderer.RenderSample("Sample", sample(cfg))
	renderer.RenderText("\nYou're all set! Try running:")
	renderer.RenderText("  echo '<b>Hello</b>' | mtx convert")
	renderer.RenderText("  mtx tree note.html")

	return nil
}

func newForm(a *answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default font").
				Description("Font family used when the markup names none").
				Placeholder("Arial").
				Value(&a.Font).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("font is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Text height").
				Description("Nominal height handed to the text renderer").
				Value(&a.Height).
				Validate(validateNumber),

			huh.NewInput().
				Title("Wrap width").
				Description("Column width for wrapping, 0 for none").
				Value(&a.WrapWidth).
				Validate(validateNumber),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tracking marker value").
				Description("Tracking applied for the mtext-tracking class").
				Value(&a.MarkerTracking).
				Validate(validateNumber),

			huh.NewInput().
				Title("Width marker value").
				Description("Width factor applied for the mtext-width class").
				Value(&a.MarkerWidth).
				Validate(validateNumber),
		),
	)
}

// toConfig converts the typed answers into a configuration.
// A blank marker answer leaves the marker unset; "0" is kept as zero.
func (a answers) toConfig() (*config.Config, error) {
	cfg := &config.Config{DefaultFont: strings.TrimSpace(a.Font)}

	fields := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"height", a.Height, &cfg.Height},
		{"wrap width", a.WrapWidth, &cfg.WrapWidth},
	}
	for _, f := range fields {
		v, err := parseNumber(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	markers := []struct {
		name  string
		value string
		dst   **float64
	}{
		{"tracking marker", a.MarkerTracking, &cfg.MarkerTracking},
		{"width marker", a.MarkerWidth, &cfg.MarkerWidth},
	}
	for _, m := range markers {
		if strings.TrimSpace(m.value) == "" {
			continue
		}
		v, err := parseNumber(m.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		*m.dst = mtext.Float(v)
	}
	return cfg, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q must not be negative", s)
	}
	return v, nil
}

func validateNumber(s string) error {
	_, err := parseNumber(s)
	return err
}

// sample converts a short snippet with the new configuration.
func sample(cfg *config.Config) string {
	preview := *cfg
	preview.ApplyDefaults()
	return preview.Serializer().Serialize(mtext.ParseWithOptions(sampleMarkup, preview.ParseOptions()).Nodes)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
