package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/view"
)

type showOptions struct {
	configPath string
	output     string
	noColor    bool
	out        io.Writer
}

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective mtx configuration and where each value comes from.`,
		Example: `  # Show current config
  mtx config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runShow(opts)
		},
	}

	return cmd
}

func runShow(opts *showOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	configPath := config.ResolvePath(opts.configPath)

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source := func(fileSet bool, envVar string) string {
		if envVar != "" && os.Getenv(envVar) != "" {
			return envVar
		}
		if fileSet {
			return "config"
		}
		return "default"
	}

	settings := []view.Setting{
		{Name: "Font", Value: cfg.DefaultFont, Source: source(fileCfg.DefaultFont != "", "MTX_FONT")},
		{Name: "Height", Value: formatFloat(cfg.Height), Source: source(fileCfg.Height != 0, envIfNumber("MTX_HEIGHT"))},
		{Name: "Wrap Width", Value: formatFloat(cfg.WrapWidth), Source: source(fileCfg.WrapWidth != 0, envIfNumber("MTX_WRAP_WIDTH"))},
		{Name: "Tracking", Value: formatFloat(*cfg.MarkerTracking), Source: source(fileCfg.MarkerTracking != nil, "")},
		{Name: "Width", Value: formatFloat(*cfg.MarkerWidth), Source: source(fileCfg.MarkerWidth != nil, "")},
		{Name: "Output", Value: cfg.OutputFormat, Source: source(fileCfg.OutputFormat != "", "MTX_OUTPUT")},
	}

	return renderer.RenderSettings(configPath, fileErr == nil, settings)
}

// envIfNumber returns name when the variable holds a number LoadFromEnv would apply.
func envIfNumber(name string) string {
	if _, err := strconv.ParseFloat(os.Getenv(name), 64); err != nil {
		return ""
	}
	return name
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
