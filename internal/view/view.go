// Package view renders mtx command output: converted MText, document tree
// outlines, configuration settings and status lines.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Format is a value of the --output flag.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// maxOutlineText is the widest quoted text shown in an outline row.
const maxOutlineText = 40

// ValidFormats returns the accepted values of the --output flag.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an --output value. An empty value selects the default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer writes command output in one format.
type Renderer struct {
	format Format
	out    io.Writer
}

// NewRenderer creates a renderer writing to stdout. An empty format selects table.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{format: format, out: os.Stdout}
}

// SetWriter redirects the output.
func (r *Renderer) SetWriter(w io.Writer) {
	r.out = w
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderResult writes a conversion result: the text itself, or payload as
// JSON when the format is json.
func (r *Renderer) RenderResult(text string, payload interface{}) error {
	if r.format == FormatJSON {
		return r.RenderJSON(payload)
	}
	_, err := fmt.Fprintln(r.out, text)
	return err
}

// RenderJSON writes v as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// RenderText writes a line of text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.out, text)
}

// OutlineRow is one node of a document tree outline.
type OutlineRow struct {
	Depth int
	Node  string
	Text  string
	Props []string
}

// RenderOutline writes document tree rows, children indented under their
// parent. Text is quoted and shortened. Plain output is tab separated and
// has no header.
func (r *Renderer) RenderOutline(rows []OutlineRow) {
	sep := "  "
	if r.format == FormatPlain {
		sep = "\t"
	} else {
		_, _ = color.New(color.Bold).Fprintln(r.out, strings.Join([]string{"NODE", "TEXT", "PROPERTIES"}, sep))
	}

	for _, row := range rows {
		fmt.Fprintln(r.out, strings.Join([]string{
			strings.Repeat("  ", row.Depth) + row.Node,
			shorten(strconv.Quote(row.Text), maxOutlineText),
			strings.Join(row.Props, " "),
		}, sep))
	}
}

// RenderWarnings writes one line per parse warning. JSON output carries
// warnings in its payload, so nothing is written for it.
func (r *Renderer) RenderWarnings(warnings []string) {
	if r.format == FormatJSON {
		return
	}
	for _, w := range warnings {
		r.status(color.FgYellow, "!", w)
	}
}

// RenderSample writes a labelled MText string.
func (r *Renderer) RenderSample(label, mtext string) {
	_, _ = color.New(color.Bold).Fprintf(r.out, "%s: ", label)
	fmt.Fprintln(r.out, mtext)
}

// Setting is one effective configuration value and where it came from.
type Setting struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// RenderSettings writes the effective configuration read from path.
func (r *Renderer) RenderSettings(path string, exists bool, settings []Setting) error {
	if r.format == FormatJSON {
		return r.RenderJSON(struct {
			Path     string    `json:"path"`
			Exists   bool      `json:"exists"`
			Settings []Setting `json:"settings"`
		}{path, exists, settings})
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	for _, s := range settings {
		_, _ = bold.Fprintf(r.out, "%-12s", s.Name+":")
		if s.Value == "" {
			_, _ = dim.Fprintln(r.out, "-")
			continue
		}
		fmt.Fprint(r.out, s.Value)
		_, _ = dim.Fprintf(r.out, "  (source: %s)\n", s.Source)
	}

	fmt.Fprintln(r.out)
	_, _ = dim.Fprintf(r.out, "Config file: %s\n", path)
	if !exists {
		_, _ = dim.Fprintln(r.out, "(file not found)")
	}
	return nil
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.status(color.FgGreen, "✓", msg)
}

// Error writes an error line.
func (r *Renderer) Error(msg string) {
	r.status(color.FgRed, "✗", msg)
}

func (r *Renderer) status(attr color.Attribute, symbol, msg string) {
	_, _ = color.New(attr).Fprintln(r.out, symbol+" "+msg)
}

// shorten cuts s to maxLen runes, ending in "..." when it was cut.
func shorten(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
