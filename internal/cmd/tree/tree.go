// Package tree provides the tree command for mtx.
package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mtext-cli/internal/config"
	"github.com/open-cli-collective/mtext-cli/internal/input"
	"github.com/open-cli-collective/mtext-cli/internal/view"
	"github.com/open-cli-collective/mtext-cli/pkg/mtext"
)

type treeOptions struct {
	file     string
	markdown bool

	configPath string
	output     string
	noColor    bool

	stdin io.Reader
	out   io.Writer
}

// NewCmdTree creates the tree command.
func NewCmdTree() *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Show the document tree parsed from HTML",
		Long: `Parse HTML (or markdown) and print the intermediate document tree
that the MText serializer consumes. Use -o json for a machine-readable
forest that can be fed back into other tools.`,
		Example: `  # Outline view
  mtx tree note.html

  # JSON document tree
  echo '<ol><li>a</li></ol>' | mtx tree -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runTree(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.markdown, "markdown", "m", false, "Treat input as markdown")

	return cmd
}

func runTree(opts *treeOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	cfg, err := config.LoadValidated(opts.configPath)
	if err != nil {
		return err
	}

	result, err := input.Parse(input.Source{File: opts.file, Stdin: opts.stdin}, opts.markdown, cfg.ParseOptions())
	if err != nil {
		return err
	}

	format := opts.output
	if format == "" {
		format = cfg.OutputFormat
	}
	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.out != nil {
		renderer.SetWriter(opts.out)
	}

	if renderer.Format() == view.FormatJSON {
		nodes := result.Nodes
		if nodes == nil {
			nodes = []*mtext.Node{}
		}
		return renderer.RenderJSON(nodes)
	}

	var rows []view.OutlineRow
	for _, n := range result.Nodes {
		rows = appendRows(rows, n, 0)
	}
	renderer.RenderOutline(rows)
	renderer.RenderWarnings(result.Warnings)
	return nil
}

// appendRows flattens the subtree rooted at n into outline rows.
func appendRows(rows []view.OutlineRow, n *mtext.Node, depth int) []view.OutlineRow {
	if n == nil {
		return rows
	}

	row := view.OutlineRow{Depth: depth, Node: string(n.Type), Text: n.Text}
	if n.IsFraction() {
		row.Node = "fraction"
		row.Text = n.Stack.Numerator + string(n.Stack.Divider) + n.Stack.Denominator
	}

	row.Props = describeFormat(n.Format)
	if n.Paragraph != nil {
		row.Props = append(describeParagraph(n.Paragraph), row.Props...)
	}

	rows = append(rows, row)
	for _, child := range n.Children {
		rows = appendRows(rows, child, depth+1)
	}
	return rows
}

func describeFormat(f mtext.Format) []string {
	var props []string
	flags := []struct {
		on   bool
		name string
	}{
		{f.Bold, "bold"},
		{f.Italic, "italic"},
		{f.Underline, "underline"},
		{f.Overline, "overline"},
		{f.Strikethrough, "strike"},
		{f.Subscript, "sub"},
		{f.Superscript, "sup"},
	}
	for _, fl := range flags {
		if fl.on {
			props = append(props, fl.name)
		}
	}

	if f.Color != 0 {
		props = append(props, fmt.Sprintf("aci=%d", f.Color))
	}
	if f.RGBColor != nil {
		props = append(props, fmt.Sprintf("rgb=#%06x", *f.RGBColor))
	}
	if f.Font != "" {
		props = append(props, "font="+strconv.Quote(f.Font))
	}
	if f.FontBold != nil {
		props = append(props, "fontBold="+strconv.FormatBool(*f.FontBold))
	}
	if f.FontItalic != nil {
		props = append(props, "fontItalic="+strconv.FormatBool(*f.FontItalic))
	}

	numbers := []struct {
		v    *float64
		name string
	}{
		{f.Height, "height"},
		{f.Width, "width"},
		{f.Tracking, "tracking"},
		{f.Slant, "slant"},
	}
	for _, num := range numbers {
		if num.v != nil {
			props = append(props, num.name+"="+strconv.FormatFloat(*num.v, 'f', -1, 64))
		}
	}
	return props
}

func describeParagraph(p *mtext.ParagraphProps) []string {
	var props []string
	if p.Align != "" {
		props = append(props, "align="+string(p.Align))
	}
	lengths := []struct {
		v    *float64
		name string
	}{
		{p.Indent, "indent"},
		{p.Left, "left"},
		{p.Right, "right"},
	}
	for _, l := range lengths {
		if l.v != nil {
			props = append(props, l.name+"="+strconv.FormatFloat(*l.v, 'f', -1, 64))
		}
	}
	if len(p.Tabs) > 0 {
		tabs := make([]string, len(p.Tabs))
		for i, t := range p.Tabs {
			tabs[i] = strconv.FormatFloat(t, 'f', -1, 64)
		}
		props = append(props, "tabs="+strings.Join(tabs, ","))
	}
	return props
}
