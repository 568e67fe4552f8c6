package mtext

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker classes the editor toolbar sets when a tracking or width button is
// active without an explicit inline value.
const (
	TrackingMarkerClass = "mtext-tracking"
	WidthMarkerClass    = "mtext-width"
)

// Default values applied for the marker classes.
const (
	DefaultMarkerTracking = 0.2
	DefaultMarkerWidth    = 0.8
)

// genericTags are elements without special handling that are still expected
// from the editor. Other tags are converted the same way but produce a warning.
var genericTags = map[string]bool{
	"a": true, "blockquote": true, "body": true, "code": true, "div": true,
	"font": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "label": true, "mark": true, "pre": true, "small": true, "span": true,
}

// blockTags are elements whose content forms its own block. Line breaks that
// only indent their markup are not content.
var blockTags = map[atom.Atom]bool{
	atom.Body: true, atom.Blockquote: true, atom.Div: true, atom.Li: true,
	atom.Ol: true, atom.Ul: true, atom.P: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// ParseOptions configures the HTML parser.
type ParseOptions struct {
	// MarkerTracking is the tracking applied for the tracking marker class.
	// Nil selects DefaultMarkerTracking; an explicit zero is kept.
	MarkerTracking *float64
	// MarkerWidth is the width factor applied for the width marker class.
	// Nil selects DefaultMarkerWidth.
	MarkerWidth *float64
	// Logger receives parse warnings. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.MarkerTracking == nil {
		o.MarkerTracking = Float(DefaultMarkerTracking)
	}
	if o.MarkerWidth == nil {
		o.MarkerWidth = Float(DefaultMarkerWidth)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ParseResult contains the parsed node forest and any warnings raised while
// degrading unsupported markup.
type ParseResult struct {
	Nodes    []*Node
	Warnings []string

	logger *zap.Logger
}

// AddWarning logs a warning and stores it in the result.
func (pr *ParseResult) AddWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	pr.Warnings = append(pr.Warnings, msg)
	if pr.logger != nil {
		pr.logger.Warn("html parse", zap.String("warning", msg))
	}
}

// Parse converts editor HTML into a document node forest.
// It never fails: unsupported markup degrades to generic containers.
func Parse(markup string) []*Node {
	return ParseWithOptions(markup, ParseOptions{}).Nodes
}

// ParseWithOptions converts editor HTML into a document node forest with
// configurable marker defaults and logging.
func ParseWithOptions(markup string, opts ParseOptions) *ParseResult {
	opts = opts.withDefaults()
	result := &ParseResult{logger: opts.Logger}

	if strings.TrimSpace(markup) == "" {
		return result
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	roots, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		result.AddWarning("failed to parse markup: %v", err)
		return result
	}

	p := &htmlParser{opts: opts, result: result}
	result.Nodes = p.convertSiblings(roots, nil, Format{})
	return result
}

// htmlParser holds state during element tree conversion.
type htmlParser struct {
	opts   ParseOptions
	result *ParseResult
}

// convertChildren converts all children of an element under the given context.
func (p *htmlParser) convertChildren(n *html.Node, ctx Format) []*Node {
	var children []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}
	return p.convertSiblings(children, n, ctx)
}

// convertSiblings converts the children of one parent. parent is nil for the
// fragment root. Whitespace that only lays out the markup around block
// elements is dropped instead of becoming text.
func (p *htmlParser) convertSiblings(siblings []*html.Node, parent *html.Node, ctx Format) []*Node {
	container := parent == nil || blockTags[parent.DataAtom]
	inList := parent != nil && (parent.DataAtom == atom.Ol || parent.DataAtom == atom.Ul)

	var nodes []*Node
	for i, n := range siblings {
		if n.Type != html.TextNode {
			nodes = append(nodes, p.convertNode(n, ctx)...)
			continue
		}

		leading := (container && i == 0) || (i > 0 && isBlock(siblings[i-1]))
		trailing := (container && i == len(siblings)-1) || (i < len(siblings)-1 && isBlock(siblings[i+1]))

		text := n.Data
		if strings.TrimSpace(text) == "" && (inList || leading || trailing) {
			continue
		}
		text = trimLayoutSpace(text, leading, trailing)
		nodes = append(nodes, NewText(strings.ReplaceAll(text, "\u00a0", " "), ctx))
	}
	return nodes
}

// convertNode converts a single non-text HTML node. It returns nil for nodes
// that do not contribute content, such as comments.
func (p *htmlParser) convertNode(n *html.Node, ctx Format) []*Node {
	if n.Type != html.ElementNode {
		return nil
	}
	return []*Node{p.convertElement(n, ctx)}
}

// isBlock reports whether n is an element that starts its own block.
func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && (blockTags[n.DataAtom] || n.DataAtom == atom.Pre)
}

// trimLayoutSpace removes a leading or trailing whitespace run from text when
// the run contains a line break.
func trimLayoutSpace(text string, leading, trailing bool) string {
	if leading {
		rest := strings.TrimLeft(text, " \t\r\n")
		if strings.ContainsAny(text[:len(text)-len(rest)], "\r\n") {
			text = rest
		}
	}
	if trailing {
		rest := strings.TrimRight(text, " \t\r\n")
		if strings.ContainsAny(text[len(rest):], "\r\n") {
			text = rest
		}
	}
	return text
}

func (p *htmlParser) convertElement(n *html.Node, ctx Format) *Node {
	tag := strings.ToLower(n.Data)

	switch tag {
	case "br":
		return &Node{Type: NodeBreak}
	case "ol", "ul":
		return &Node{Type: NodeType(tag), Children: p.convertChildren(n, ctx)}
	case "li":
		return &Node{Type: NodeListItem, Children: p.convertChildren(n, ctx)}
	}

	rawStyle := attr(n, "style")
	style := parseStyle(rawStyle)
	delta := p.formatDelta(n, tag, style)
	children := p.convertChildren(n, ctx.Merge(delta))

	if tag == "p" {
		return &Node{
			Type:      NodeParagraph,
			Children:  children,
			Format:    delta,
			Paragraph: p.paragraphProps(n, style, rawStyle),
		}
	}

	if !genericTags[tag] && !isFormattingTag(tag) {
		p.result.AddWarning("unknown element: <%s>", tag)
	}
	return &Node{Type: NodeType(tag), Children: children, Format: delta}
}

// isFormattingTag reports whether tag contributes character formatting.
func isFormattingTag(tag string) bool {
	switch tag {
	case "b", "strong", "i", "em", "u", "s", "strike", "del", "sub", "sup":
		return true
	}
	return false
}

// formatDelta extracts the formatting an element contributes on its own.
func (p *htmlParser) formatDelta(n *html.Node, tag string, style map[string]string) Format {
	var f Format

	decoration := strings.ToLower(style["text-decoration"] + " " + style["text-decoration-line"])

	switch tag {
	case "b", "strong":
		f.Bold = true
	case "i", "em":
		f.Italic = true
	case "u":
		f.Underline = true
	case "s", "strike", "del":
		f.Strikethrough = true
	case "sub":
		f.Subscript = true
	case "sup":
		f.Superscript = true
	}

	if strings.Contains(decoration, "underline") {
		f.Underline = true
	}
	if strings.Contains(decoration, "overline") {
		f.Overline = true
	}
	if strings.Contains(decoration, "line-through") {
		f.Strikethrough = true
	}

	if weight, ok := style["font-weight"]; ok && isBoldWeight(weight) {
		f.Bold = true
	}
	if fontStyle, ok := style["font-style"]; ok && (fontStyle == "italic" || fontStyle == "oblique") {
		f.Italic = true
	}

	if v, ok := style["color"]; ok {
		if rgb, ok := parseColor(v); ok {
			f.RGBColor = Int(rgb)
		} else {
			p.result.AddWarning("unsupported color %q on <%s>", v, tag)
		}
	}

	if v := attr(n, "data-aci"); v != "" {
		if aci, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && aci >= 1 && aci <= 255 {
			f.Color = aci
		} else {
			p.result.AddWarning("invalid color index %q on <%s>", v, tag)
		}
	}

	if v, ok := style["font-family"]; ok {
		f.Font = parseFontFamily(v)
	}

	if v, ok := style["font-size"]; ok {
		if h, ok := convertUnit(v); ok {
			f.Height = Float(h)
		} else {
			p.result.AddWarning("unsupported font-size %q on <%s>", v, tag)
		}
	}

	classes := attr(n, "class")

	if v, ok := style["letter-spacing"]; ok {
		if t, ok := convertUnit(v); ok {
			f.Tracking = Float(t)
		} else {
			p.result.AddWarning("unsupported letter-spacing %q on <%s>", v, tag)
		}
	} else if hasClass(classes, TrackingMarkerClass) {
		f.Tracking = Float(*p.opts.MarkerTracking)
	}

	transform := style["transform"]
	if scaleXPattern.MatchString(transform) {
		if w, ok := parseScaleX(transform); ok {
			f.Width = Float(w)
		} else {
			p.result.AddWarning("unsupported transform %q on <%s>", transform, tag)
		}
	} else if hasClass(classes, WidthMarkerClass) {
		f.Width = Float(*p.opts.MarkerWidth)
	}
	if s, ok := parseSkewX(transform); ok {
		f.Slant = Float(s)
	}

	return f
}

// isBoldWeight reports whether a CSS font-weight value renders bold.
func isBoldWeight(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// paragraphProps resolves paragraph layout. Sources are checked in increasing
// precedence: the align attribute, the parsed style map, then the raw style
// string; each later match overwrites.
func (p *htmlParser) paragraphProps(n *html.Node, style map[string]string, rawStyle string) *ParagraphProps {
	props := &ParagraphProps{}

	for _, v := range []string{attr(n, "align"), style["text-align"], lastDeclaration(rawStyle, "text-align")} {
		if a, ok := parseAlignment(v); ok {
			props.Align = a
		}
	}

	props.Indent = p.resolveLength(style, rawStyle, "text-indent")
	props.Left = p.resolveLength(style, rawStyle, "margin-left")
	props.Right = p.resolveLength(style, rawStyle, "margin-right")

	if v := attr(n, "data-tabs"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if tab, ok := convertUnit(part); ok {
				props.Tabs = append(props.Tabs, tab)
			} else {
				p.result.AddWarning("invalid tab stop %q", part)
			}
		}
	}

	return props
}

// resolveLength returns the unit-converted value of a length property, the
// raw style string taking precedence over the parsed map.
func (p *htmlParser) resolveLength(style map[string]string, rawStyle, name string) *float64 {
	var (
		out     *float64
		invalid string
	)
	for _, v := range []string{style[name], lastDeclaration(rawStyle, name)} {
		if v == "" {
			continue
		}
		if n, ok := convertUnit(v); ok {
			out = Float(n)
		} else {
			invalid = v
		}
	}
	if out == nil && invalid != "" {
		p.result.AddWarning("unsupported %s %q", name, invalid)
	}
	return out
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
