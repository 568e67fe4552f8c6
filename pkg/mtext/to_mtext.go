// to_mtext.go renders a document node forest as an MText control-code string.
package mtext

import (
	"strconv"
	"strings"
)

// DefaultFontFamily is used for font commands when bold or italic is set
// without a family.
const DefaultFontFamily = "Arial"

const paragraphBreak = `\P`

// Serializer renders document nodes to MText. The zero value is usable and
// falls back to DefaultFontFamily.
type Serializer struct {
	// DefaultFont is the family written in font commands for nodes without one.
	DefaultFont string
}

// DefaultSerializer returns a Serializer using DefaultFontFamily.
func DefaultSerializer() Serializer {
	return Serializer{DefaultFont: DefaultFontFamily}
}

// Serialize renders nodes to MText with the default serializer.
func Serialize(nodes []*Node) string {
	return DefaultSerializer().Serialize(nodes)
}

// Serialize renders nodes to MText. It is a pure function of its input: list
// numbering state lives only for the duration of the call.
func (s Serializer) Serialize(nodes []*Node) string {
	var sb strings.Builder
	s.writeNodes(&sb, nodes, listState{})
	return sb.String()
}

// listState is the list context threaded through serialization.
// counters[d-1] holds the next ordered-list number at depth d.
type listState struct {
	depth    int
	ordered  bool
	counters []int
}

// enter returns the state for the children of a list container.
// Ordered lists copy the counter stack so every container numbers on its own.
func (st listState) enter(ordered bool) listState {
	next := listState{depth: st.depth + 1, ordered: ordered, counters: st.counters}
	if !ordered {
		return next
	}
	next.counters = make([]int, max(len(st.counters), next.depth))
	copy(next.counters, st.counters)
	if len(st.counters) < next.depth {
		next.counters[next.depth-1] = 1
	}
	return next
}

// bullet returns the item prefix and advances the counter for ordered lists.
func (st listState) bullet() string {
	if !st.ordered || st.depth == 0 || len(st.counters) < st.depth {
		return "* "
	}
	n := st.counters[st.depth-1]
	st.counters[st.depth-1]++
	return strconv.Itoa(n) + ". "
}

func (s Serializer) writeNodes(sb *strings.Builder, nodes []*Node, st listState) {
	for _, n := range nodes {
		s.writeNode(sb, n, st)
	}
}

func (s Serializer) writeNode(sb *strings.Builder, n *Node, st listState) {
	if n == nil {
		return
	}

	if n.Paragraph != nil {
		sb.WriteString(paragraphCommand(n.Paragraph))
	}

	if n.Stack != nil {
		sb.WriteString(stackCommand(n.Stack))
		return
	}

	switch {
	case n.Type == NodeText:
		sb.WriteString(s.formatText(EscapeText(n.Text), n.Format))
	case n.Type.IsList():
		s.writeNodes(sb, n.Children, st.enter(n.Type == NodeOrdered))
	case n.Type == NodeListItem:
		sb.WriteString(paragraphBreak)
		sb.WriteString(strings.Repeat("  ", max(st.depth-1, 0)))
		sb.WriteString(st.bullet())
		s.writeNodes(sb, n.Children, listState{})
	case n.Type == NodeBreak:
		sb.WriteString(paragraphBreak)
	default:
		s.writeNodes(sb, n.Children, st)
		if n.Type == NodeParagraph {
			sb.WriteString(paragraphBreak)
		}
	}
}

// paragraphCommand builds \p with fields in fixed order: indent, left, right,
// alignment, tabs.
func paragraphCommand(p *ParagraphProps) string {
	var fields []string
	if p.Indent != nil {
		fields = append(fields, "i"+formatNumber(*p.Indent))
	}
	if p.Left != nil {
		fields = append(fields, "l"+formatNumber(*p.Left))
	}
	if p.Right != nil {
		fields = append(fields, "r"+formatNumber(*p.Right))
	}

	align, ok := alignmentCodes[p.Align]
	if !ok {
		align = alignmentCodes[AlignLeft]
	}
	fields = append(fields, "q"+align)

	if len(p.Tabs) > 0 {
		tabs := make([]string, len(p.Tabs))
		for i, t := range p.Tabs {
			tabs[i] = formatNumber(t)
		}
		fields = append(fields, "t"+strings.Join(tabs, ","))
	}

	return `\p` + strings.Join(fields, ",") + ";"
}

// stackCommand builds \S for a stacked fraction. A space separates the
// denominator after the tolerance divider so "^" is not read as a caret escape.
func stackCommand(st *Stack) string {
	var sb strings.Builder
	sb.WriteString(`\S`)
	sb.WriteString(st.Numerator)
	sb.WriteString(string(st.Divider))
	if st.Divider == DividerTolerance {
		sb.WriteString(" ")
	}
	sb.WriteString(st.Denominator)
	sb.WriteString(";")
	return sb.String()
}

// formatText wraps already escaped text with its formatting codes.
func (s Serializer) formatText(text string, f Format) string {
	switch {
	case f.Superscript:
		text = `\S` + stackEscaper.Replace(text) + `^;`
	case f.Subscript:
		text = `\S^` + stackEscaper.Replace(text) + `;`
	}

	var codes strings.Builder
	if f.Underline {
		codes.WriteString(`\L`)
	}
	if f.Overline {
		codes.WriteString(`\O`)
	}
	if f.Strikethrough {
		codes.WriteString(`\K`)
	}
	if f.Color != 0 {
		codes.WriteString(`\C` + strconv.Itoa(f.Color) + ";")
	}
	if f.RGBColor != nil {
		codes.WriteString(`\c` + strconv.Itoa(*f.RGBColor) + ";")
	}
	if f.Height != nil {
		codes.WriteString(`\H` + formatNumber(*f.Height) + ";")
	}
	if f.Width != nil {
		codes.WriteString(`\W` + formatNumber(*f.Width) + ";")
	}
	if f.Tracking != nil {
		codes.WriteString(`\T` + formatNumber(*f.Tracking) + "x;")
	}
	if f.Slant != nil {
		codes.WriteString(`\Q` + formatNumber(*f.Slant) + ";")
	}
	if font := s.fontCommand(f); font != "" {
		codes.WriteString(font)
	}

	if codes.Len() == 0 {
		return text
	}
	return "{" + codes.String() + text + "}"
}

// fontCommand returns \f<family>|b<0|1>|i<0|1>; or "" when no font-level
// formatting applies. Font-level bold and italic fall back to the character flags.
func (s Serializer) fontCommand(f Format) string {
	if f.Font == "" && !f.Bold && !f.Italic && f.FontBold == nil && f.FontItalic == nil {
		return ""
	}

	family := f.Font
	if family == "" {
		family = s.DefaultFont
	}
	if family == "" {
		family = DefaultFontFamily
	}

	bold := f.Bold
	if f.FontBold != nil {
		bold = *f.FontBold
	}
	italic := f.Italic
	if f.FontItalic != nil {
		italic = *f.FontItalic
	}

	return `\f` + family + "|b" + flag(bold) + "|i" + flag(italic) + ";"
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// formatNumber writes v in its shortest decimal form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
