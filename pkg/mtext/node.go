// Package mtext converts rich text between editor HTML and the MText
// control-code format used by CAD multi-line text entities.
package mtext

// NodeType identifies the kind of a Node. Known element kinds have constants;
// any other element becomes a generic container carrying its lower-cased tag name.
type NodeType string

const (
	NodeText      NodeType = "text"
	NodeBreak     NodeType = "br"
	NodeParagraph NodeType = "paragraph"
	NodeOrdered   NodeType = "ol"
	NodeUnordered NodeType = "ul"
	NodeListItem  NodeType = "li"
)

// IsList reports whether t is an ordered or unordered list container.
func (t NodeType) IsList() bool {
	return t == NodeOrdered || t == NodeUnordered
}

// Node is a single entry of the document model.
//
// A node is a text leaf (Text set), a fraction leaf (Stack set) or a container
// (Children set). Formatting is fully resolved: the parser merges inherited
// formatting into every text leaf, so the serializer never walks up the tree.
type Node struct {
	Type     NodeType `json:"type"`
	Text     string   `json:"text,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	Format

	Stack     *Stack          `json:"stack,omitempty"`
	Paragraph *ParagraphProps `json:"paragraph,omitempty"`
}

// NewText creates a text leaf with the given formatting.
func NewText(text string, f Format) *Node {
	return &Node{Type: NodeText, Text: text, Format: f}
}

// NewFraction creates a stacked-fraction leaf.
func NewFraction(numerator, denominator string, divider Divider) *Node {
	return &Node{
		Type:  NodeText,
		Stack: &Stack{Numerator: numerator, Denominator: denominator, Divider: divider},
	}
}

// IsFraction reports whether n is a stacked-fraction leaf.
func (n *Node) IsFraction() bool {
	return n.Stack != nil
}

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool {
	return n.Type == NodeText && n.Stack == nil
}

// Divider is the glyph separating numerator and denominator of a stacked fraction.
type Divider string

const (
	DividerTolerance  Divider = "^" // no visible rule
	DividerHorizontal Divider = "/"
	DividerDiagonal   Divider = "#"
)

// Stack describes a stacked fraction.
type Stack struct {
	Numerator   string  `json:"numerator"`
	Denominator string  `json:"denominator"`
	Divider     Divider `json:"divider"`
}

// Alignment is a paragraph alignment.
type Alignment string

const (
	AlignLeft        Alignment = "left"
	AlignRight       Alignment = "right"
	AlignCenter      Alignment = "center"
	AlignJustified   Alignment = "justified"
	AlignDistributed Alignment = "distributed"
)

// alignmentCodes maps alignments to their single-letter paragraph command value.
var alignmentCodes = map[Alignment]string{
	AlignLeft:        "l",
	AlignRight:       "r",
	AlignCenter:      "c",
	AlignJustified:   "j",
	AlignDistributed: "d",
}

// ParagraphProps holds paragraph-level layout. Lengths are in em-equivalent units.
type ParagraphProps struct {
	Indent *float64  `json:"indent,omitempty"`
	Left   *float64  `json:"left,omitempty"`
	Right  *float64  `json:"right,omitempty"`
	Align  Alignment `json:"align,omitempty"`
	Tabs   []float64 `json:"tabs,omitempty"`
}
