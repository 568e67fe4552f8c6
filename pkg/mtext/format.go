package mtext

// Format holds character-level formatting.
//
// The parser threads a Format down the element tree as an immutable
// accumulator: each element's delta is merged into a new value which is passed
// to its children. Pointer fields are never written through after creation.
type Format struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Overline      bool `json:"overline,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Subscript     bool `json:"subscript,omitempty"`
	Superscript   bool `json:"superscript,omitempty"`

	Color    int  `json:"color,omitempty"`    // indexed palette value 1-255, 0 when unset
	RGBColor *int `json:"rgbColor,omitempty"` // packed 0xRRGGBB

	Font       string `json:"font,omitempty"`
	FontBold   *bool  `json:"fontBold,omitempty"`
	FontItalic *bool  `json:"fontItalic,omitempty"`

	Height   *float64 `json:"height,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Tracking *float64 `json:"tracking,omitempty"`
	Slant    *float64 `json:"slant,omitempty"`
}

// Merge returns f overridden field by field with the fields set in delta.
func (f Format) Merge(delta Format) Format {
	out := f
	out.Bold = f.Bold || delta.Bold
	out.Italic = f.Italic || delta.Italic
	out.Underline = f.Underline || delta.Underline
	out.Overline = f.Overline || delta.Overline
	out.Strikethrough = f.Strikethrough || delta.Strikethrough
	out.Subscript = f.Subscript || delta.Subscript
	out.Superscript = f.Superscript || delta.Superscript

	if delta.Color != 0 {
		out.Color = delta.Color
	}
	if delta.RGBColor != nil {
		out.RGBColor = delta.RGBColor
	}
	if delta.Font != "" {
		out.Font = delta.Font
	}
	if delta.FontBold != nil {
		out.FontBold = delta.FontBold
	}
	if delta.FontItalic != nil {
		out.FontItalic = delta.FontItalic
	}
	if delta.Height != nil {
		out.Height = delta.Height
	}
	if delta.Width != nil {
		out.Width = delta.Width
	}
	if delta.Tracking != nil {
		out.Tracking = delta.Tracking
	}
	if delta.Slant != nil {
		out.Slant = delta.Slant
	}
	return out
}

// IsZero reports whether no formatting field is set.
func (f Format) IsZero() bool {
	return f == Format{}
}

// Float returns a pointer to v, for populating optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
