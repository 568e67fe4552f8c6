// style.go parses inline CSS values used by the HTML parser.
package mtext

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	pxPerEm = 16.0
	ptToPx  = 1.33
)

var (
	rgbPattern    = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,[^)]*)?\)$`)
	hexPattern    = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)
	scaleXPattern = regexp.MustCompile(`scaleX\(\s*([^)\s]+)\s*\)`)
	skewXPattern  = regexp.MustCompile(`skewX\(\s*([-+0-9.]+)deg\s*\)`)
)

// rawDeclPatterns match a declaration anywhere in a raw style string.
var rawDeclPatterns = map[string]*regexp.Regexp{
	"text-align":   regexp.MustCompile(`(?i)(?:^|;)\s*text-align\s*:\s*([^;]+)`),
	"text-indent":  regexp.MustCompile(`(?i)(?:^|;)\s*text-indent\s*:\s*([^;]+)`),
	"margin-left":  regexp.MustCompile(`(?i)(?:^|;)\s*margin-left\s*:\s*([^;]+)`),
	"margin-right": regexp.MustCompile(`(?i)(?:^|;)\s*margin-right\s*:\s*([^;]+)`),
}

// parseStyle splits an inline style attribute into a property map.
// Property names are lower-cased; a later declaration overrides an earlier one.
func parseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		props[name] = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
	}
	return props
}

// convertUnit converts a CSS length to em-equivalent units.
// Values in em and bare numbers pass through, px is divided by 16 and pt is
// scaled to px first. Anything else is reported as not ok.
func convertUnit(value string) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}

	scale := 1.0
	switch {
	case strings.HasSuffix(value, "em"):
		value = strings.TrimSuffix(value, "em")
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
		scale = 1 / pxPerEm
	case strings.HasSuffix(value, "pt"):
		value = strings.TrimSuffix(value, "pt")
		scale = ptToPx / pxPerEm
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return n * scale, true
}

// parseColor parses rgb(r,g,b), #rrggbb or #rgb into a packed 24-bit value.
func parseColor(value string) (int, bool) {
	value = strings.TrimSpace(value)

	if m := rgbPattern.FindStringSubmatch(value); m != nil {
		packed := 0
		for _, part := range m[1:4] {
			c, err := strconv.Atoi(part)
			if err != nil || c > 255 {
				return 0, false
			}
			packed = packed<<8 | c
		}
		return packed, true
	}

	if m := hexPattern.FindStringSubmatch(value); m != nil {
		hex := m[1]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		packed, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return int(packed), true
	}

	return 0, false
}

// parseFontFamily returns the first family of a CSS font-family list.
func parseFontFamily(value string) string {
	value = strings.NewReplacer(`"`, "", `'`, "").Replace(value)
	first, _, _ := strings.Cut(value, ",")
	return strings.TrimSpace(first)
}

// parseScaleX extracts the factor of a scaleX() transform function.
func parseScaleX(transform string) (float64, bool) {
	m := scaleXPattern.FindStringSubmatch(transform)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseSkewX extracts the angle in degrees of a skewX() transform function.
func parseSkewX(transform string) (float64, bool) {
	m := skewXPattern.FindStringSubmatch(transform)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// lastDeclaration returns the value of the last declaration of name found in
// a raw style string, or "" when there is none.
func lastDeclaration(style, name string) string {
	pattern, ok := rawDeclPatterns[name]
	if !ok {
		return ""
	}
	matches := pattern.FindAllStringSubmatch(style, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimSpace(matches[len(matches)-1][1])
}

// parseAlignment maps CSS and HTML alignment keywords onto Alignment.
func parseAlignment(value string) (Alignment, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start":
		return AlignLeft, true
	case "right", "end":
		return AlignRight, true
	case "center":
		return AlignCenter, true
	case "justify", "justified":
		return AlignJustified, true
	case "distributed":
		return AlignDistributed, true
	}
	return "", false
}

// hasClass reports whether a class attribute contains name.
func hasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}
