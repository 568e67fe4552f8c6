package mtext

import "strings"

// caretEscaper encodes control characters as MText caret sequences in a
// single pass, so produced sequences are never escaped again.
var caretEscaper = strings.NewReplacer(
	"^", "^ ",
	"\t", "^I",
	"\n", "^J",
	"\r", "",
)

// percentCodes maps the MText %% special-character codes to their glyphs.
var percentCodes = strings.NewReplacer(
	"%%d", "°", "%%D", "°",
	"%%c", "⌀", "%%C", "⌀",
	"%%p", "±", "%%P", "±",
)

// stackEscaper escapes the stack divider and terminator characters in text
// that has already been through EscapeText.
var stackEscaper = strings.NewReplacer(
	"^ ", `\^`,
	";", `\;`,
	"/", `\/`,
	"#", `\#`,
)

// EscapeText applies MText content escaping to a text leaf.
func EscapeText(s string) string {
	return percentCodes.Replace(caretEscaper.Replace(s))
}
