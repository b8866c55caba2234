package highlighter

import "github.com/alecthomas/chroma/v2"

// Color classes; the terminal backend maps them to concrete colors.
const (
	Cyan        = "cyan"
	Blue        = "blue"
	Yellow      = "yellow"
	Magenta     = "magenta"
	Green       = "green"
	BrightGreen = "bright_green"
	BrightBlack = "bright_black"
	Red         = "red"
	White       = "white"
)

var tokenColors = map[chroma.TokenType]string{
	chroma.Keyword:               Cyan,
	chroma.NameBuiltin:           Blue,
	chroma.NameBuiltinPseudo:     Blue,
	chroma.NameClass:             Yellow,
	chroma.NameDecorator:         Magenta,
	chroma.NameException:         Yellow,
	chroma.NameFunction:          Yellow,
	chroma.NameFunctionMagic:     Yellow,
	chroma.NameTag:               Cyan,
	chroma.NameAttribute:         Yellow,
	chroma.LiteralString:         Green,
	chroma.LiteralStringEscape:   BrightGreen,
	chroma.LiteralStringInterpol: BrightGreen,
	chroma.LiteralNumber:         Magenta,
	chroma.Comment:               BrightBlack,
	chroma.Operator:              Red,
	chroma.OperatorWord:          Cyan,
	chroma.Punctuation:           White,
}

// ColorFor walks up the token type hierarchy until a mapped color is found.
// Unmapped types get no color.
func ColorFor(t chroma.TokenType) string {
	for {
		if c, ok := tokenColors[t]; ok {
			return c
		}
		if t == 0 {
			return ""
		}
		t = t.Parent()
	}
}
