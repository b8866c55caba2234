package bubble_adapter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/leetshell/core"
)

// Theme maps the style names used in a core.Grid to lipgloss styles.
type Theme struct {
	CursorStyle    lipgloss.Style
	SelectionStyle lipgloss.Style
	DimStyle       lipgloss.Style
	BoldStyle      lipgloss.Style
	ReverseStyle   lipgloss.Style
	// Colors maps color names such as "cyan" or "bright_black" to terminal colors.
	Colors map[string]lipgloss.TerminalColor
}

var DefaultTheme = Theme{
	CursorStyle:    lipgloss.NewStyle().Reverse(true),
	SelectionStyle: lipgloss.NewStyle().Background(lipgloss.Color("237")),
	DimStyle:       lipgloss.NewStyle().Faint(true),
	BoldStyle:      lipgloss.NewStyle().Bold(true),
	ReverseStyle:   lipgloss.NewStyle().Reverse(true),
	Colors: map[string]lipgloss.TerminalColor{
		"black":          lipgloss.Color("0"),
		"red":            lipgloss.Color("1"),
		"green":          lipgloss.Color("2"),
		"yellow":         lipgloss.Color("3"),
		"blue":           lipgloss.Color("4"),
		"magenta":        lipgloss.Color("5"),
		"cyan":           lipgloss.Color("6"),
		"white":          lipgloss.Color("7"),
		"bright_black":   lipgloss.Color("8"),
		"bright_red":     lipgloss.Color("9"),
		"bright_green":   lipgloss.Color("10"),
		"bright_yellow":  lipgloss.Color("11"),
		"bright_blue":    lipgloss.Color("12"),
		"bright_magenta": lipgloss.Color("13"),
		"bright_cyan":    lipgloss.Color("14"),
		"bright_white":   lipgloss.Color("15"),
	},
}

// Style resolves a space separated style name like "bold on_blue white".
// Unknown words are ignored.
func (t Theme) Style(name string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, word := range strings.Fields(name) {
		switch word {
		case core.StyleCursor:
			style = style.Inherit(t.CursorStyle)
		case core.StyleSelection:
			style = style.Inherit(t.SelectionStyle)
		case core.StyleDim:
			style = style.Inherit(t.DimStyle)
		case core.StyleBold:
			style = style.Inherit(t.BoldStyle)
		case core.StyleReverse:
			style = style.Inherit(t.ReverseStyle)
		case "underline":
			style = style.Underline(true)
		case "italic":
			style = style.Italic(true)
		default:
			if bg, ok := strings.CutPrefix(word, "on_"); ok {
				if c, ok := t.Colors[bg]; ok {
					style = style.Background(c)
				}
			} else if c, ok := t.Colors[word]; ok {
				style = style.Foreground(c)
			}
		}
	}
	return style
}
