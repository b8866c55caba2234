package tui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DescriptionLines converts problem HTML into plain lines: paragraphs are
// separated by one blank line, <pre> blocks are indented by four spaces
// and superscripts become "^n".
func DescriptionLines(content string) []string {
	if strings.TrimSpace(content) == "" {
		return []string{"No content."}
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return cleanLines(strings.Split(content, "\n"))
	}

	c := &htmlText{}
	c.walk(doc)
	text := strings.ReplaceAll(c.sb.String(), "\u00a0", " ")
	return cleanLines(strings.Split(text, "\n"))
}

type htmlText struct {
	sb    strings.Builder
	lists []int // item counter per open list; -1 for unordered
}

func (c *htmlText) atLineStart() bool {
	s := c.sb.String()
	return s == "" || strings.HasSuffix(s, "\n")
}

func (c *htmlText) newline() {
	if !c.atLineStart() {
		c.sb.WriteByte('\n')
	}
}

func (c *htmlText) blankLine() {
	c.newline()
	if s := c.sb.String(); s != "" && !strings.HasSuffix(s, "\n\n") {
		c.sb.WriteByte('\n')
	}
}

func (c *htmlText) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.rawText(n.Data)
		return
	case html.ElementNode:
	default:
		c.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Img:
	case atom.Br:
		c.sb.WriteByte('\n')
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		c.blankLine()
		c.children(n)
		c.blankLine()
	case atom.Pre:
		c.pre(n)
	case atom.Ul, atom.Ol:
		counter := -1
		if n.DataAtom == atom.Ol {
			counter = 0
		}
		c.lists = append(c.lists, counter)
		c.newline()
		c.children(n)
		c.lists = c.lists[:len(c.lists)-1]
		if len(c.lists) == 0 {
			c.blankLine()
		}
	case atom.Li:
		c.newline()
		depth := max(len(c.lists), 1)
		c.sb.WriteString(strings.Repeat("  ", depth-1))
		bullet := "* "
		if len(c.lists) > 0 && c.lists[len(c.lists)-1] >= 0 {
			c.lists[len(c.lists)-1]++
			bullet = fmt.Sprintf("%d. ", c.lists[len(c.lists)-1])
		}
		c.sb.WriteString("  " + bullet)
		c.children(n)
	case atom.Sup:
		c.sb.WriteByte('^')
		c.children(n)
	case atom.Sub:
		c.sb.WriteByte('_')
		c.children(n)
	default:
		c.children(n)
	}
}

func (c *htmlText) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
}

// rawText collapses whitespace but keeps a single separating space at
// either end, so "a <b>b</b> c" stays "a b c".
func (c *htmlText) rawText(s string) {
	if s == "" {
		return
	}
	lead := isSpace(rune(s[0]))
	trail := isSpace(rune(s[len(s)-1]))
	body := strings.Join(strings.Fields(s), " ")

	if lead && !c.atLineStart() && !strings.HasSuffix(c.sb.String(), " ") {
		c.sb.WriteByte(' ')
	}
	c.sb.WriteString(body)
	if trail && body != "" {
		c.sb.WriteByte(' ')
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func (c *htmlText) pre(n *html.Node) {
	var raw strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			raw.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			raw.WriteByte('\n')
		case n.Type == html.ElementNode && n.DataAtom == atom.Sup:
			raw.WriteByte('^')
			fallthrough
		default:
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				collect(child)
			}
		}
	}
	collect(n)

	c.blankLine()
	for _, line := range strings.Split(strings.Trim(raw.String(), "\n"), "\n") {
		c.sb.WriteString("    " + line + "\n")
	}
	c.blankLine()
}

// cleanLines strips trailing blanks, collapses runs of empty lines and
// trims empty lines at both ends.
func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		blank := l == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, l)
		prevBlank = blank
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return []string{"No content."}
	}
	return out
}

var (
	exampleRe     = regexp.MustCompile(`^Example\s+\d+\s*:`)
	constraintsRe = regexp.MustCompile(`(?i)^Constraints?\s*:?`)
	constraintsLn = regexp.MustCompile(`(?i)^Constraints?\s*:?$`)
	followUpRe    = regexp.MustCompile(`(?i)^(Follow[\s-]?up|Note)\s*:`)
)

// FormatBoxes frames each "Example N:" block and the constraints list in
// box drawing borders boxWidth cells wide.
func FormatBoxes(lines []string, boxWidth int) []string {
	var out []string
	examplesStarted := false

	for i := 0; i < len(lines); {
		stripped := strings.TrimSpace(lines[i])

		switch {
		case exampleRe.MatchString(stripped):
			if !examplesStarted {
				examplesStarted = true
				label := " Examples "
				left := (boxWidth - len(label)) / 2
				right := boxWidth - left - len(label)
				out = append(out, strings.Repeat("─", max(left, 0))+label+strings.Repeat("─", max(right, 0)), "")
			}
			title := strings.TrimSpace(strings.TrimRight(stripped, ":"))

			i = skipBlank(lines, i+1)
			start := i
			for i < len(lines) {
				s := strings.TrimSpace(lines[i])
				if exampleRe.MatchString(s) || constraintsRe.MatchString(s) {
					break
				}
				i++
			}
			out = append(out, makeBox(title, trimBlankTail(lines[start:i]), boxWidth)...)
			out = append(out, "")

		case constraintsLn.MatchString(stripped):
			i = skipBlank(lines, i+1)
			start := i
			for i < len(lines) && !followUpRe.MatchString(strings.TrimSpace(lines[i])) {
				i++
			}
			out = append(out, "")
			out = append(out, makeBox("Constraints", trimBlankTail(lines[start:i]), boxWidth)...)

		default:
			out = append(out, lines[i])
			i++
		}
	}
	return out
}

func skipBlank(lines []string, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return i
}

func trimBlankTail(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func makeBox(title string, content []string, boxWidth int) []string {
	inner := max(boxWidth-4, 1)

	head := "─ " + title + " "
	fill := boxWidth - 2 - utf8.RuneCountInString(head)
	out := []string{"┌" + head + strings.Repeat("─", max(fill, 0)) + "┐"}

	for _, line := range content {
		text := strings.TrimRight(line, " ")
		if text == "" {
			out = append(out, "│"+strings.Repeat(" ", max(boxWidth-2, 0))+"│")
			continue
		}
		for _, w := range Wrap(text, inner) {
			pad := inner - utf8.RuneCountInString(w)
			out = append(out, "│ "+w+strings.Repeat(" ", max(pad, 0))+" │")
		}
	}

	out = append(out, "└"+strings.Repeat("─", max(boxWidth-2, 0))+"┘")
	return out
}
