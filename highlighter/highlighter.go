package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/logging"
)

// Cache holds per-line colored spans for a buffer. It is recomputed from
// the full text only after Invalidate or SetLanguage.
type Cache struct {
	mu       sync.Mutex
	language string
	lexer    chroma.Lexer
	lines    [][]core.Span
	dirty    bool
}

var _ core.Highlighter = (*Cache)(nil)

// New creates a cache for the given language. Unknown languages fall back
// to plain text.
func New(language string) *Cache {
	c := &Cache{}
	c.SetLanguage(language)
	return c
}

func (c *Cache) SetLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.language = language
	c.lexer = lexerFor(language)
	c.dirty = true
}

func (c *Cache) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Invalidate marks the cache stale (call when content changes)
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func (c *Cache) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Highlight returns one span list per line, recomputing first if stale.
func (c *Cache) Highlight(lines []string) [][]core.Span {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty || len(c.lines) != len(lines) {
		c.recompute(lines)
	}
	return c.lines
}

// Recompute re-lexes lines if the cache is stale.
func (c *Cache) Recompute(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty {
		c.recompute(lines)
	}
}

func (c *Cache) recompute(lines []string) {
	c.lines = Tokenize(c.lexer, lines)
	c.dirty = false
}

// Tokenize lexes the whole text and splits the token stream at line breaks.
// The result always has exactly len(lines) entries.
func Tokenize(lexer chroma.Lexer, lines []string) [][]core.Span {
	out := make([][]core.Span, 0, len(lines))
	content := strings.Join(lines, "\n")

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		logging.Warn("highlighter: tokenise failed: %v", err)
		iterator = chroma.Literator(chroma.Token{Type: chroma.Text, Value: content})
	}

	var current []core.Span
	for _, token := range iterator.Tokens() {
		class := ColorFor(token.Type)
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				current = append(current, core.Span{Class: class, Text: before})
			}
			if !found {
				break
			}
			out = append(out, current)
			current = nil
			value = after
		}
	}
	out = append(out, current)

	// Lexers may add a trailing newline; never return more or fewer lines.
	for len(out) < len(lines) {
		out = append(out, nil)
	}
	return out[:len(lines)]
}

func lexerFor(language string) chroma.Lexer {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
