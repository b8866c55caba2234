package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProblem = `<p>Given an array <code>nums</code>.</p>
<p><strong class="example">Example 1:</strong></p>
<pre><strong>Input:</strong> nums = [2,7]
<strong>Output:</strong> [0,1]
</pre>
<p><strong>Constraints:</strong></p>
<ul>
	<li><code>2 &lt;= n &lt;= 10<sup>4</sup></code></li>
	<li>x</li>
</ul>`

func TestDescriptionLines(t *testing.T) {
	want := []string{
		"Given an array nums.",
		"",
		"Example 1:",
		"",
		"    Input: nums = [2,7]",
		"    Output: [0,1]",
		"",
		"Constraints:",
		"",
		"  * 2 <= n <= 10^4",
		"  * x",
	}
	assert.Equal(t, want, DescriptionLines(sampleProblem))
}

func TestDescriptionLinesElements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "  ", []string{"No content."}},
		{"only markup", "<p></p>", []string{"No content."}},
		{"ordered list", "<ol><li>a</li><li>b</li></ol>", []string{"  1. a", "  2. b"}},
		{"nbsp", "<p>a&nbsp;b</p>", []string{"a b"}},
		{"subscript", "<p>x<sub>i</sub></p>", []string{"x_i"}},
		{"script dropped", "<p>x</p><script>bad()</script>", []string{"x"}},
		{"line break", "<p>a<br>b</p>", []string{"a", "b"}},
		{"inline spacing", "<p>a <b>b</b> c</p>", []string{"a b c"}},
		{"blank runs collapse", "<p>a</p><p></p><p></p><p>b</p>", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescriptionLines(tt.in))
		})
	}
}

func TestFormatBoxes(t *testing.T) {
	lines := []string{"Intro", "", "Example 1:", "", "Input: a", "", "Constraints:", "", "* c"}

	out := FormatBoxes(lines, 20)

	require.GreaterOrEqual(t, len(out), 10)
	assert.Equal(t, "Intro", out[0])
	assert.Equal(t, "───── Examples ─────", out[2])
	assert.Equal(t, "┌─ Example 1 ──────┐", out[4])
	assert.Equal(t, "│ Input: a         │", out[5])
	assert.Equal(t, "└──────────────────┘", out[6])
	assert.Contains(t, out, "┌─ Constraints ────┐")
	assert.Contains(t, out, "│ * c              │")

	for _, l := range out {
		if strings.HasPrefix(l, "│") || strings.HasPrefix(l, "┌") || strings.HasPrefix(l, "└") {
			assert.Equal(t, 20, utf8.RuneCountInString(l), l)
		}
	}
}

func TestFormatBoxesWrapsLongLines(t *testing.T) {
	lines := []string{"Example 1:", "Input: " + strings.Repeat("word ", 8)}

	out := FormatBoxes(lines, 20)

	var body []string
	for _, l := range out {
		if strings.HasPrefix(l, "│") {
			body = append(body, l)
		}
	}
	assert.Greater(t, len(body), 1)
	for _, l := range body {
		assert.Equal(t, 20, utf8.RuneCountInString(l))
	}
}

func TestFormatBoxesStopsConstraintsAtFollowUp(t *testing.T) {
	lines := []string{"Constraints:", "* a", "", "Follow-up: faster?"}

	out := FormatBoxes(lines, 20)

	assert.Equal(t, "Follow-up: faster?", out[len(out)-1])
	assert.Contains(t, out, "│ * a              │")
}
