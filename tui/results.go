package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/leetcode"
)

// Actions reported when a result screen is dismissed.
const (
	ActionNone    = ""
	ActionSubmit  = "submit"
	ActionEdit    = "edit"
	ActionProblem = "problem"
	ActionList    = "list"
)

type styledLine struct {
	style string
	text  string
}

type reportKeys struct {
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

var defaultReportKeys = reportKeys{
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("[j/k]", "scroll")),
	Up:       key.NewBinding(key.WithKeys("k", "up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
}

// report is a titled, scrollable list of styled lines shared by the result
// screens.
type report struct {
	Base
	app     *App
	title   string
	lines   []styledLine
	scroll  int
	keys    reportKeys
	dismiss func(action string)
}

func (r *report) add(style, text string) {
	r.lines = append(r.lines, styledLine{style, text})
}

func (r *report) addBlock(label, body string) {
	r.add("red", label)
	for _, l := range strings.Split(body, "\n") {
		r.add("red", "  "+l)
	}
}

func (r *report) visible() int {
	_, h := r.Size()
	return max(1, h-4)
}

func (r *report) render(g *core.Grid, bindings ...key.Binding) {
	w, h := g.Width(), g.Height()
	g.SetString(0, 0, r.title, core.StyleBold, w)

	for i := range max(h-4, 0) {
		idx := r.scroll + i
		if idx >= len(r.lines) {
			break
		}
		l := r.lines[idx]
		g.SetString(0, 2+i, Truncate(l.text, w), l.style, w)
	}
	statusBar(r.app, g, append(bindings, r.keys.Down)...)
}

// scrollKey handles j/k and paging; it reports whether ev was one of them.
func (r *report) scrollKey(ev core.KeyEvent) bool {
	delta := 0
	switch {
	case key.Matches(ev, r.keys.Down):
		delta = 1
	case key.Matches(ev, r.keys.Up):
		delta = -1
	case key.Matches(ev, r.keys.PageDown):
		delta = 20
	case key.Matches(ev, r.keys.PageUp):
		delta = -20
	default:
		return false
	}
	if next := scrollBy(r.scroll, delta, len(r.lines), r.visible()); next != r.scroll {
		r.scroll = next
		r.Invalidate()
	}
	return true
}

// close pops the screen, then tells the opener what the user chose.
func (r *report) close(action string) {
	r.app.Pop()
	if r.dismiss != nil {
		r.dismiss(action)
	}
}

type testResultKeys struct {
	Submit key.Binding
	Edit   key.Binding
	Back   key.Binding
}

// TestResult lists the outcome of each example case.
type TestResult struct {
	report
	keys testResultKeys
}

func NewTestResult(app *App, result *leetcode.TestResult, dismiss func(action string)) *TestResult {
	t := &TestResult{
		report: report{Base: NewBase(KindTestResult), app: app, title: "Test Results", keys: defaultReportKeys, dismiss: dismiss},
		keys: testResultKeys{
			Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("[s]", "submit")),
			Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("[e]", "edit")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("[esc]", "back")),
		},
	}
	t.build(result)
	return t
}

func (t *TestResult) build(r *leetcode.TestResult) {
	if r.RunSuccess {
		passed, total := r.Passed(), len(r.Cases)
		style := "green"
		if passed != total {
			style = "yellow"
		}
		t.add(style, fmt.Sprintf("Test Results: %d/%d passed", passed, total))
	} else {
		t.add("red", r.StatusMsg)
	}
	t.add("", "")

	if msg := r.CompileErr(); msg != "" {
		t.addBlock("Compile Error:", msg)
		t.add("", "")
	}
	if msg := r.RuntimeErr(); msg != "" {
		t.addBlock("Runtime Error:", msg)
		t.add("", "")
	}

	for i, c := range r.Cases {
		label, style := "FAIL", "red"
		if c.Passed {
			label, style = "PASS", "green"
		}
		t.add(style, fmt.Sprintf("  %s  Case %d", label, i+1))
		if c.Input != "" {
			t.add("", "    input:    "+c.Input)
		}
		t.add("", "    expected: "+c.Expected)
		t.add("", "    output:   "+c.Actual)
		t.add("", "")
	}

	if r.Runtime != "" {
		t.add(core.StyleDim, fmt.Sprintf("runtime: %s  memory: %s", r.Runtime, r.Memory))
	}
}

func (t *TestResult) Render(g *core.Grid) error {
	t.render(g, t.keys.Submit, t.keys.Edit, t.keys.Back)
	return nil
}

func (t *TestResult) HandleKey(ev core.KeyEvent) error {
	switch {
	case key.Matches(ev, t.keys.Submit):
		t.close(ActionSubmit)
	case key.Matches(ev, t.keys.Edit):
		t.close(ActionEdit)
	case key.Matches(ev, t.keys.Back):
		t.close(ActionNone)
	default:
		t.scrollKey(ev)
	}
	return nil
}

type submissionKeys struct {
	Back key.Binding
	List key.Binding
}

// SubmissionResult shows the verdict of a full submission.
type SubmissionResult struct {
	report
	keys submissionKeys
}

func NewSubmissionResult(app *App, result *leetcode.SubmissionResult, dismiss func(action string)) *SubmissionResult {
	s := &SubmissionResult{
		report: report{Base: NewBase(KindSubmissionResult), app: app, title: "Submission Result", keys: defaultReportKeys, dismiss: dismiss},
		keys: submissionKeys{
			Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("[esc]", "back to problem")),
			List: key.NewBinding(key.WithKeys("q"), key.WithHelp("[q]", "problem list")),
		},
	}
	s.build(result)
	return s
}

func (s *SubmissionResult) build(r *leetcode.SubmissionResult) {
	style := "red"
	if r.Accepted() {
		style = "green"
	}
	s.add(style, r.DisplayStatus())
	s.add("", "")
	s.add("", fmt.Sprintf("  tests passed:  %d/%d", r.TotalCorrect, r.TotalTestcases))

	if r.Accepted() {
		s.add("", fmt.Sprintf("  runtime:       %s (faster than %.1f%%)", r.Runtime, r.RuntimePercentile))
		s.add("", fmt.Sprintf("  memory:        %s (less than %.1f%%)", r.Memory, r.MemoryPercentile))
		return
	}

	if r.Runtime != "" {
		s.add("", "  runtime:       "+r.Runtime)
	}
	if msg := r.CompileErr(); msg != "" {
		s.add("", "")
		s.addBlock("Compile Error:", msg)
	}
	if msg := r.RuntimeErr(); msg != "" {
		s.add("", "")
		s.addBlock("Runtime Error:", msg)
	}
	if r.Input != "" {
		s.add("", "")
		s.add("", "  input:     "+r.Input)
	}
	if r.ExpectedOutput != "" {
		s.add("", "  expected:  "+r.ExpectedOutput)
	}
	if r.CodeOutput != "" {
		s.add("", "  output:    "+r.CodeOutput)
	}
}

func (s *SubmissionResult) Render(g *core.Grid) error {
	s.render(g, s.keys.Back, s.keys.List)
	return nil
}

func (s *SubmissionResult) HandleKey(ev core.KeyEvent) error {
	switch {
	case key.Matches(ev, s.keys.Back):
		s.close(ActionProblem)
	case key.Matches(ev, s.keys.List):
		s.close(ActionList)
	default:
		s.scrollKey(ev)
	}
	return nil
}
