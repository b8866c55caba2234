package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/highlighter"
	"github.com/ionut-t/leetshell/leetcode"
	"github.com/ionut-t/leetshell/logging"
)

type viewMode int

const (
	viewSplit viewMode = iota
	viewEditor
	viewDesc
)

func (v viewMode) next() viewMode {
	switch v {
	case viewDesc:
		return viewSplit
	case viewSplit:
		return viewEditor
	}
	return viewDesc
}

type detailKeys struct {
	Test       key.Binding
	Submit     key.Binding
	Language   key.Binding
	View       key.Binding
	Focus      key.Binding
	Undo       key.Binding
	Back       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	LineUp     key.Binding
	LineDown   key.Binding
}

var defaultDetailKeys = detailKeys{
	Test:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "test")),
	Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "submit")),
	Language:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "lang")),
	View:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("^d", "view")),
	Focus:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("^o", "focus")),
	Undo:       key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("^z/^y", "undo/redo")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	ScrollUp:   key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("c-up/dn", "scroll")),
	ScrollDown: key.NewBinding(key.WithKeys("ctrl+down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown")),
	LineUp:     key.NewBinding(key.WithKeys("up", "ctrl+up"), key.WithHelp("arrows", "scroll")),
	LineDown:   key.NewBinding(key.WithKeys("down", "ctrl+down")),
}

// ProblemDetail shows a problem description next to a code editor for
// the chosen language, and runs tests and submissions.
type ProblemDetail struct {
	Base
	app  *App
	keys detailKeys

	slug    string
	detail  *leetcode.ProblemDetail
	loading bool

	lang      string
	langIndex int
	view      viewMode

	editor *core.Editor
	hl     *highlighter.Cache

	desc       []string // cleaned, unwrapped description lines
	descScroll int
	// descFocus gives the split view's arrows and page keys to the description.
	descFocus bool
}

func NewProblemDetail(app *App, titleSlug string) *ProblemDetail {
	hl := highlighter.New("")
	return &ProblemDetail{
		Base:    NewBase(KindProblemDetail),
		app:     app,
		keys:    defaultDetailKeys,
		slug:    titleSlug,
		loading: true,
		view:    viewSplit,
		hl:      hl,
		editor:  core.New(app.Services().Clipboard, hl),
	}
}

func (d *ProblemDetail) OnEnter() {
	d.Base.OnEnter()
	if d.detail == nil {
		d.fetch()
	}
}

func (d *ProblemDetail) OnExit() {
	d.saveCode()
}

func (d *ProblemDetail) fetch() {
	d.loading = true
	slug := d.slug
	d.app.Go(d, "problem-detail", func(ctx context.Context) func() {
		detail, err := d.app.Services().Problems.Detail(ctx, slug)
		return func() {
			d.loading = false
			if err != nil {
				d.app.ReportError("Error: ", err)
				return
			}
			d.load(detail)
		}
	})
}

func (d *ProblemDetail) load(detail *leetcode.ProblemDetail) {
	d.detail = detail
	if detail.PaidOnly && detail.Content == "" {
		d.desc = []string{"Premium problem. Content not available."}
	} else {
		d.desc = DescriptionLines(detail.Content)
	}

	d.lang = d.app.Config().Preferences.Language
	d.langIndex = 0
	for i, s := range detail.CodeSnippets {
		if s.LangSlug == d.lang {
			d.langIndex = i
		}
	}
	if len(detail.CodeSnippets) > 0 && d.detail.CodeSnippets[d.langIndex].LangSlug != d.lang {
		d.lang = detail.CodeSnippets[0].LangSlug
	}
	d.loadCode()
}

// loadCode fills the editor with the saved solution, or the starter snippet.
func (d *ProblemDetail) loadCode() {
	code, ok, err := d.app.Services().Store.LoadSolution(d.slug, d.lang)
	if err != nil {
		logging.Warn("%v", err)
	}
	if !ok {
		if s, found := d.detail.Snippet(d.lang); found {
			code = s.Code
		}
	}
	d.editor.SetLanguage(config.LexerName(d.lang))
	d.editor.SetText(code)
	d.Invalidate()
}

func (d *ProblemDetail) saveCode() {
	if d.detail == nil || !d.editor.IsModified() {
		return
	}
	if err := d.app.Services().Store.SaveSolution(d.slug, d.lang, d.editor.GetText()); err != nil {
		logging.Error("%v", err)
		d.app.Notify("Could not save code: " + err.Error())
		return
	}
	d.editor.MarkSaved()
}

// --- Rendering ---

func (d *ProblemDetail) descWidth(w int) int { return w * 2 / 5 }

// descLines returns the description laid out for the current view.
func (d *ProblemDetail) descLines(w int) []string {
	if d.view == viewDesc {
		return FormatBoxes(WrapAll(d.desc, max(40, w-4)), max(40, w-2))
	}
	return WrapAll(d.desc, max(10, d.descWidth(w)-2))
}

func (d *ProblemDetail) Render(g *core.Grid) error {
	w, h := g.Width(), g.Height()

	if d.loading {
		g.SetString(max(0, w/2-5), h/2, "loading...", core.StyleDim, -1)
		return nil
	}
	if d.detail == nil {
		g.SetString(2, 2, "No data.", core.StyleNone, -1)
		statusBar(d.app, g, d.keys.Back)
		return nil
	}

	detail := d.detail
	writeRow(g, 0, Truncate(fmt.Sprintf("%s. %s", detail.FrontendID, detail.Title), w), core.StyleBold, true)

	n := g.SetString(0, 1, detail.Difficulty, difficultyStyle[detail.Difficulty], -1)
	if tags := detail.TagNames(); len(tags) > 0 {
		g.SetString(n+2, 1, strings.Join(tags[:min(len(tags), 5)], ", "), core.StyleDim, w-n-2)
	}
	writeRow(g, 2, strings.Repeat("-", w), core.StyleDim, false)

	contentHeight := h - 4
	switch d.view {
	case viewDesc:
		d.renderDesc(g, 1, 3, w-2, contentHeight, d.descLines(w))
	case viewSplit:
		descW := d.descWidth(w)
		sepStyle := core.StyleDim
		if d.descFocus {
			sepStyle = core.StyleBold
		}
		d.renderDesc(g, 1, 3, max(10, descW-2), contentHeight, d.descLines(w))
		for y := 3; y < 3+contentHeight; y++ {
			g.Set(descW, y, "│", sepStyle)
		}
		editorW := w - descW - 1
		d.renderLangHeader(g, descW+1, 3, editorW, !d.descFocus)
		if contentHeight > 1 {
			d.editor.Render(g, descW+1, 4, editorW, contentHeight-1)
		}
	case viewEditor:
		d.renderLangHeader(g, 0, 3, w, true)
		if contentHeight > 1 {
			d.editor.Render(g, 0, 4, w, contentHeight-1)
		}
	}

	k := d.keys
	switch d.view {
	case viewDesc:
		statusBar(d.app, g, k.View, k.LineUp, k.Back)
	case viewSplit:
		statusBar(d.app, g, k.Test, k.Submit, k.Language, k.View, k.Focus, k.Undo, k.ScrollUp, k.Back)
	default:
		statusBar(d.app, g, k.Test, k.Submit, k.Language, k.View, k.Undo, k.Back)
	}
	return nil
}

func (d *ProblemDetail) renderDesc(g *core.Grid, x, y, width, height int, lines []string) {
	d.descScroll = min(d.descScroll, max(len(lines)-height, 0))
	for i := range height {
		idx := d.descScroll + i
		if idx >= len(lines) {
			break
		}
		g.SetString(x, y+i, lines[idx], core.StyleNone, width)
	}

	if len(lines) <= height && d.descScroll == 0 {
		return
	}
	hint := "[scroll]"
	if remaining := len(lines) - d.descScroll - height; remaining > 0 {
		hint = fmt.Sprintf("[%d more]", remaining)
	}
	g.SetString(max(0, x+width-len(hint)), y+height-1, hint, core.StyleDim, -1)
}

func (d *ProblemDetail) renderLangHeader(g *core.Grid, x, y, width int, focused bool) {
	name := strings.ToLower(config.DisplayName(d.lang))
	header := "--- " + name + " " + strings.Repeat("-", max(0, width-len(name)-5))
	style := core.StyleDim
	if focused {
		style = core.StyleBold
	}
	g.SetString(x, y, header, style, width)
}

// --- Keys ---

func (d *ProblemDetail) HandleKey(ev core.KeyEvent) error {
	k := d.keys
	switch {
	case key.Matches(ev, k.Test):
		d.runTest()
		return nil
	case key.Matches(ev, k.Submit):
		d.submit()
		return nil
	case key.Matches(ev, k.Language):
		d.nextLanguage()
		return nil
	case key.Matches(ev, k.View):
		d.view = d.view.next()
		d.descScroll = 0
		d.descFocus = false
		d.Invalidate()
		return nil
	case key.Matches(ev, k.Focus):
		if d.view == viewSplit {
			d.descFocus = !d.descFocus
			d.Invalidate()
		}
		return nil
	case key.Matches(ev, k.Back):
		d.app.Pop()
		return nil
	}

	if d.detail == nil {
		return nil
	}
	if d.view != viewEditor && d.scrollDesc(ev) {
		return nil
	}
	if d.view == viewDesc {
		return nil
	}

	if d.editor.HandleKey(ev) {
		d.Invalidate()
	}
	d.reportEditorSignals()
	return nil
}

// scrollDesc handles description scrolling keys for desc and split views.
// In split view only ctrl+up/down scroll it unless it has focus.
func (d *ProblemDetail) scrollDesc(ev core.KeyEvent) bool {
	w, h := d.Size()
	height := max(1, h-4)
	total := len(d.descLines(w))

	focused := d.view == viewDesc || d.descFocus
	up, down := d.keys.ScrollUp, d.keys.ScrollDown
	if focused {
		up, down = d.keys.LineUp, d.keys.LineDown
	}

	delta := 0
	switch {
	case key.Matches(ev, up):
		delta = -1
	case key.Matches(ev, down):
		delta = 1
	case focused && key.Matches(ev, d.keys.PageUp):
		delta = -height
	case focused && key.Matches(ev, d.keys.PageDown):
		delta = height
	default:
		return false
	}

	if next := scrollBy(d.descScroll, delta, total, height); next != d.descScroll {
		d.descScroll = next
		d.Invalidate()
	}
	return true
}

func (d *ProblemDetail) reportEditorSignals() {
	for _, sig := range d.editor.DrainSignals() {
		switch s := sig.(type) {
		case core.CopySignal:
			d.app.Notify(fmt.Sprintf("Copied %d characters", s.Value()))
		case core.CutSignal:
			d.app.Notify(fmt.Sprintf("Cut %d characters", s.Value()))
		case core.PasteSignal:
			d.app.Notify(fmt.Sprintf("Pasted %d lines", s.Value()))
		case core.ErrorSignal:
			id, err := s.Value()
			switch id {
			case core.ErrCopyFailedId, core.ErrCutFailedId, core.ErrPasteFailedId:
				d.app.Notify("Clipboard error: " + err.Error())
			default:
				logging.Warn("editor: %s: %v", id, err)
				d.app.Notify(fmt.Sprintf("Editor error: %s", id))
			}
		}
	}
}

// --- Actions ---

func (d *ProblemDetail) currentCode(action string) (string, bool) {
	if d.detail == nil {
		return "", false
	}
	d.saveCode()
	code := d.editor.GetText()
	if strings.TrimSpace(code) == "" {
		d.app.Notify("No code to " + action + ".")
		return "", false
	}
	return code, true
}

func (d *ProblemDetail) runTest() {
	code, ok := d.currentCode("test")
	if !ok {
		return
	}
	d.app.Notify("Running tests...")

	detail, lang := d.detail, d.lang
	d.app.Go(d, "test", func(ctx context.Context) func() {
		result, err := d.app.Services().Judge.Test(ctx, detail.TitleSlug, detail.QuestionID, lang, code, detail.ExampleTestcases)
		return func() {
			if err != nil {
				d.app.ReportError("Test error: ", err)
				return
			}
			d.app.Push(NewTestResult(d.app, result, d.onTestDismissed))
		}
	})
}

func (d *ProblemDetail) submit() {
	code, ok := d.currentCode("submit")
	if !ok {
		return
	}
	d.app.Notify("Submitting...")

	detail, lang := d.detail, d.lang
	d.app.Go(d, "submit", func(ctx context.Context) func() {
		result, err := d.app.Services().Judge.Submit(ctx, detail.TitleSlug, detail.QuestionID, lang, code)
		return func() {
			if err != nil {
				d.app.ReportError("Submit error: ", err)
				return
			}
			d.app.Push(NewSubmissionResult(d.app, result, d.onSubmissionDismissed))
		}
	})
}

func (d *ProblemDetail) onTestDismissed(action string) {
	if action == ActionSubmit {
		d.submit()
	}
}

func (d *ProblemDetail) onSubmissionDismissed(action string) {
	if action == ActionList {
		d.app.Pop()
	}
}

func (d *ProblemDetail) nextLanguage() {
	if d.detail == nil || len(d.detail.CodeSnippets) == 0 {
		return
	}
	d.saveCode()
	d.langIndex = (d.langIndex + 1) % len(d.detail.CodeSnippets)
	d.lang = d.detail.CodeSnippets[d.langIndex].LangSlug
	d.loadCode()

	d.app.Config().Preferences.Language = d.lang
	d.app.saveConfig()
}
