package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/leetcode"
	"github.com/ionut-t/leetshell/logging"
)

const (
	colStatus = 3
	colID     = 7
	colDiff   = 12
	colAC     = 8
)

var (
	difficultyCycle   = []string{"", "EASY", "MEDIUM", "HARD"}
	difficultyDisplay = map[string]string{"": "All", "EASY": "Easy", "MEDIUM": "Medium", "HARD": "Hard"}
	difficultyStyle   = map[string]string{"Easy": "green", "Medium": "yellow", "Hard": "red"}
	statusIcon        = map[string]string{"ac": "v", "notac": "x"}
	statusStyle       = map[string]string{"ac": "green", "notac": "yellow"}
)

type listKeys struct {
	Down       key.Binding
	Up         key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Search     key.Binding
	Difficulty key.Binding
	Refresh    key.Binding
	Open       key.Binding
	Logout     key.Binding
	Quit       key.Binding
}

var defaultListKeys = listKeys{
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "scroll")),
	Up:         key.NewBinding(key.WithKeys("k", "up")),
	NextPage:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn/pgup", "page")),
	PrevPage:   key.NewBinding(key.WithKeys("pgup")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Logout:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Quit:       key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "quit")),
}

// ProblemList pages through the problem set with difficulty and keyword
// filters.
type ProblemList struct {
	Base
	app  *App
	keys listKeys

	problems []leetcode.ProblemSummary
	total    int
	filter   leetcode.ListFilter

	cursor  int
	scroll  int
	loading bool
	// fetchSeq numbers list requests; only the newest one is applied.
	fetchSeq int

	searching bool
	search    *lineInput
}

func NewProblemList(app *App) *ProblemList {
	return &ProblemList{
		Base:    NewBase(KindProblemList),
		app:     app,
		keys:    defaultListKeys,
		filter:  leetcode.ListFilter{Limit: leetcode.DefaultPageSize},
		loading: true,
		search:  newLineInput(false),
	}
}

func (p *ProblemList) OnEnter() {
	p.Base.OnEnter()
	if len(p.problems) == 0 {
		p.fetch()
	}
}

func (p *ProblemList) fetch() {
	p.loading = true
	p.Invalidate()

	p.fetchSeq++
	seq, f := p.fetchSeq, p.filter
	p.app.Go(p, "problem-list", func(ctx context.Context) func() {
		page, err := p.app.Services().Problems.List(ctx, f)
		return func() {
			if seq != p.fetchSeq {
				logging.Debug("problem list: dropping stale page skip=%d", f.Skip)
				return
			}
			p.loading = false
			if err != nil {
				p.app.ReportError("Error: ", err)
				return
			}
			p.problems = page.Questions
			p.total = page.Total
			p.cursor = 0
			p.scroll = 0
		}
	})
}

// visibleRows is the table body height for the last seen terminal size.
func (p *ProblemList) visibleRows() int {
	_, h := p.Size()
	return max(1, h-4)
}

func (p *ProblemList) followCursor() {
	visible := p.visibleRows()
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	} else if p.cursor >= p.scroll+visible {
		p.scroll = p.cursor - visible + 1
	}
}

func (p *ProblemList) Render(g *core.Grid) error {
	w, h := g.Width(), g.Height()

	if p.searching {
		p.search.Render(g, 0, 0, w, "Search: ", core.StyleNone)
	} else {
		text := " Difficulty: " + difficultyDisplay[p.filter.Difficulty]
		if p.filter.Search != "" {
			text += fmt.Sprintf("  %q", p.filter.Search)
		}
		writeRow(g, 0, text, core.StyleReverse, true)
	}

	if p.loading {
		g.SetString(max(0, w/2-5), h/2, "loading...", core.StyleDim, -1)
		return nil
	}

	titleWidth := max(w-colStatus-colID-colDiff-colAC, 10)
	p.renderHeader(g, 1, titleWidth)

	p.followCursor()
	for i := range max(h-4, 0) {
		idx := p.scroll + i
		if idx >= len(p.problems) {
			break
		}
		p.renderRow(g, 2+i, p.problems[idx], titleWidth, idx == p.cursor)
	}

	limit := max(p.filter.Limit, 1)
	page := p.filter.Skip/limit + 1
	pages := max(1, (p.total+limit-1)/limit)
	info := fmt.Sprintf("%d of %d  pg %d/%d", len(p.problems), p.total, page, pages)
	if p.filter.Difficulty != "" {
		info += "  [" + strings.ToLower(p.filter.Difficulty) + "]"
	}
	if n := p.app.Notification(); n != "" {
		info = n
	}
	k := p.keys
	writeRow(g, h-1, " "+info+"  |  "+hints(k.Down, k.NextPage, k.Search, k.Difficulty, k.Refresh, k.Open, k.Logout, k.Quit), core.StyleDim, true)
	return nil
}

func (p *ProblemList) renderHeader(g *core.Grid, y, titleWidth int) {
	x := 0
	for _, col := range []struct {
		text  string
		width int
	}{{" ", colStatus}, {"#", colID}, {"Title", titleWidth}, {"Difficulty", colDiff}, {"AC%", colAC}} {
		g.SetString(x, y, PadRight(col.text, col.width), core.StyleBold, -1)
		x += col.width
	}
}

func (p *ProblemList) renderRow(g *core.Grid, y int, s leetcode.ProblemSummary, titleWidth int, selected bool) {
	icon, iconStyle := statusIcon[s.Status], statusStyle[s.Status]
	if s.PaidOnly {
		icon, iconStyle = "$", core.StyleNone
	}
	ac := fmt.Sprintf("%.1f%%", s.ACRate)
	title := Truncate(s.Title, titleWidth-1)

	if selected {
		line := PadRight(icon, colStatus) + PadRight(s.FrontendID, colID) + PadRight(title, titleWidth) +
			PadRight(s.Difficulty, colDiff) + PadRight(ac, colAC)
		g.SetString(0, y, PadRight(line, g.Width()), core.StyleReverse, -1)
		return
	}

	x := 0
	g.SetString(x, y, icon, iconStyle, colStatus)
	x += colStatus
	g.SetString(x, y, s.FrontendID, core.StyleNone, colID)
	x += colID
	g.SetString(x, y, title, core.StyleNone, titleWidth)
	x += titleWidth
	g.SetString(x, y, s.Difficulty, difficultyStyle[s.Difficulty], colDiff)
	x += colDiff
	g.SetString(x, y, ac, core.StyleNone, colAC)
}

func (p *ProblemList) HandleKey(ev core.KeyEvent) error {
	if p.searching {
		p.handleSearch(ev)
		return nil
	}

	k := p.keys
	switch {
	case key.Matches(ev, k.Down):
		if p.cursor < len(p.problems)-1 {
			p.cursor++
			p.Invalidate()
		}
	case key.Matches(ev, k.Up):
		if p.cursor > 0 {
			p.cursor--
			p.Invalidate()
		}
	case key.Matches(ev, k.NextPage):
		if p.filter.Skip+p.filter.Limit < p.total {
			p.filter.Skip += p.filter.Limit
			p.fetch()
		}
	case key.Matches(ev, k.PrevPage):
		if p.filter.Skip > 0 {
			p.filter.Skip = max(0, p.filter.Skip-p.filter.Limit)
			p.fetch()
		}
	case key.Matches(ev, k.Search):
		p.searching = true
		p.search.SetValue(p.filter.Search)
		p.Invalidate()
	case key.Matches(ev, k.Difficulty):
		p.filter.Difficulty = nextDifficulty(p.filter.Difficulty)
		p.filter.Skip = 0
		p.fetch()
	case key.Matches(ev, k.Refresh):
		p.filter.Skip = 0
		p.fetch()
	case key.Matches(ev, k.Open):
		p.open()
	case key.Matches(ev, k.Logout):
		p.app.Logout()
	case key.Matches(ev, k.Quit):
		p.app.Stop()
	}
	return nil
}

func nextDifficulty(current string) string {
	for i, d := range difficultyCycle {
		if d == current {
			return difficultyCycle[(i+1)%len(difficultyCycle)]
		}
	}
	return difficultyCycle[0]
}

func (p *ProblemList) handleSearch(ev core.KeyEvent) {
	switch ev.Key {
	case core.KeyEscape:
		p.searching = false
		p.Invalidate()
	case core.KeyEnter:
		p.searching = false
		p.filter.Search = strings.TrimSpace(p.search.Value())
		p.filter.Skip = 0
		p.fetch()
	default:
		if p.search.HandleKey(ev) {
			p.Invalidate()
		}
	}
}

func (p *ProblemList) open() {
	if p.cursor >= len(p.problems) {
		return
	}
	s := p.problems[p.cursor]
	if s.PaidOnly {
		p.app.Notify("Premium problem -- not available.")
		return
	}
	p.app.Push(NewProblemDetail(p.app, s.TitleSlug))
}
