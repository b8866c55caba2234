package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/core"
)

const (
	SessionEnv = "LEETCODE_SESSION"
	CSRFEnv    = "LEETCODE_CSRFTOKEN"
)

var logo = []string{
	`  _         _    ___         _       `,
	` | |___ ___| |_ / __|___  __| |___   `,
	` | / -_) -_)  _| (__/ _ \/ _` + "`" + ` / -_)  `,
	` |_\___\___|\__|\___\___/\__,_\___|  `,
	`       _        _ _  `,
	`  ___ | |_  ___| | | `,
	` (_-< | ' \/ -_) | | `,
	` /__/ |_||_\___|_|_| `,
}

type loginStep int

const (
	stepMethod loginStep = iota
	stepSession
	stepCSRF
)

type loginKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
}

var defaultLoginKeys = loginKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("arrows", "navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

// Login collects LEETCODE_SESSION and csrftoken cookies, typed in or taken
// from the environment, and validates them before handing them to the app.
type Login struct {
	Base
	app  *App
	keys loginKeys

	step    loginStep
	cursor  int
	options []string

	input   *lineInput
	session string

	status      string
	statusStyle string
	busy        bool

	getenv func(string) string
}

func NewLogin(app *App) *Login {
	return &Login{
		Base:   NewBase(KindLogin),
		app:    app,
		keys:   defaultLoginKeys,
		input:  newLineInput(true),
		getenv: os.Getenv,
	}
}

func (l *Login) OnEnter() {
	l.Base.OnEnter()
	l.showMethod()
}

func (l *Login) showMethod() {
	l.step = stepMethod
	l.options = []string{"Manual Cookie Entry", "Use Environment Variables"}
	l.cursor = 0
	l.input.Reset()
	l.Invalidate()
}

func (l *Login) showInput(step loginStep) {
	l.step = step
	l.options = nil
	l.input.Reset()
	l.Invalidate()
}

func (l *Login) setStatus(msg, style string) {
	l.status = msg
	l.statusStyle = style
	l.Invalidate()
}

func (l *Login) Render(g *core.Grid) error {
	w := g.Width()

	logoWidth := 0
	for _, line := range logo {
		logoWidth = max(logoWidth, len(line))
	}
	x := max(0, (w-logoWidth)/2)

	row := 1
	for i, line := range logo {
		style := "yellow"
		if i >= len(logo)/2 {
			style = "bright_cyan"
		}
		g.SetString(x, row, line, style, -1)
		row++
	}

	row++
	tagline := "solve problems without leaving your terminal"
	g.SetString(max(0, (w-len(tagline))/2), row, tagline, core.StyleDim, -1)
	row += 2

	divider := min(logoWidth, w-4)
	g.SetString(max(0, (w-divider)/2), row, strings.Repeat("-", max(divider, 0)), core.StyleDim, -1)
	row += 2

	for i, option := range l.options {
		if i == l.cursor {
			g.SetString(2, row, PadRight("  > "+option, w-4), core.StyleReverse, -1)
		} else {
			g.SetString(2, row, "    "+option, core.StyleNone, -1)
		}
		row++
	}

	if l.step != stepMethod {
		row++
		g.SetString(2, row, "Paste cookies from DevTools (F12) > Application > Cookies", core.StyleNone, -1)
		row++

		prompt := "LEETCODE_SESSION: "
		if l.step == stepCSRF {
			prompt = "csrftoken: "
		}
		l.input.Render(g, 2, row, w-3, prompt, core.StyleNone)
		row++
	}

	if l.status != "" {
		row++
		g.SetString(2, row, l.status, l.statusStyle, w-2)
	}

	statusBar(l.app, g, l.keys.Up, l.keys.Select, l.keys.Back)
	return nil
}

func (l *Login) HandleKey(ev core.KeyEvent) error {
	if l.busy {
		return nil
	}
	if l.step != stepMethod {
		l.handleInput(ev)
		return nil
	}

	switch {
	case key.Matches(ev, l.keys.Up):
		l.cursor = (l.cursor - 1 + len(l.options)) % len(l.options)
		l.Invalidate()
	case key.Matches(ev, l.keys.Down):
		l.cursor = (l.cursor + 1) % len(l.options)
		l.Invalidate()
	case key.Matches(ev, l.keys.Select):
		l.selectMethod()
	case key.Matches(ev, l.keys.Back):
		l.app.LoginResult(nil)
	}
	return nil
}

func (l *Login) handleInput(ev core.KeyEvent) {
	switch {
	case ev.Key == core.KeyEscape:
		l.showMethod()
	case ev.Key == core.KeyEnter:
		l.submitInput()
	default:
		if l.input.HandleKey(ev) {
			l.Invalidate()
		}
	}
}

func (l *Login) selectMethod() {
	if l.cursor == 0 {
		l.status = ""
		l.showInput(stepSession)
		return
	}

	creds := config.Credentials{
		LeetcodeSession: l.getenv(SessionEnv),
		CSRFToken:       l.getenv(CSRFEnv),
	}
	if !creds.Valid() {
		l.setStatus(fmt.Sprintf("Set %s and %s first.", SessionEnv, CSRFEnv), "red")
		return
	}
	l.validate(creds)
}

func (l *Login) submitInput() {
	value := strings.TrimSpace(l.input.Value())
	if value == "" {
		return
	}

	switch l.step {
	case stepSession:
		l.session = value
		l.setStatus("LEETCODE_SESSION saved.", "green")
		l.showInput(stepCSRF)
	case stepCSRF:
		l.validate(config.Credentials{LeetcodeSession: l.session, CSRFToken: value})
	}
}

// validate checks creds in the background; success leaves the screen.
func (l *Login) validate(creds config.Credentials) {
	l.busy = true
	l.setStatus("Validating session...", core.StyleDim)

	l.app.Go(l, "validate-session", func(ctx context.Context) func() {
		username, err := l.app.Services().Sessions.Validate(ctx, creds)
		return func() {
			l.busy = false
			switch {
			case err != nil:
				l.setStatus("Error: "+err.Error(), "red")
				l.retry()
			case username == "":
				l.setStatus("Invalid cookies. Try again.", "red")
				l.retry()
			default:
				l.setStatus("Logged in as "+username, "green")
				l.app.LoginResult(&creds)
			}
		}
	})
}

func (l *Login) retry() {
	if l.step == stepMethod {
		return
	}
	l.showInput(stepSession)
}
