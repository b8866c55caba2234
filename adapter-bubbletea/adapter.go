package bubble_adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/logging"
	"golang.org/x/term"
)

// ErrClosed is returned by PollKey once the program has exited.
var ErrClosed = fmt.Errorf("terminal closed: %w", io.EOF)

const keyBuffer = 64

type frameMsg string

type clearMsg struct{}

type quitMsg struct{}

// model is the bubbletea side of the terminal. It only forwards input and
// paints the last frame it was sent.
type model struct {
	keys  chan<- core.KeyEvent
	size  func(w, h int)
	frame string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		select {
		case m.keys <- convertBubbleKey(msg):
		default:
			logging.Warn("key buffer is full, dropping %s", msg.String())
		}

	case tea.WindowSizeMsg:
		if m.size != nil {
			m.size(msg.Width, msg.Height)
		}

	case frameMsg:
		m.frame = string(msg)

	case clearMsg:
		return m, tea.ClearScreen

	case quitMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m model) View() string {
	return m.frame
}

// Terminal runs a bubbletea program as the display and keyboard of a
// cooperative render loop.
type Terminal struct {
	program  *tea.Program
	keys     chan core.KeyEvent
	renderer *renderer

	mu     sync.Mutex
	width  int
	height int

	started bool
	done    chan struct{}
	runErr  error
}

type Option func(*options)

type options struct {
	theme     Theme
	altScreen bool
	input     io.Reader
	output    io.Writer
}

func WithTheme(theme Theme) Option {
	return func(o *options) { o.theme = theme }
}

// WithIO replaces stdin/stdout, mostly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.input = in
		o.output = out
		o.altScreen = false
	}
}

func New(opts ...Option) *Terminal {
	o := options{theme: DefaultTheme, altScreen: true}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Terminal{
		keys:     make(chan core.KeyEvent, keyBuffer),
		renderer: newRenderer(o.theme),
		done:     make(chan struct{}),
	}

	m := model{keys: t.keys, size: t.setSize}

	var progOpts []tea.ProgramOption
	if o.altScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if o.input != nil {
		progOpts = append(progOpts, tea.WithInput(o.input))
	}
	if o.output != nil {
		progOpts = append(progOpts, tea.WithOutput(o.output))
	}

	t.program = tea.NewProgram(m, progOpts...)
	return t
}

// Start runs the program in the background. It returns immediately.
func (t *Terminal) Start() {
	t.started = true
	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			t.runErr = err
			logging.Error("terminal: %v", err)
		}
	}()
}

// Close stops the program and waits for the terminal to be restored.
func (t *Terminal) Close() error {
	if !t.started {
		return nil
	}
	t.program.Send(quitMsg{})
	select {
	case <-t.done:
	case <-time.After(2 * time.Second):
		t.program.Kill()
		<-t.done
	}
	return t.runErr
}

func (t *Terminal) setSize(w, h int) {
	t.mu.Lock()
	t.width, t.height = w, h
	t.mu.Unlock()
}

// Size reports the last known terminal size. Before the first resize
// message it asks the tty directly, then falls back to 80x24.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	w, h := t.width, t.height
	t.mu.Unlock()
	if w > 0 && h > 0 {
		return w, h
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}

// PollKey waits at most timeout for one key event.
func (t *Terminal) PollKey(timeout time.Duration) (core.KeyEvent, bool, error) {
	select {
	case ev := <-t.keys:
		return ev, true, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.keys:
		return ev, true, nil
	case <-t.done:
		return core.KeyEvent{}, false, ErrClosed
	case <-timer.C:
		return core.KeyEvent{}, false, nil
	}
}

// Flush paints grid as the next frame.
func (t *Terminal) Flush(grid *core.Grid) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}
	t.program.Send(frameMsg(t.renderer.Render(grid)))
	return nil
}

// Clear wipes the display before the next frame. Before Start the screen
// is fresh and there is nothing to clear.
func (t *Terminal) Clear() {
	if !t.started {
		return
	}
	t.program.Send(clearMsg{})
}
