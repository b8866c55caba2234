package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/google/uuid"
	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/leetcode"
	"github.com/ionut-t/leetshell/logging"
)

const (
	DefaultPollTimeout  = 50 * time.Millisecond
	DefaultInputBackoff = 50 * time.Millisecond
	NotifyDuration      = 3 * time.Second
	startupTimeout      = 30 * time.Second
	shutdownTimeout     = 2 * time.Second
)

var quitKey = key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit"))

// App owns the screen stack, the running flag, the notification line and
// every background task. All of its methods must be called from the
// scheduler goroutine; tasks hand results back through Go.
type App struct {
	term     Terminal
	services Services
	config   *config.UserConfig
	grid     *core.Grid

	stack   []Screen
	running bool

	notification string
	notifyUntil  time.Time
	now          func() time.Time

	ctx         context.Context
	cancel      context.CancelFunc
	completions chan completion
	tasks       map[uuid.UUID]*Task
	deferred    []completion
	wg          sync.WaitGroup

	pollTimeout  time.Duration
	inputBackoff time.Duration
}

type Option func(*App)

// WithClock replaces time.Now for notification expiry.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithPolling(timeout, backoff time.Duration) Option {
	return func(a *App) {
		a.pollTimeout = timeout
		a.inputBackoff = backoff
	}
}

func NewApp(term Terminal, services Services, cfg *config.UserConfig, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		term:         term,
		services:     services,
		config:       cfg,
		grid:         core.NewGrid(term.Size()),
		now:          time.Now,
		ctx:          ctx,
		cancel:       cancel,
		completions:  make(chan completion, 64),
		tasks:        make(map[uuid.UUID]*Task),
		pollTimeout:  DefaultPollTimeout,
		inputBackoff: DefaultInputBackoff,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Services() Services         { return a.services }
func (a *App) Config() *config.UserConfig { return a.config }
func (a *App) Running() bool              { return a.running }
func (a *App) Depth() int                 { return len(a.stack) }

// Active returns the top of the stack, or nil when it is empty.
func (a *App) Active() Screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// --- Navigation ---

func (a *App) Push(s Screen) {
	a.stack = append(a.stack, s)
	logging.Info("push %s (depth %d)", s.Kind(), len(a.stack))
	a.term.Clear()
	s.OnEnter()
}

// Pop removes the active screen. The screen underneath is re-entered; an
// empty stack stops the application.
func (a *App) Pop() {
	top := a.popTop()
	if top == nil {
		return
	}
	if next := a.Active(); next != nil {
		a.term.Clear()
		next.OnEnter()
		return
	}
	logging.Info("screen stack empty, exiting")
	a.running = false
}

// Replace swaps the active screen without re-entering the one below.
func (a *App) Replace(s Screen) {
	a.popTop()
	a.Push(s)
}

// ResetTo discards the whole stack and starts over at s.
func (a *App) ResetTo(s Screen) {
	for a.popTop() != nil {
	}
	a.Push(s)
}

func (a *App) popTop() Screen {
	top := a.Active()
	if top == nil {
		return nil
	}
	a.stack = a.stack[:len(a.stack)-1]
	logging.Info("pop %s (depth %d)", top.Kind(), len(a.stack))
	top.OnExit()
	return top
}

func (a *App) contains(id uuid.UUID) bool {
	for _, s := range a.stack {
		if s.ID() == id {
			return true
		}
	}
	return false
}

// Stop ends the loop after the current tick.
func (a *App) Stop() {
	a.running = false
}

// --- Notifications ---

func (a *App) Notify(msg string) {
	a.NotifyFor(msg, NotifyDuration)
}

func (a *App) NotifyFor(msg string, d time.Duration) {
	logging.Debug("notify: %s", msg)
	a.notification = msg
	a.notifyUntil = a.now().Add(d)
	if s := a.Active(); s != nil {
		s.Invalidate()
	}
}

// Notification returns the current message, or "" once it has expired.
func (a *App) Notification() string {
	if a.notification != "" && !a.now().Before(a.notifyUntil) {
		a.notification = ""
	}
	return a.notification
}

// expireNotification redraws the active screen once its message times out.
func (a *App) expireNotification() {
	if a.notification != "" && a.Notification() == "" {
		if s := a.Active(); s != nil {
			s.Invalidate()
		}
	}
}

// --- Session flow ---

// Start pushes the first screen. Saved credentials are checked with the
// server; if it cannot be reached they are trusted.
func (a *App) Start(ctx context.Context) error {
	creds := a.config.Credentials
	if !creds.Valid() {
		a.Push(NewLogin(a))
		return a.started()
	}

	vctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	username, err := a.services.Sessions.Validate(vctx, creds)
	switch {
	case err != nil:
		logging.Warn("session check failed, using saved credentials: %v", err)
		a.Push(NewProblemList(a))
	case username != "":
		logging.Info("signed in as %s", username)
		a.Push(NewProblemList(a))
	default:
		logging.Info("saved session rejected")
		a.Push(NewLogin(a))
	}
	return a.started()
}

func (a *App) started() error {
	if a.Active() == nil {
		return errors.New("no initial screen")
	}
	a.running = true
	return nil
}

// LoginResult finishes the login screen. nil means the user gave up.
func (a *App) LoginResult(creds *config.Credentials) {
	if creds == nil {
		a.Stop()
		return
	}
	a.config.Credentials = *creds
	a.saveConfig()
	a.services.Sessions.Use(*creds)
	a.ResetTo(NewProblemList(a))
}

func (a *App) Logout() {
	a.config.Credentials = config.Credentials{}
	a.saveConfig()
	a.services.Sessions.Use(config.Credentials{})
	a.ResetTo(NewLogin(a))
}

func (a *App) HandleAuthError() {
	logging.Warn("session expired")
	a.ResetTo(NewLogin(a))
	a.Notify("Session expired. Please log in again.")
}

// ReportError routes a collaborator failure: auth errors go back to login,
// anything else becomes a notification.
func (a *App) ReportError(prefix string, err error) {
	if errors.Is(err, leetcode.ErrAuth) {
		a.HandleAuthError()
		return
	}
	logging.Warn("%s%v", prefix, err)
	a.Notify(prefix + err.Error())
}

func (a *App) saveConfig() {
	if a.services.Store == nil {
		return
	}
	if err := a.services.Store.Save(a.config); err != nil {
		logging.Error("save config: %v", err)
		a.Notify(fmt.Sprintf("Could not save config: %v", err))
	}
}

// --- Scheduler ---

// Run drives the loop until the stack empties, Stop is called, ctx is done
// or the terminal goes away.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	if a.Active() == nil {
		return errors.New("run: no screen")
	}
	a.running = true
	for a.running && a.Active() != nil {
		if ctx.Err() != nil {
			return nil
		}
		a.Tick()
	}
	return nil
}

// Tick runs one scheduler step: resize check, render if dirty, apply task
// results, poll one key and dispatch it. Failures are contained here.
func (a *App) Tick() {
	screen := a.Active()
	if screen == nil {
		a.running = false
		return
	}

	w, h := a.term.Size()
	if screen.CheckResize(w, h) {
		logging.Debug("resize %dx%d", w, h)
	}
	if a.grid.Width() != w || a.grid.Height() != h {
		a.grid.Resize(w, h)
	}

	a.expireNotification()
	if screen.Dirty() {
		screen.ClearDirty()
		if err := a.render(screen); err != nil {
			logging.Error("%v", err)
		}
	}

	a.applyCompletions()
	if !a.running {
		return
	}

	ev, ok, err := a.term.PollKey(a.pollTimeout)
	if err != nil {
		if errors.Is(err, io.EOF) {
			logging.Info("terminal closed")
			a.running = false
			return
		}
		logging.Error("%v", &InputError{Err: err})
		time.Sleep(a.inputBackoff)
		return
	}
	if !ok {
		return
	}

	if key.Matches(ev, quitKey) {
		a.Stop()
		return
	}
	if s := a.Active(); s != nil {
		if err := a.dispatch(s, ev); err != nil {
			logging.Error("%v", err)
		}
	}
}

func (a *App) render(s Screen) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Screen: s.Kind(), Err: recovered(r)}
		}
	}()

	a.grid.Clear()
	if err := s.Render(a.grid); err != nil {
		return &RenderError{Screen: s.Kind(), Err: err}
	}
	if err := a.term.Flush(a.grid); err != nil {
		if errors.Is(err, io.EOF) {
			a.running = false
		}
		return &RenderError{Screen: s.Kind(), Err: err}
	}
	return nil
}

func (a *App) dispatch(s Screen, ev core.KeyEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &KeyHandlerError{Screen: s.Kind(), Key: ev.String(), Err: recovered(r)}
		}
	}()

	if err := s.HandleKey(ev); err != nil {
		return &KeyHandlerError{Screen: s.Kind(), Key: ev.String(), Err: err}
	}
	return nil
}

// shutdown cancels background tasks and waits briefly for them.
func (a *App) shutdown() {
	a.running = false
	a.cancel()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		logging.Warn("%d background tasks still running at exit", len(a.tasks))
	}
}
