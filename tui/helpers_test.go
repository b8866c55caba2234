package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/leetcode"
)

type fakeTerminal struct {
	width, height int
	keys          []core.KeyEvent
	pollErrs      []error
	frames        [][]string
	flushErr      error
	clears        int
	polls         int
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{width: 100, height: 30}
}

func (f *fakeTerminal) Size() (int, int) { return f.width, f.height }

func (f *fakeTerminal) PollKey(time.Duration) (core.KeyEvent, bool, error) {
	f.polls++
	if len(f.pollErrs) > 0 {
		err := f.pollErrs[0]
		f.pollErrs = f.pollErrs[1:]
		return core.KeyEvent{}, false, err
	}
	if len(f.keys) == 0 {
		return core.KeyEvent{}, false, nil
	}
	ev := f.keys[0]
	f.keys = f.keys[1:]
	return ev, true, nil
}

func (f *fakeTerminal) Flush(g *core.Grid) error {
	if f.flushErr != nil {
		return f.flushErr
	}
	rows := make([]string, g.Height())
	for y := range rows {
		var sb strings.Builder
		for _, c := range g.Row(y) {
			sb.WriteString(c.Text)
		}
		rows[y] = sb.String()
	}
	f.frames = append(f.frames, rows)
	return nil
}

func (f *fakeTerminal) Clear() { f.clears++ }

func (f *fakeTerminal) press(names ...string) {
	for _, n := range names {
		f.keys = append(f.keys, core.ParseKey(n))
	}
}

func (f *fakeTerminal) typeText(s string) {
	for _, r := range s {
		f.keys = append(f.keys, core.RuneKey(r))
	}
}

// lastFrame joins the most recent frame into one string.
func (f *fakeTerminal) lastFrame() string {
	if len(f.frames) == 0 {
		return ""
	}
	return strings.Join(f.frames[len(f.frames)-1], "\n")
}

type fakeProblems struct {
	mu      sync.Mutex
	page    *leetcode.ProblemPage
	detail  *leetcode.ProblemDetail
	err     error
	filters []leetcode.ListFilter

	// pages overrides page per Skip; hold blocks a Skip until closed.
	pages map[int]*leetcode.ProblemPage
	hold  map[int]chan struct{}
}

func (f *fakeProblems) List(_ context.Context, filter leetcode.ListFilter) (*leetcode.ProblemPage, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	gate := f.hold[filter.Skip]
	page := f.page
	if p, ok := f.pages[filter.Skip]; ok {
		page = p
	}
	err := f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return page, err
}

func (f *fakeProblems) Detail(context.Context, string) (*leetcode.ProblemDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detail, f.err
}

func (f *fakeProblems) lastFilter() leetcode.ListFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters[len(f.filters)-1]
}

type fakeJudge struct {
	mu        sync.Mutex
	test      *leetcode.TestResult
	submit    *leetcode.SubmissionResult
	submitted []string
}

func (f *fakeJudge) Submit(_ context.Context, _, _, lang, code string) (*leetcode.SubmissionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, lang+":"+code)
	return f.submit, nil
}

func (f *fakeJudge) Test(context.Context, string, string, string, string, []string) (*leetcode.TestResult, error) {
	return f.test, nil
}

type fakeSessions struct {
	mu       sync.Mutex
	username string
	err      error
	used     []config.Credentials
}

func (f *fakeSessions) Validate(context.Context, config.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.username, f.err
}

func (f *fakeSessions) Use(c config.Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.used = append(f.used, c)
}

type fakeStore struct {
	saved     []config.UserConfig
	solutions map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{solutions: map[string]string{}}
}

func (f *fakeStore) Save(cfg *config.UserConfig) error {
	f.saved = append(f.saved, *cfg)
	return nil
}

func (f *fakeStore) LoadSolution(slug, lang string) (string, bool, error) {
	code, ok := f.solutions[slug+"/"+lang]
	return code, ok, nil
}

func (f *fakeStore) SaveSolution(slug, lang, code string) error {
	f.solutions[slug+"/"+lang] = code
	return nil
}

type fixture struct {
	term     *fakeTerminal
	problems *fakeProblems
	judge    *fakeJudge
	sessions *fakeSessions
	store    *fakeStore
	app      *App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		term: newFakeTerminal(),
		problems: &fakeProblems{
			page: &leetcode.ProblemPage{Total: 2, Questions: []leetcode.ProblemSummary{
				{FrontendID: "1", Title: "Two Sum", TitleSlug: "two-sum", Difficulty: "Easy", ACRate: 52.5, Status: "ac"},
				{FrontendID: "2", Title: "Locked", TitleSlug: "locked", Difficulty: "Hard", PaidOnly: true},
			}},
			detail: &leetcode.ProblemDetail{
				QuestionID: "1", FrontendID: "1", Title: "Two Sum", TitleSlug: "two-sum", Difficulty: "Easy",
				Content:          "<p>Find two numbers.</p>",
				ExampleTestcases: []string{"[2,7]\n9"},
				CodeSnippets: []leetcode.CodeSnippet{
					{Lang: "Python3", LangSlug: "python3", Code: "class Solution:\n    pass"},
					{Lang: "Go", LangSlug: "golang", Code: "func twoSum() {}"},
				},
			},
		},
		judge:    &fakeJudge{},
		sessions: &fakeSessions{username: "alice"},
		store:    newFakeStore(),
	}
	f.app = NewApp(f.term, Services{
		Problems: f.problems,
		Judge:    f.judge,
		Sessions: f.sessions,
		Store:    f.store,
	}, config.Default(), WithPolling(0, 0))
	f.app.running = true
	t.Cleanup(f.app.shutdown)
	return f
}

// settle ticks until every background task has been applied (or dropped)
// and the screen is redrawn.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for f.app.PendingTasks() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("tasks still pending: %d", f.app.PendingTasks())
		}
		f.app.Tick()
		time.Sleep(time.Millisecond)
	}
	f.app.Tick()
}

// ticks runs n scheduler steps.
func (f *fixture) ticks(n int) {
	for range n {
		f.app.Tick()
	}
}

// drive ticks until every queued key has been dispatched, then settles.
func (f *fixture) drive(t *testing.T) {
	t.Helper()
	for len(f.term.keys) > 0 && f.app.Running() {
		f.app.Tick()
	}
	f.settle(t)
}
