package tui

import (
	"context"

	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/core"
	"github.com/ionut-t/leetshell/leetcode"
)

type ProblemSource interface {
	List(ctx context.Context, f leetcode.ListFilter) (*leetcode.ProblemPage, error)
	Detail(ctx context.Context, titleSlug string) (*leetcode.ProblemDetail, error)
}

type Judge interface {
	Submit(ctx context.Context, titleSlug, questionID, lang, code string) (*leetcode.SubmissionResult, error)
	Test(ctx context.Context, titleSlug, questionID, lang, code string, inputs []string) (*leetcode.TestResult, error)
}

// SessionChecker validates credentials and installs accepted ones.
type SessionChecker interface {
	Validate(ctx context.Context, creds config.Credentials) (string, error)
	Use(creds config.Credentials)
}

type Store interface {
	Save(cfg *config.UserConfig) error
	LoadSolution(titleSlug, langSlug string) (string, bool, error)
	SaveSolution(titleSlug, langSlug, code string) error
}

// Services are the collaborators screens reach through the App.
type Services struct {
	Problems  ProblemSource
	Judge     Judge
	Sessions  SessionChecker
	Store     Store
	Clipboard core.Clipboard
}
