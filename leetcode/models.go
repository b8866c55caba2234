package leetcode

import "strings"

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProblemSummary is one row of the problem list. Status is "ac", "notac"
// or empty.
type ProblemSummary struct {
	FrontendID string     `json:"frontendQuestionId"`
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Difficulty string     `json:"difficulty"`
	ACRate     float64    `json:"acRate"`
	PaidOnly   bool       `json:"paidOnly"`
	Status     string     `json:"status"`
	TopicTags  []TopicTag `json:"topicTags"`
}

type ProblemPage struct {
	Total     int              `json:"total"`
	Questions []ProblemSummary `json:"questions"`
}

type CodeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

type ProblemDetail struct {
	QuestionID       string        `json:"questionId"`
	FrontendID       string        `json:"questionFrontendId"`
	Title            string        `json:"title"`
	TitleSlug        string        `json:"titleSlug"`
	Content          string        `json:"content"` // HTML
	Difficulty       string        `json:"difficulty"`
	ExampleTestcases []string      `json:"exampleTestcaseList"`
	CodeSnippets     []CodeSnippet `json:"codeSnippets"`
	TopicTags        []TopicTag    `json:"topicTags"`
	Hints            []string      `json:"hints"`
	Stats            string        `json:"stats"`
	PaidOnly         bool          `json:"isPaidOnly"`
}

func (d *ProblemDetail) Snippet(langSlug string) (CodeSnippet, bool) {
	for _, s := range d.CodeSnippets {
		if s.LangSlug == langSlug {
			return s, true
		}
	}
	return CodeSnippet{}, false
}

func (d *ProblemDetail) TagNames() []string {
	names := make([]string, len(d.TopicTags))
	for i, t := range d.TopicTags {
		names[i] = t.Name
	}
	return names
}

// Submission status codes reported by the check endpoint.
const (
	StatusAccepted     = 10
	StatusWrongAnswer  = 11
	StatusTLE          = 14
	StatusRuntimeError = 15
	StatusCompileError = 20
)

var statusMessages = map[int]string{
	StatusAccepted:     "Accepted",
	StatusWrongAnswer:  "Wrong Answer",
	StatusTLE:          "Time Limit Exceeded",
	StatusRuntimeError: "Runtime Error",
	StatusCompileError: "Compile Error",
}

type TestCaseResult struct {
	Input    string
	Expected string
	Actual   string
	Passed   bool
}

// TestResult is the outcome of running code against the example cases.
type TestResult struct {
	RunSuccess     bool     `json:"run_success"`
	StatusCode     int      `json:"status_code"`
	StatusMsg      string   `json:"status_msg"`
	TotalCorrect   int      `json:"total_correct"`
	TotalTestcases int      `json:"total_testcases"`
	Runtime        string   `json:"status_runtime"`
	Memory         string   `json:"status_memory"`
	CodeOutput     []string `json:"code_output"`
	ExpectedOutput []string `json:"expected_code_answer"`
	StdOutput      []string `json:"std_output_list"`
	CompileError   string   `json:"compile_error"`
	FullCompile    string   `json:"full_compile_error"`
	RuntimeError   string   `json:"runtime_error"`
	FullRuntime    string   `json:"full_runtime_error"`

	Cases []TestCaseResult `json:"-"`
}

// buildCases pairs outputs with the inputs that produced them.
func (r *TestResult) buildCases(inputs []string) {
	n := max(len(r.CodeOutput), len(r.ExpectedOutput))
	r.Cases = make([]TestCaseResult, n)
	for i := range n {
		c := TestCaseResult{
			Actual:   at(r.CodeOutput, i),
			Expected: at(r.ExpectedOutput, i),
			Input:    strings.ReplaceAll(at(inputs, i), "\n", ", "),
		}
		c.Passed = c.Actual == c.Expected
		r.Cases[i] = c
	}
}

func (r *TestResult) Passed() int {
	n := 0
	for _, c := range r.Cases {
		if c.Passed {
			n++
		}
	}
	return n
}

func (r *TestResult) CompileErr() string { return firstNonEmpty(r.FullCompile, r.CompileError) }
func (r *TestResult) RuntimeErr() string { return firstNonEmpty(r.FullRuntime, r.RuntimeError) }

// SubmissionResult is the outcome of a full submission.
type SubmissionResult struct {
	StatusCode        int     `json:"status_code"`
	StatusMsg         string  `json:"status_msg"`
	RunSuccess        bool    `json:"run_success"`
	TotalCorrect      int     `json:"total_correct"`
	TotalTestcases    int     `json:"total_testcases"`
	Runtime           string  `json:"status_runtime"`
	Memory            string  `json:"status_memory"`
	RuntimePercentile float64 `json:"runtime_percentile"`
	MemoryPercentile  float64 `json:"memory_percentile"`
	Input             string  `json:"input"`
	ExpectedOutput    string  `json:"expected_output"`
	CodeOutput        string  `json:"code_output"`
	CompileError      string  `json:"compile_error"`
	FullCompile       string  `json:"full_compile_error"`
	RuntimeError      string  `json:"runtime_error"`
	FullRuntime       string  `json:"full_runtime_error"`
}

func (r *SubmissionResult) Accepted() bool { return r.StatusCode == StatusAccepted }

func (r *SubmissionResult) DisplayStatus() string {
	if msg, ok := statusMessages[r.StatusCode]; ok {
		return msg
	}
	return r.StatusMsg
}

func (r *SubmissionResult) CompileErr() string { return firstNonEmpty(r.FullCompile, r.CompileError) }
func (r *SubmissionResult) RuntimeErr() string { return firstNonEmpty(r.FullRuntime, r.RuntimeError) }

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
