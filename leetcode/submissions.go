package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ionut-t/leetshell/logging"
)

const (
	PollInterval = 1500 * time.Millisecond
	PollTimeout  = 30 * time.Second
)

type SubmissionService struct {
	client   *Client
	interval time.Duration
	timeout  time.Duration
}

func NewSubmissionService(client *Client) *SubmissionService {
	return &SubmissionService{client: client, interval: PollInterval, timeout: PollTimeout}
}

// SetPolling overrides the check interval and the overall wait.
func (s *SubmissionService) SetPolling(interval, timeout time.Duration) {
	s.interval = interval
	s.timeout = timeout
}

type runRequest struct {
	QuestionID string `json:"question_id"`
	Lang       string `json:"lang"`
	TypedCode  string `json:"typed_code"`
	DataInput  string `json:"data_input,omitempty"`
}

// Submit judges code against the full test set.
func (s *SubmissionService) Submit(ctx context.Context, titleSlug, questionID, lang, code string) (*SubmissionResult, error) {
	var resp struct {
		SubmissionID json.Number `json:"submission_id"`
	}
	req := runRequest{QuestionID: questionID, Lang: lang, TypedCode: code}
	if err := s.client.Post(ctx, "/problems/"+titleSlug+"/submit/", req, &resp); err != nil {
		return nil, err
	}
	if resp.SubmissionID == "" {
		return nil, &APIError{Message: "no submission_id in response"}
	}

	var result SubmissionResult
	if err := s.poll(ctx, resp.SubmissionID.String(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Test runs code against inputs, one example case per entry.
func (s *SubmissionService) Test(ctx context.Context, titleSlug, questionID, lang, code string, inputs []string) (*TestResult, error) {
	var resp struct {
		InterpretID string `json:"interpret_id"`
	}
	req := runRequest{QuestionID: questionID, Lang: lang, TypedCode: code, DataInput: strings.Join(inputs, "\n")}
	if err := s.client.Post(ctx, "/problems/"+titleSlug+"/interpret_solution/", req, &resp); err != nil {
		return nil, err
	}
	if resp.InterpretID == "" {
		return nil, &APIError{Message: "no interpret_id in response"}
	}

	var result TestResult
	if err := s.poll(ctx, resp.InterpretID, &result); err != nil {
		return nil, err
	}
	result.buildCases(inputs)
	return &result, nil
}

// poll queries the check endpoint until the judge leaves the PENDING and
// STARTED states, then decodes the final document into out.
func (s *SubmissionService) poll(ctx context.Context, id string, out any) error {
	path := fmt.Sprintf("/submissions/detail/%s/check/", id)
	deadline := time.Now().Add(s.timeout)

	for time.Now().Before(deadline) {
		var raw json.RawMessage
		if err := s.client.Get(ctx, path, &raw); err != nil {
			return err
		}

		var state struct {
			State string `json:"state"`
		}
		if err := json.Unmarshal(raw, &state); err != nil {
			return &APIError{Message: fmt.Sprintf("decode check response: %v", err)}
		}
		logging.Debug("leetcode: check %s: %s", id, state.State)

		if state.State != "" && state.State != "PENDING" && state.State != "STARTED" {
			if err := json.Unmarshal(raw, out); err != nil {
				return &APIError{Message: fmt.Sprintf("decode result: %v", err)}
			}
			return nil
		}
		if err := sleep(ctx, s.interval); err != nil {
			return err
		}
	}
	return &APIError{Message: "timed out waiting for submission result"}
}
