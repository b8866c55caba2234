package leetcode

import (
	"context"
	"fmt"
	"strings"

	"github.com/ionut-t/leetshell/logging"
	"golang.org/x/sync/singleflight"
)

const DefaultPageSize = 50

// ListFilter selects a page of the problem set. Difficulty is one of "",
// "EASY", "MEDIUM", "HARD".
type ListFilter struct {
	Limit      int
	Skip       int
	Difficulty string
	Search     string
	Tags       []string
}

func (f ListFilter) cacheKey() string {
	return fmt.Sprintf("problems_%d_%d_%s_%s_%s", f.Limit, f.Skip, f.Difficulty, f.Search, strings.Join(f.Tags, "_"))
}

func (f ListFilter) variables() map[string]any {
	filters := map[string]any{}
	if f.Difficulty != "" {
		filters["difficulty"] = strings.ToUpper(f.Difficulty)
	}
	if len(f.Tags) > 0 {
		filters["tags"] = f.Tags
	}
	if f.Search != "" {
		filters["searchKeywords"] = f.Search
	}
	return map[string]any{
		"categorySlug": "",
		"limit":        f.Limit,
		"skip":         f.Skip,
		"filters":      filters,
	}
}

// ProblemService fetches problems through the on-disk cache. Concurrent
// identical requests share one round trip.
type ProblemService struct {
	client *Client
	cache  *Cache
	group  singleflight.Group
}

func NewProblemService(client *Client, cache *Cache) *ProblemService {
	return &ProblemService{client: client, cache: cache}
}

func (s *ProblemService) List(ctx context.Context, f ListFilter) (*ProblemPage, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	key := f.cacheKey()

	v, err, _ := s.group.Do(key, func() (any, error) {
		var page ProblemPage
		if s.cache.Get(key, ProblemListTTL, &page) {
			return &page, nil
		}

		var data struct {
			List ProblemPage `json:"problemsetQuestionList"`
		}
		if err := s.client.GraphQL(ctx, problemListQuery, f.variables(), &data); err != nil {
			return nil, err
		}
		if err := s.cache.Set(key, data.List); err != nil {
			logging.Warn("problems: %v", err)
		}
		return &data.List, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProblemPage), nil
}

func (s *ProblemService) Detail(ctx context.Context, titleSlug string) (*ProblemDetail, error) {
	key := "detail_" + titleSlug

	v, err, _ := s.group.Do(key, func() (any, error) {
		var detail ProblemDetail
		if s.cache.Get(key, ProblemDetailTTL, &detail) {
			return &detail, nil
		}

		var data struct {
			Question *ProblemDetail `json:"question"`
		}
		vars := map[string]any{"titleSlug": titleSlug}
		if err := s.client.GraphQL(ctx, questionDetailQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Question == nil {
			return nil, &APIError{Message: "problem not found: " + titleSlug}
		}
		if err := s.cache.Set(key, data.Question); err != nil {
			logging.Warn("problems: %v", err)
		}
		return data.Question, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ProblemDetail), nil
}
