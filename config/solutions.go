package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidSlug is returned for a slug that cannot be used as a file name.
var ErrInvalidSlug = errors.New("invalid problem slug")

// SolutionPath is where the code for a problem in a language is kept. Slugs
// come from the server and must name a single file inside solutions/.
func (s *Store) SolutionPath(titleSlug, langSlug string) (string, error) {
	if titleSlug == "" || titleSlug == "." || titleSlug == ".." ||
		strings.ContainsAny(titleSlug, `/\`+"\x00") || strings.Contains(titleSlug, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, titleSlug)
	}
	return filepath.Join(s.home, "solutions", titleSlug+Extension(langSlug)), nil
}

// LoadSolution returns the saved code, or ok=false when nothing was saved yet.
func (s *Store) LoadSolution(titleSlug, langSlug string) (code string, ok bool, err error) {
	path, err := s.SolutionPath(titleSlug, langSlug)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load solution %s: %w", titleSlug, err)
	}
	return string(data), true, nil
}

func (s *Store) SaveSolution(titleSlug, langSlug, code string) error {
	path, err := s.SolutionPath(titleSlug, langSlug)
	if err != nil {
		return err
	}
	if err := writeAtomic(path, []byte(code)); err != nil {
		return fmt.Errorf("save solution %s: %w", titleSlug, err)
	}
	return nil
}
