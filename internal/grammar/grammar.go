// Package grammar talks to an external grammar checker.
package grammar

import (
	"context"
	"errors"
)

// ErrDisabled is returned by a checker that is switched off
var ErrDisabled = errors.New("grammar checker disabled")

// Issue is a single grammar problem
type Issue struct {
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Message      string   `json:"message"`
	Replacements []string `json:"replacements,omitempty"`
	Rule         string   `json:"rule,omitempty"`
}

// Checker checks text and returns the issues found
type Checker interface {
	Check(ctx context.Context, text string) ([]Issue, error)
}

// Disabled is a checker that always reports ErrDisabled
type Disabled struct{}

// Check always returns ErrDisabled
func (Disabled) Check(context.Context, string) ([]Issue, error) {
	return nil, ErrDisabled
}

// Replacements returns the first suggested replacement of each issue
func Replacements(issues []Issue) []string {
	var out []string
	for _, is := range issues {
		if len(is.Replacements) > 0 {
			out = append(out, is.Replacements[0])
		}
	}
	return out
}
