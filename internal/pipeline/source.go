package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/douessay/internal/extract"
	"github.com/ppiankov/douessay/internal/model"
)

// StdinSource is the source reference that reads the essay from standard input
const StdinSource = "-"

// Source loads essay text from a file path, stdin, or an http(s) URL
type Source struct {
	fetcher  *Fetcher
	stdin    io.Reader
	maxBytes int64
}

// NewSource creates a loader using the fetch config for URLs
func NewSource(cfg model.FetchConfig, stdin io.Reader) *Source {
	return &Source{
		fetcher:  NewFetcher(cfg),
		stdin:    stdin,
		maxBytes: cfg.MaxBodyBytes,
	}
}

// IsURL reports whether ref should be fetched over HTTP
func IsURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load returns the essay text referenced by ref. HTML documents are reduced to
// their visible text.
func (s *Source) Load(ctx context.Context, ref string) (string, error) {
	switch {
	case ref == StdinSource:
		if s.stdin == nil {
			return "", fmt.Errorf("read stdin: no input")
		}
		data, err := io.ReadAll(s.limit(s.stdin))
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil

	case IsURL(ref):
		res, err := s.fetcher.FetchWithRetry(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", ref, err)
		}
		if res.IsHTML() {
			text, err := extract.StripHTML(res.HTML)
			if err != nil {
				return "", fmt.Errorf("parse HTML: %w", err)
			}
			return text, nil
		}
		return res.HTML, nil

	default:
		f, err := os.Open(ref)
		if err != nil {
			return "", fmt.Errorf("open essay: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(s.limit(f))
		if err != nil {
			return "", fmt.Errorf("read essay: %w", err)
		}
		return string(data), nil
	}
}

func (s *Source) limit(r io.Reader) io.Reader {
	if s.maxBytes <= 0 {
		return r
	}
	return io.LimitReader(r, s.maxBytes)
}
