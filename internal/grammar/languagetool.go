package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/util"
	"github.com/ppiankov/douessay/internal/worker"
)

// checkSleepFunc is the sleep function used between retries (overridable in tests)
var checkSleepFunc = time.Sleep

const (
	maxCheckAttempts = 3
	checkBackoffBase = 500 * time.Millisecond
	maxResponseBytes = 4 << 20
)

// LanguageTool checks grammar against a LanguageTool server (POST /v2/check)
type LanguageTool struct {
	endpoint   string
	language   string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// NewLanguageTool builds a client from the grammar config
func NewLanguageTool(cfg model.GrammarConfig) *LanguageTool {
	return &LanguageTool{
		endpoint: strings.TrimRight(cfg.Endpoint, "/") + "/v2/check",
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: util.NewTransport(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
	}
}

type ltResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check sends the text to LanguageTool, retrying transient failures
func (c *LanguageTool) Check(ctx context.Context, text string) ([]Issue, error) {
	var lastErr error
	for attempt := 0; attempt < maxCheckAttempts; attempt++ {
		if attempt > 0 {
			checkSleepFunc(util.Backoff(checkBackoffBase, attempt))
		}

		issues, err := c.check(ctx, text)
		if err == nil {
			return issues, nil
		}
		lastErr = err

		if ctx.Err() != nil || !util.Transient(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxCheckAttempts, lastErr)
}

func (c *LanguageTool) check(ctx context.Context, text string) ([]Issue, error) {
	if err := c.limiter.Wait(ctx, c.endpoint); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, util.NewStatusError(resp.StatusCode)
	}

	var decoded ltResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	issues := make([]Issue, 0, len(decoded.Matches))
	for _, m := range decoded.Matches {
		is := Issue{Offset: m.Offset, Length: m.Length, Message: m.Message, Rule: m.Rule.ID}
		for _, r := range m.Replacements {
			is.Replacements = append(is.Replacements, r.Value)
		}
		issues = append(issues, is)
	}
	return issues, nil
}
