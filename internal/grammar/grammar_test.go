package grammar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/douessay/internal/cache"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/util"
)

const sampleResponse = `{"matches":[
 {"message":"Possible spelling mistake","offset":4,"length":5,"replacements":[{"value":"there"},{"value":"three"}],"rule":{"id":"MORFOLOGIK_RULE_EN_CA"}},
 {"message":"Use a capital letter","offset":0,"length":3,"replacements":[],"rule":{"id":"UPPERCASE_SENTENCE_START"}}
]}`

func noSleep(t *testing.T) {
	t.Helper()
	orig := checkSleepFunc
	checkSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { checkSleepFunc = orig })
}

func testConfig(endpoint string) model.GrammarConfig {
	return model.GrammarConfig{
		Enabled:  true,
		Endpoint: endpoint,
		Language: "en-CA",
		Timeout:  2 * time.Second,
	}
}

func TestLanguageToolCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/check" {
			t.Errorf("Expected path /v2/check, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("language") != "en-CA" {
			t.Errorf("Expected language en-CA, got %q", r.PostForm.Get("language"))
		}
		if r.PostForm.Get("text") != "the thier essay" {
			t.Errorf("Unexpected text %q", r.PostForm.Get("text"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	c := NewLanguageTool(testConfig(server.URL))
	issues, err := c.Check(context.Background(), "the thier essay")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(issues))
	}
	if issues[0].Rule != "MORFOLOGIK_RULE_EN_CA" || issues[0].Offset != 4 || issues[0].Length != 5 {
		t.Errorf("Unexpected first issue: %+v", issues[0])
	}
	if len(issues[0].Replacements) != 2 || issues[0].Replacements[0] != "there" {
		t.Errorf("Unexpected replacements: %v", issues[0].Replacements)
	}

	reps := Replacements(issues)
	if len(reps) != 1 || reps[0] != "there" {
		t.Errorf("Expected [there], got %v", reps)
	}
}

func TestLanguageToolRetriesServerErrors(t *testing.T) {
	noSleep(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	issues, err := NewLanguageTool(testConfig(server.URL)).Check(context.Background(), "text")
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("Expected no issues, got %d", len(issues))
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
}

func TestLanguageToolDoesNotRetryClientErrors(t *testing.T) {
	noSleep(t)

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewLanguageTool(testConfig(server.URL)).Check(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error for 400")
	}
	var statusErr *util.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadRequest {
		t.Errorf("Expected StatusError 400, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
}

func TestLanguageToolGivesUp(t *testing.T) {
	noSleep(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewLanguageTool(testConfig(server.URL)).Check(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	var statusErr *util.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected wrapped 429, got %v", err)
	}
}

func TestLanguageToolContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLanguageTool(testConfig(server.URL)).Check(ctx, "text"); err == nil {
		t.Error("Expected error with cancelled context")
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Check(context.Background(), "text")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}

	if _, ok := New(model.GrammarConfig{Enabled: false}, nil).(Disabled); !ok {
		t.Error("Expected New to return Disabled when grammar is off")
	}
}

type countingChecker struct {
	calls  int
	issues []Issue
	err    error
}

func (c *countingChecker) Check(context.Context, string) ([]Issue, error) {
	c.calls++
	return c.issues, c.err
}

func TestCachedChecker(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	next := &countingChecker{issues: []Issue{{Offset: 1, Length: 2, Message: "m", Rule: "R"}}}
	c := NewCached(next, store, "en-CA")

	for i := 0; i < 3; i++ {
		issues, err := c.Check(context.Background(), "same text")
		if err != nil {
			t.Fatalf("Check failed: %v", err)
		}
		if len(issues) != 1 || issues[0].Rule != "R" {
			t.Errorf("Unexpected issues: %+v", issues)
		}
	}
	if next.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", next.calls)
	}

	if _, err := c.Check(context.Background(), "different text"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if next.calls != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", next.calls)
	}
}

func TestCachedCheckerDoesNotCacheErrors(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	next := &countingChecker{err: errors.New("boom")}
	c := NewCached(next, store, "en-CA")

	for i := 0; i < 2; i++ {
		if _, err := c.Check(context.Background(), "text"); err == nil {
			t.Error("Expected error")
		}
	}
	if next.calls != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", next.calls)
	}
}
