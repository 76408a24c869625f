package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/douessay/internal/model"
)

func testFetchConfig() model.FetchConfig {
	return model.FetchConfig{Timeout: 5 * time.Second, UserAgent: "test-agent", MaxBodyBytes: 1 << 20}
}

func TestSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "essay.txt")
	if err := os.WriteFile(path, []byte("My essay text."), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := NewSource(testFetchConfig(), nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "My essay text." {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestSource_MissingFile(t *testing.T) {
	_, err := NewSource(testFetchConfig(), nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil || !strings.Contains(err.Error(), "open essay") {
		t.Errorf("Expected open error, got %v", err)
	}
}

func TestSource_Stdin(t *testing.T) {
	src := NewSource(testFetchConfig(), strings.NewReader("from stdin"))
	text, err := src.Load(context.Background(), StdinSource)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "from stdin" {
		t.Errorf("Unexpected text %q", text)
	}

	if _, err := NewSource(testFetchConfig(), nil).Load(context.Background(), StdinSource); err == nil {
		t.Error("Expected error without stdin")
	}
}

func TestSource_URLStripsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, "<html><head><title>T</title></head><body><p>First paragraph.</p><p>Second paragraph.</p></body></html>")
	}))
	defer server.Close()

	text, err := NewSource(testFetchConfig(), nil).Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("Unexpected text %q", text)
	}
}

func TestIsURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com/essay": true,
		"HTTP://example.com":        true,
		"essay.txt":                 false,
		"-":                         false,
	}
	for in, want := range tests {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
