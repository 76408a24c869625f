package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/douessay/internal/model"
)

// Grader grades a single essay
type Grader interface {
	GradeEssay(ctx context.Context, text string, grade model.GradeLevel) model.GradingResult
}

// Essay is one batch input
type Essay struct {
	Path  string
	Grade model.GradeLevel
}

// GradeResult is the outcome of grading one batch essay
type GradeResult struct {
	Path   string
	Result *model.GradingResult
	Error  error
}

// gradeFile reads and grades one essay file
func gradeFile(ctx context.Context, grader Grader, e Essay) *GradeResult {
	if err := ctx.Err(); err != nil {
		return &GradeResult{Path: e.Path, Error: fmt.Errorf("grade essay: %w", err)}
	}
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return &GradeResult{Path: e.Path, Error: fmt.Errorf("read essay: %w", err)}
	}

	result := grader.GradeEssay(ctx, string(data), e.Grade)
	return &GradeResult{Path: e.Path, Result: &result}
}

// EssayExtensions are the file types picked up from a directory
var EssayExtensions = []string{".txt", ".md", ".html", ".htm"}

// BatchProcessor grades many essays concurrently
type BatchProcessor struct {
	grader       Grader
	concurrency  int
	defaultGrade model.GradeLevel
	progress     ProgressFunc
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(grader Grader, concurrency int, defaultGrade model.GradeLevel) *BatchProcessor {
	return &BatchProcessor{
		grader:       grader,
		concurrency:  concurrency,
		defaultGrade: model.ParseGrade(defaultGrade),
	}
}

// OnProgress registers a callback reporting how many essays have been graded
func (b *BatchProcessor) OnProgress(fn ProgressFunc) *BatchProcessor {
	b.progress = fn
	return b
}

// ProcessEssays grades every essay and returns results sorted by path
func (b *BatchProcessor) ProcessEssays(ctx context.Context, essays []Essay) []*GradeResult {
	if len(essays) == 0 {
		return []*GradeResult{}
	}

	pool := NewPool[*GradeResult](b.concurrency).OnProgress(b.progress)
	out := Map(ctx, pool, essays, func(ctx context.Context, e Essay) *GradeResult {
		return gradeFile(ctx, b.grader, e)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Process grades a directory of essays or the essays listed in a manifest file
func (b *BatchProcessor) Process(ctx context.Context, path string) ([]*GradeResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var essays []Essay
	if info.IsDir() {
		essays, err = ReadDir(path, b.defaultGrade)
	} else {
		essays, err = ReadManifest(path, b.defaultGrade)
	}
	if err != nil {
		return nil, err
	}
	return b.ProcessEssays(ctx, essays), nil
}

// ReadDir lists essay files in a directory (non-recursive)
func ReadDir(dir string, grade model.GradeLevel) ([]Essay, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var essays []Essay
	for _, e := range entries {
		if e.IsDir() || !isEssayFile(e.Name()) {
			continue
		}
		essays = append(essays, Essay{Path: filepath.Join(dir, e.Name()), Grade: grade})
	}
	return essays, nil
}

// ReadManifest reads essays from a manifest (one "path[,grade]" per line).
// Relative paths resolve against the manifest's directory.
func ReadManifest(manifestPath string, defaultGrade model.GradeLevel) ([]Essay, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(manifestPath)
	var essays []Essay
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		path, gradeField, hasGrade := strings.Cut(line, ",")
		path = strings.TrimSpace(path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}

		grade := defaultGrade
		if hasGrade {
			grade = model.ParseGrade(strings.TrimSpace(gradeField))
		}

		if !seen[path] {
			seen[path] = true
			essays = append(essays, Essay{Path: path, Grade: grade})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return essays, nil
}

func isEssayFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range EssayExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
