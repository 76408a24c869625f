package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/douessay/internal/cache"
	"github.com/ppiankov/douessay/internal/pipeline"
	"github.com/ppiankov/douessay/internal/worker"
)

var (
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|manifest>",
	Short: "Grade many essays concurrently",
	Long: `Batch grades every essay in a directory (.txt, .md, .html, .htm) or every
entry of a manifest file. Manifest lines are "path[,grade]"; blank lines and
lines starting with # are ignored. One JSON and one Markdown report is written
per essay.

Example:
  douessay batch essays/ --grade 10 --out reports/
  douessay batch class.manifest --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&outputDir, "out", "o", "reports", "output directory")
	batchCmd.Flags().IntP("workers", "w", 0, "concurrent workers (default: number of CPUs)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
	batchCmd.Flags().StringVarP(&essayGrade, "grade", "g", "", "default grade level for essays without one")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the grammar result cache")
	batchCmd.Flags().Bool("grammar", false, "check grammar with LanguageTool")
	batchCmd.Flags().String("grammar-url", "", "LanguageTool base URL")
	batchCmd.Flags().Bool("no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  DouEssay Batch Grading\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	store := cache.New(cfg.Cache)
	processor := worker.NewBatchProcessor(newCachedGrader(cfg, log, store), cfg.Concurrency.Workers, resolveGrade(cfg)).
		OnProgress(func(done, total int) {
			log.Debug("essay graded", "done", done, "total", total)
		})
	results, err := processor.Process(ctx, input)
	if err != nil {
		return fmt.Errorf("process %s: %w", input, err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Result, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		successCount++
		renderer.RenderSummary(os.Stderr, "✓ "+result.Path, result.Result)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d essays\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if reporter, ok := store.(cache.Reporter); ok && cfg.Grammar.Enabled {
		stats := reporter.Stats()
		fmt.Fprintf(os.Stderr, "  Grammar cache: %.0f%% hits (%d memory, %d disk, %d misses)\n",
			stats.HitRate()*100, stats.MemoryHits, stats.DiskHits, stats.Misses)
	}
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d essays failed", failureCount)
	}
	return nil
}

// sanitizeFilename turns an essay path into a report file stem
func sanitizeFilename(path string) string {
	s := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if s == "" || s == "." {
		s = "essay"
	}
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
