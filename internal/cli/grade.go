package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	essayGrade  string
	userID      string
	targetsFile string
	noCache     bool
)

// gradeCmd represents the grade command
var gradeCmd = &cobra.Command{
	Use:   "grade <file|url|->",
	Short: "Grade a single essay",
	Long: `Grade reads an essay from a file, a URL, or stdin ("-") and reports:
- an overall percentage and Ontario achievement level
- Content, Structure, Grammar, Application and Insight scores (0-10)
- ordered, actionable feedback

Example:
  douessay grade essay.txt --grade 11
  douessay grade https://example.com/essay.html --md report.md
  cat essay.txt | douessay grade - --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGrade,
}

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess <file|url|->",
	Short: "Produce the accuracy-testing view of an essay",
	Long: `Assess prints factor scores, subsystem scores, confidence intervals and
inline feedback as JSON. With --targets, teacher target scores are used to
calibrate the factors (AutoAlign) instead of the grade curve.

Example:
  douessay assess essay.txt --grade 12 --targets targets.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(assessCmd)

	for _, cmd := range []*cobra.Command{gradeCmd, assessCmd} {
		cmd.Flags().StringVarP(&essayGrade, "grade", "g", "", "grade level 9-12 (default: grading.default_grade)")
		cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the grammar result cache")
		cmd.Flags().Bool("grammar", false, "check grammar with LanguageTool")
		cmd.Flags().String("grammar-url", "", "LanguageTool base URL")
		cmd.Flags().Bool("insecure", false, "skip TLS certificate verification when fetching URLs")
	}

	gradeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	gradeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	gradeCmd.Flags().StringVar(&userID, "user", "", "student identifier for progress tracking")
	gradeCmd.Flags().Bool("features", false, "include raw extracted features in the result")
	gradeCmd.Flags().Bool("no-footer", false, "disable footer in Markdown reports")

	assessCmd.Flags().StringVar(&targetsFile, "targets", "", "JSON file with teacher target scores")
}

// bindCommandFlags binds the flags of the running command to config keys
func bindCommandFlags(cmd *cobra.Command) {
	bindings := map[string]string{
		"grammar":     "grammar.enabled",
		"grammar-url": "grammar.endpoint",
		"insecure":    "fetch.insecure",
		"features":    "grading.include_features",
		"workers":     "concurrency.workers",
		"addr":        "server.addr",
	}
	for flag, key := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

// commandConfig loads config after applying the command's flags
func commandConfig(cmd *cobra.Command) (*model.Config, error) {
	bindCommandFlags(cmd)
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if f := cmd.Flags().Lookup("no-footer"); f != nil && f.Changed {
		cfg.Output.IncludeFooter = false
	}
	return cfg, nil
}

func resolveGrade(cfg *model.Config) model.GradeLevel {
	if essayGrade == "" {
		return model.ParseGrade(cfg.Grading.DefaultGrade)
	}
	return model.ParseGrade(essayGrade)
}

func runGrade(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	text, err := pipeline.NewSource(cfg.Fetch, os.Stdin).Load(ctx, args[0])
	if err != nil {
		return err
	}

	grade := resolveGrade(cfg)
	if verbose {
		fmt.Fprintf(os.Stderr, "Grading %s as %s\n", args[0], grade)
	}

	result := newGrader(cfg, log).GradeEssayFor(ctx, userID, text, grade)
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON == "" && outMD == "" {
		if err := renderer.WriteJSON(os.Stdout, &result); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outJSON != "" {
		if err := renderer.RenderJSON(&result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(&result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(os.Stderr, args[0], &result)
	return nil
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := commandConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	var targets *model.TeacherTargets
	if targetsFile != "" {
		data, err := os.ReadFile(targetsFile)
		if err != nil {
			return fmt.Errorf("read targets: %w", err)
		}
		targets = &model.TeacherTargets{}
		if err := json.Unmarshal(data, targets); err != nil {
			return fmt.Errorf("parse targets: %w", err)
		}
	}

	ctx := context.Background()
	text, err := pipeline.NewSource(cfg.Fetch, os.Stdin).Load(ctx, args[0])
	if err != nil {
		return err
	}

	assessment := newGrader(cfg, log).AssessEssay(ctx, text, resolveGrade(cfg), targets)
	return pipeline.NewRenderer(false).WriteJSON(os.Stdout, assessment)
}
