package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/douessay/internal/model"
)

// Renderer writes grading results as JSON or Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// WriteJSON writes v as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderJSON writes the result to a JSON file
func (r *Renderer) RenderJSON(result *model.GradingResult, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteJSON(w, result) })
}

// RenderMarkdown writes the result to a Markdown file
func (r *Renderer) RenderMarkdown(result *model.GradingResult, path string) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, r.Markdown(result))
		return err
	})
}

// Markdown renders a human-readable report
func (r *Renderer) Markdown(result *model.GradingResult) string {
	var b strings.Builder

	b.WriteString("# Essay Assessment\n\n")
	fmt.Fprintf(&b, "**Score:** %.2f / 100  \n", result.Score)
	fmt.Fprintf(&b, "**Level:** %s (%s)  \n", result.RubricLevel.Level, result.RubricLevel.Description)
	fmt.Fprintf(&b, "**Grade:** %s  \n", result.GradeLevel)
	if result.Fallback {
		b.WriteString("**Note:** fallback result, the full analysis was not run  \n")
	}
	b.WriteString("\n")

	if len(result.DetailedAnalysis.Factors) > 0 {
		b.WriteString("## Factors\n\n")
		b.WriteString("| Factor | Score | Weight |\n|---|---|---|\n")
		for _, f := range model.Factors {
			d, ok := result.DetailedAnalysis.Factors[f]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %.2f / 10 | %.0f%% |\n", f, d.Score, model.FactorWeights[f]*100)
		}
		b.WriteString("\n")
	}

	if len(result.Subsystems) > 0 {
		b.WriteString("## Subsystems\n\n")
		for _, name := range model.Subsystems {
			d, ok := result.Subsystems[name]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "### %s (%.1f)\n\n%s\n\n", name, d.Score, d.Summary)
			for _, line := range d.Details {
				fmt.Fprintf(&b, "- %s\n", line)
			}
			if len(d.Details) > 0 {
				b.WriteString("\n")
			}
		}
	}

	if len(result.Feedback) > 0 {
		b.WriteString("## Feedback\n\n")
		for _, line := range result.Feedback {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	g := result.DetailedAnalysis.Grammar
	b.WriteString("## Grammar\n\n")
	switch {
	case g.Checked:
		fmt.Fprintf(&b, "%d issue(s) reported by the grammar checker.\n\n", g.ErrorCount)
	case g.Note != "":
		fmt.Fprintf(&b, "Not checked: %s.\n\n", g.Note)
	default:
		b.WriteString("Not checked.\n\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n_Request %s. Scores are heuristic estimates and do not replace teacher judgment._\n", result.RequestID)
	}
	return b.String()
}

// RenderSummary prints a one-line summary
func (r *Renderer) RenderSummary(w io.Writer, label string, result *model.GradingResult) {
	status := ""
	if result.Fallback {
		status = " [fallback]"
	}
	fmt.Fprintf(w, "%s: %.1f%% %s%s\n", label, result.Score, result.RubricLevel.Level, status)
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
