// Package feedback assembles human-readable feedback from scores and features.
package feedback

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/ppiankov/douessay/internal/extract"
	"github.com/ppiankov/douessay/internal/model"
)

// Input is everything feedback generation reads
type Input struct {
	Text       string
	Grade      model.GradeLevel
	Percentage float64
	Level      model.RubricLevel
	Scores     model.FactorScores
	Features   model.Features
	Grammar    model.GrammarSummary
}

// Factor band cutoffs (0-10)
const (
	bandStrong     = 8.5
	bandSolid      = 7.0
	bandDeveloping = 5.0
)

var factorTemplates = map[model.Factor][4][]string{
	model.FactorContent: {
		{"Your argument is compelling and well supported (%.1f/10).", "Content is a clear strength: your ideas are developed with convincing support (%.1f/10)."},
		{"Your content is solid; push your analysis further to explain why each example matters (%.1f/10).", "Good ideas overall (%.1f/10). Deepen the analysis that follows your evidence."},
		{"Your ideas are developing (%.1f/10). State your thesis clearly and support each claim with specific evidence.", "Content needs more support (%.1f/10). Add concrete examples and explain how they prove your point."},
		{"Content is the main area to improve (%.1f/10). Start with a clear position and back it with evidence.", "Your main argument is hard to follow (%.1f/10). Build each paragraph around one supported claim."},
	},
	model.FactorStructure: {
		{"Your essay is very well organized (%.1f/10).", "Excellent organization and flow between ideas (%.1f/10)."},
		{"Structure is clear (%.1f/10); smoother transitions would strengthen the flow.", "Well organized overall (%.1f/10). Link paragraphs more explicitly."},
		{"Organization is developing (%.1f/10). Use topic sentences and a clear conclusion.", "Structure needs work (%.1f/10). Make sure each paragraph has one clear purpose."},
		{"Your essay needs a clearer structure (%.1f/10): introduction, body paragraphs, and conclusion.", "Organize your ideas into distinct paragraphs (%.1f/10)."},
	},
	model.FactorGrammar: {
		{"Grammar and mechanics are excellent (%.1f/10).", "Very few language errors (%.1f/10)."},
		{"Grammar is generally strong (%.1f/10); proofread for minor slips.", "Mostly accurate language (%.1f/10). A careful proofread will catch the rest."},
		{"Several grammar issues affect clarity (%.1f/10).", "Proofread carefully; grammar errors distract from your ideas (%.1f/10)."},
		{"Frequent grammar errors make the essay hard to read (%.1f/10).", "Review sentence construction and punctuation (%.1f/10)."},
	},
	model.FactorApplication: {
		{"You connect your ideas to the real world convincingly (%.1f/10).", "Strong real-world application and reflection (%.1f/10)."},
		{"Good connections beyond the classroom (%.1f/10); add one more concrete application.", "Application is solid (%.1f/10). Show how your ideas matter in everyday life."},
		{"Connect your argument to real-world situations more often (%.1f/10).", "Application is developing (%.1f/10). Explain why this topic matters outside school."},
		{"Your essay rarely connects to life beyond the topic (%.1f/10).", "Add real-world examples and personal connections (%.1f/10)."},
	},
	model.FactorInsight: {
		{"Your personal insight is thoughtful and mature (%.1f/10).", "Excellent reflection on what you learned (%.1f/10)."},
		{"Good personal insight (%.1f/10); reflect a little more on how your thinking changed.", "Insight is solid (%.1f/10). Share what this topic taught you."},
		{"Add more personal reflection (%.1f/10). What did you realize or learn?", "Insight is developing (%.1f/10). Include your own perspective."},
		{"Your essay lacks personal voice (%.1f/10). Reflect on your own experience.", "Show your own thinking and what you learned (%.1f/10)."},
	},
}

// Build returns ordered feedback lines: overall, one line per factor, then notes
func Build(in Input) []string {
	lines := []string{
		pick(in.Text, "overall", []string{
			fmt.Sprintf("Overall: %.1f%% (%s) - %s.", in.Percentage, in.Level.Level, in.Level.Description),
			fmt.Sprintf("Your essay earned %.1f%%, %s: %s.", in.Percentage, in.Level.Level, in.Level.Description),
		}),
	}

	for _, f := range model.Factors {
		score := in.Scores.Get(f)
		variants := factorTemplates[f][band(score)]
		lines = append(lines, fmt.Sprintf(pick(in.Text, string(f), variants), score))
	}

	f := in.Features
	if !f.Thesis.HasThesis {
		lines = append(lines, "State your thesis clearly in the first paragraph.")
	}
	if f.Evidence.Label == "Needs Improvement" || f.Evidence.Label == "Developing" {
		lines = append(lines, fmt.Sprintf("Evidence is %s (claim-evidence ratio %.2f). Support each claim with an example, statistic, or quotation.", strings.ToLower(f.Evidence.Label), f.Evidence.Ratio))
	}

	switch f.CounterArgument.Sophistication {
	case extract.HighlySophisticated, extract.Sophisticated:
		lines = append(lines, fmt.Sprintf("Counter-arguments: %s. You address opposing views and rebut them.", f.CounterArgument.Sophistication))
	default:
		if f.CounterArgument.CounterCount > 0 && f.CounterArgument.RebuttalCount == 0 {
			lines = append(lines, "You mention an opposing view; follow it with a rebuttal (e.g. \"However, ...\").")
		} else if in.Grade >= 11 {
			lines = append(lines, "Acknowledge and rebut a counter-argument to strengthen your position.")
		}
	}

	if f.Argument.FallacyCount > 0 {
		lines = append(lines, fmt.Sprintf("Avoid unsupported generalizations such as %q.", strings.Join(f.Argument.Fallacies, "\", \"")))
	}

	if f.Emotion.Dominant != model.ToneNeutral {
		lines = append(lines, fmt.Sprintf("Dominant tone: %s (engagement %.0f/100).", f.Emotion.Dominant, f.Emotion.Engagement))
	}

	lines = append(lines, f.Structure.Recommendations...)

	lines = append(lines, grammarLine(in.Grammar))
	return lines
}

// ShortEssay returns feedback for essays below the minimum length
func ShortEssay(length, minChars int) []string {
	return []string{
		fmt.Sprintf("Your essay is too short (%d characters) for a full assessment; aim for at least %d.", length, minChars),
		"Expand your response with a clear thesis, supporting evidence, and a conclusion.",
		"Develop each idea into its own paragraph and explain why it matters.",
	}
}

// TemporaryError is the single user-facing message for an unexpected failure
const TemporaryError = "A temporary grading error occurred. Please try again."

func grammarLine(g model.GrammarSummary) string {
	switch {
	case !g.Checked:
		return "Grammar check unavailable; grammar scored at a neutral default."
	case g.ErrorCount == 0:
		return "No grammar issues detected."
	case len(g.Replacements) > 0:
		n := len(g.Replacements)
		if n > 3 {
			n = 3
		}
		return fmt.Sprintf("%d grammar issue(s) found. Suggested fixes: %s.", g.ErrorCount, strings.Join(g.Replacements[:n], ", "))
	}
	return fmt.Sprintf("%d grammar issue(s) found.", g.ErrorCount)
}

func band(score float64) int {
	switch {
	case score >= bandStrong:
		return 0
	case score >= bandSolid:
		return 1
	case score >= bandDeveloping:
		return 2
	}
	return 3
}

// pick chooses a phrasing variant from a hash of the essay text and key
func pick(text, key string, variants []string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return variants[int(h.Sum32()%uint32(len(variants)))]
}
