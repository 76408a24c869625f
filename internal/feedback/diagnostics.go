package feedback

import (
	"fmt"
	"strings"

	"github.com/ppiankov/douessay/internal/model"
)

// Diagnostics renders the subsystem-branded summaries over existing features
func Diagnostics(subs model.SubsystemScores, f model.Features) map[model.Subsystem]model.Diagnostic {
	return map[model.Subsystem]model.Diagnostic{
		model.SubsystemArgus: {
			Score:   subs.Argus,
			Summary: fmt.Sprintf("Argument analysis: %s argument, %s counter-argument handling", strings.ToLower(f.Argument.Label), strings.ToLower(f.CounterArgument.Sophistication)),
			Details: []string{
				fmt.Sprintf("Thesis: %s (%.2f)", f.Thesis.Label, f.Thesis.Score),
				fmt.Sprintf("Counter-arguments: %d, rebuttals: %d", f.CounterArgument.CounterCount, f.CounterArgument.RebuttalCount),
				fmt.Sprintf("Fallacy triggers: %d", f.Argument.FallacyCount),
			},
		},
		model.SubsystemNexus: {
			Score:   subs.Nexus,
			Summary: fmt.Sprintf("Evidence: %s (ratio %.2f)", f.Evidence.Label, f.Evidence.Ratio),
			Details: []string{
				fmt.Sprintf("Explicit evidence phrases: %d", f.Evidence.ExplicitCount),
				fmt.Sprintf("Statistics: %d, quotations: %d, years: %d", f.Evidence.Statistics, f.Evidence.Quotations, f.Evidence.Years),
				fmt.Sprintf("Real-world connections: %d", f.RealWorld.Count),
			},
		},
		model.SubsystemDepthCore: {
			Score:   subs.DepthCore,
			Summary: fmt.Sprintf("Reflection depth: %s", f.Reflection.Label),
			Details: []string{
				fmt.Sprintf("Deep reflection: %d, growth: %d", f.Reflection.DeepCount, f.Reflection.GrowthCount),
				fmt.Sprintf("Analysis markers: %d", f.Analysis.Count),
			},
		},
		model.SubsystemEmpathica: {
			Score:   subs.Empathica,
			Summary: fmt.Sprintf("Tone: %s", f.Emotion.Dominant),
			Details: []string{
				fmt.Sprintf("Engagement: %.0f/100", f.Emotion.Engagement),
				fmt.Sprintf("Authenticity: %.0f/100", f.Emotion.Authenticity),
			},
		},
		model.SubsystemStructura: {
			Score:   subs.Structura,
			Summary: fmt.Sprintf("Structure score: %d/100 across %d paragraphs", f.Structure.StructureScore, f.Structure.Paragraphs),
			Details: []string{
				fmt.Sprintf("Transitions: %d in %d categories", f.Structure.TransitionTotal, f.Structure.CategoriesUsed),
				fmt.Sprintf("Topic sentences: %d explicit, %d implicit", f.Structure.ExplicitTopic, f.Structure.ImplicitTopic),
			},
		},
	}
}

// Progress compares the latest factor scores against the previous submission
func Progress(previous, current model.FactorScores) string {
	var improved, declined []string
	for _, f := range model.Factors {
		d := current.Get(f) - previous.Get(f)
		switch {
		case d >= 0.5:
			improved = append(improved, string(f))
		case d <= -0.5:
			declined = append(declined, string(f))
		}
	}

	switch {
	case len(improved) > 0 && len(declined) > 0:
		return fmt.Sprintf("Progress since your last essay: improved %s; review %s.", strings.Join(improved, ", "), strings.Join(declined, ", "))
	case len(improved) > 0:
		return fmt.Sprintf("Progress since your last essay: improved %s.", strings.Join(improved, ", "))
	case len(declined) > 0:
		return fmt.Sprintf("Compared with your last essay, %s slipped.", strings.Join(declined, ", "))
	}
	return "Your scores are consistent with your last essay."
}
