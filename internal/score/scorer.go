// Package score combines extracted features into the five factor scores.
package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/douessay/internal/model"
)

// Scorer calculates factor scores and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Result is the output of a scoring run
type Result struct {
	Scores  model.FactorScores
	Details map[model.Factor]model.FactorDetail
}

// Calculate computes every factor score with its diagnostic signals
func (s *Scorer) Calculate(f model.Features, grammar model.GrammarSummary) Result {
	res := Result{Details: make(map[model.Factor]model.FactorDetail, len(model.Factors))}

	record := func(factor model.Factor, score float64, signals []model.Signal) {
		res.Scores.Set(factor, score)
		res.Details[factor] = model.FactorDetail{Score: score, Signals: signals}
	}

	// 1. Content (thesis, evidence, analysis, argument)
	content, contentSignals := s.Content(f)
	record(model.FactorContent, content, contentSignals)

	// 2. Structure (intro, conclusion, coherence, transitions, topic sentences)
	structure, structureSignals := s.Structure(f.Structure)
	record(model.FactorStructure, structure, structureSignals)

	// 3. Grammar (external checker)
	gram, grammarSignal := Grammar(grammar.ErrorCount, grammar.Checked)
	record(model.FactorGrammar, gram, []model.Signal{grammarSignal})

	// 4. Application (insight, real world, lexical range, reflection)
	application, applicationSignals := s.Application(f)
	record(model.FactorApplication, application, applicationSignals)

	// 5. Insight (derived from reflection and personal insight)
	insight, insightSignal := s.Insight(f)
	record(model.FactorInsight, insight, []model.Signal{insightSignal})

	return res
}

// Content weights
const (
	contentThesisWeight     = 0.20
	contentEvidenceWeight   = 0.20
	contentAnalysisWeight   = 0.15
	contentArgumentWeight   = 0.10
	contentClaimDepthWeight = 0.10
	contentRelevanceWeight  = 0.10
	contentRhetoricWeight   = 0.15
)

// Content calculates the Content factor (0-10)
func (s *Scorer) Content(f model.Features) (float64, []model.Signal) {
	rhetoric := float64(f.Structure.StructureScore) / 100

	components := []struct {
		kind   model.SignalType
		value  float64
		weight float64
		label  string
	}{
		{model.SignalThesis, f.Thesis.Score, contentThesisWeight, f.Thesis.Label},
		{model.SignalEvidence, f.Evidence.Score, contentEvidenceWeight, f.Evidence.Label},
		{model.SignalAnalysis, f.Analysis.Score, contentAnalysisWeight, f.Analysis.Label},
		{model.SignalArgument, f.Argument.Score, contentArgumentWeight, f.Argument.Label},
		{model.SignalClaimDepth, f.ClaimDepth.Score, contentClaimDepthWeight, f.ClaimDepth.Label},
		{model.SignalRelevance, f.Relevance.Score, contentRelevanceWeight, ""},
		{model.SignalRhetoric, rhetoric, contentRhetoricWeight, ""},
	}

	var signals []model.Signal
	base := 0.0
	for _, c := range components {
		base += c.value * c.weight
		signals = append(signals, componentSignal(c.kind, c.value, c.weight, c.label))
	}
	score := base * 10

	// Bonuses
	bonus := 0.0
	var bonusParts []string
	if f.Argument.Score >= 0.7 {
		bonus += 0.3
		bonusParts = append(bonusParts, "argument_strength>=0.7: +0.3")
	}
	if devices := math.Min(0.3, 0.1*float64(f.Vocabulary.RhetoricalDevice)); devices > 0 {
		bonus += devices
		bonusParts = append(bonusParts, fmt.Sprintf("rhetorical_devices: +%.2f", devices))
	}
	if vocab := math.Min(0.4, 0.1*float64(f.Vocabulary.Sophisticated)); vocab > 0 {
		bonus += vocab
		bonusParts = append(bonusParts, fmt.Sprintf("sophisticated_vocabulary: +%.2f", vocab))
	}
	if f.ClaimDepth.Score >= 0.8 {
		bonus += 0.2
		bonusParts = append(bonusParts, "claim_depth>=0.8: +0.2")
	}
	if bonus > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalBonus,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Content bonuses: +%.2f", bonus),
			Data: map[string]interface{}{
				"bonus":   bonus,
				"parts":   bonusParts,
				"formula": "0.3*[argument>=0.7] + min(0.3, 0.1*devices) + min(0.4, 0.1*sophisticated) + 0.2*[claim_depth>=0.8]",
			},
		})
	}

	// Penalties
	absolutes := math.Min(0.5, 0.05*float64(f.Argument.UnsupportedCount))
	fallacies := math.Min(0.6, 0.2*float64(f.Argument.FallacyCount))
	if penalty := absolutes + fallacies; penalty > 0 {
		severity := model.SeverityWarning
		if f.Argument.FallacyCount >= 3 {
			severity = model.SeverityCritical
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalPenalty,
			Severity:    severity,
			Description: fmt.Sprintf("Content penalties: -%.2f (%d absolute claims, %d fallacy triggers)", penalty, f.Argument.UnsupportedCount, f.Argument.FallacyCount),
			Data: map[string]interface{}{
				"absolutes": f.Argument.UnsupportedCount,
				"fallacies": f.Argument.FallacyCount,
				"triggers":  f.Argument.Fallacies,
				"penalty":   penalty,
				"formula":   "min(0.5, 0.05*absolutes) + min(0.6, 0.2*fallacies)",
			},
		})
	}

	final := model.Round2(model.Clamp(score+bonus-absolutes-fallacies, 0, 10))
	signals = append(signals, totalSignal(model.FactorContent, final,
		"clamp(10*(0.20*thesis + 0.20*evidence + 0.15*analysis + 0.10*argument + 0.10*claim_depth + 0.10*relevance + 0.15*structure_score/100) + bonus - penalty, 0, 10)"))
	return final, signals
}

// Structure weights
const (
	structureIntroWeight      = 0.25
	structureConclusionWeight = 0.20
	structureCoherenceWeight  = 0.25
	structureTransitionWeight = 0.20
	structureTopicWeight      = 0.10
)

// Structure calculates the Structure factor (0-10)
func (s *Scorer) Structure(f model.StructureFeature) (float64, []model.Signal) {
	signals := []model.Signal{
		componentSignal(model.SignalIntro, f.IntroQuality, structureIntroWeight, ""),
		componentSignal(model.SignalConclusion, f.ConclusionQuality, structureConclusionWeight, ""),
		componentSignal(model.SignalCoherence, f.Coherence, structureCoherenceWeight, ""),
		componentSignal(model.SignalTransitions, f.TransitionScore, structureTransitionWeight, ""),
		componentSignal(model.SignalTopicSentences, f.TopicSentenceScore, structureTopicWeight, ""),
	}

	base := 10 * (f.IntroQuality*structureIntroWeight +
		f.ConclusionQuality*structureConclusionWeight +
		f.Coherence*structureCoherenceWeight +
		f.TransitionScore*structureTransitionWeight +
		f.TopicSentenceScore*structureTopicWeight)

	bonus := math.Min(0.5, 0.25*float64(f.CrossReferences))
	if f.StructureScore >= 80 {
		bonus += 0.3
	}
	if bonus > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalBonus,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Structure bonuses: +%.2f", bonus),
			Data: map[string]interface{}{
				"cross_references": f.CrossReferences,
				"structure_score":  f.StructureScore,
				"bonus":            bonus,
				"formula":          "min(0.5, 0.25*cross_references) + 0.3*[structure_score>=80]",
			},
		})
	}

	if len(f.Recommendations) > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalRhetoric,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d structural elements missing", len(f.Recommendations)),
			Data: map[string]interface{}{
				"recommendations": f.Recommendations,
				"structure_score": f.StructureScore,
			},
		})
	}

	final := model.Round2(model.Clamp(base+bonus, 0, 10))
	signals = append(signals, totalSignal(model.FactorStructure, final,
		"clamp(10*(0.25*intro + 0.20*conclusion + 0.25*coherence + 0.20*transitions + 0.10*topic) + bonus, 0, 10)"))
	return final, signals
}

// DisabledGrammarScore is used when no grammar checker result is available
const DisabledGrammarScore = 8.0

// Grammar maps an error count onto the fixed grammar score table
func Grammar(errorCount int, checked bool) (float64, model.Signal) {
	if !checked {
		return DisabledGrammarScore, model.Signal{
			Type:        model.SignalGrammar,
			Severity:    model.SeverityInfo,
			Description: "Grammar checker unavailable (using neutral default)",
			Data: map[string]interface{}{
				"errors":  0,
				"checked": false,
				"score":   DisabledGrammarScore,
			},
		}
	}

	var score float64
	switch {
	case errorCount <= 0:
		score = 10
	case errorCount <= 2:
		score = 9
	case errorCount <= 5:
		score = 8
	case errorCount <= 8:
		score = 7
	default:
		score = 6
	}

	severity := model.SeverityInfo
	if errorCount > 8 {
		severity = model.SeverityCritical
	} else if errorCount > 2 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalGrammar,
		Severity:    severity,
		Description: fmt.Sprintf("Grammar errors: %d", errorCount),
		Data: map[string]interface{}{
			"errors":  errorCount,
			"checked": true,
			"score":   score,
			"formula": "0→10, ≤2→9, ≤5→8, ≤8→7, >8→6",
		},
	}
}

// Application weights
const (
	applicationInsightWeight    = 0.25
	applicationRealWorldWeight  = 0.30
	applicationLexicalWeight    = 0.15
	applicationReflectionWeight = 0.30
)

// Application calculates the Application factor (0-10)
func (s *Scorer) Application(f model.Features) (float64, []model.Signal) {
	signals := []model.Signal{
		componentSignal(model.SignalPersonalInsight, f.Insight.Score, applicationInsightWeight, ""),
		componentSignal(model.SignalRealWorld, f.RealWorld.Score, applicationRealWorldWeight, f.RealWorld.Label),
		componentSignal(model.SignalLexical, f.Vocabulary.DiversityScore, applicationLexicalWeight, ""),
		componentSignal(model.SignalReflection, f.Reflection.Score, applicationReflectionWeight, f.Reflection.Label),
	}

	base := 10 * (f.Insight.Score*applicationInsightWeight +
		f.RealWorld.Score*applicationRealWorldWeight +
		f.Vocabulary.DiversityScore*applicationLexicalWeight +
		f.Reflection.Score*applicationReflectionWeight)

	bonus := math.Min(0.5, 0.1*float64(f.RealWorld.Count))
	if f.Reflection.DeepCount > 0 {
		bonus += 0.3
	}
	if bonus > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalBonus,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Application bonuses: +%.2f", bonus),
			Data: map[string]interface{}{
				"real_world_phrases": f.RealWorld.Count,
				"deep_reflection":    f.Reflection.DeepCount,
				"bonus":              bonus,
				"formula":            "min(0.5, 0.1*real_world_count) + 0.3*[deep_reflection>0]",
			},
		})
	}

	final := model.Round2(model.Clamp(base+bonus, 0, 10))
	signals = append(signals, totalSignal(model.FactorApplication, final,
		"clamp(10*(0.25*insight + 0.30*real_world + 0.15*lexical + 0.30*reflection) + bonus, 0, 10)"))
	return final, signals
}

// Insight calculates the Insight factor (0-10) from reflection and personal insight
func (s *Scorer) Insight(f model.Features) (float64, model.Signal) {
	score := model.Round2(model.Clamp(5*f.Reflection.Score+5*f.Insight.Score, 0, 10))

	severity := model.SeverityInfo
	if score < 4 {
		severity = model.SeverityWarning
	}
	return score, model.Signal{
		Type:        model.SignalReflection,
		Severity:    severity,
		Description: fmt.Sprintf("Insight: %.2f/10", score),
		Data: map[string]interface{}{
			"reflection":       f.Reflection.Score,
			"personal_insight": f.Insight.Score,
			"score":            score,
			"formula":          "clamp(5*reflection + 5*personal_insight, 0, 10)",
		},
	}
}

// Overall returns the weighted overall score (0-10)
func Overall(scores model.FactorScores) float64 {
	return model.Round2(model.Clamp(scores.Overall(), 0, 10))
}

// Percentage returns the overall score on a 0-100 scale
func Percentage(scores model.FactorScores) float64 {
	return model.Round2(model.Clamp(scores.Overall()*10, 0, 100))
}

// subsystemBlends pairs each subsystem with its two source factors
var subsystemBlends = map[model.Subsystem]struct {
	primary, secondary model.Factor
	weight             float64
}{
	model.SubsystemArgus:     {model.FactorContent, model.FactorInsight, 0.6},
	model.SubsystemNexus:     {model.FactorContent, model.FactorApplication, 0.6},
	model.SubsystemDepthCore: {model.FactorInsight, model.FactorApplication, 0.6},
	model.SubsystemEmpathica: {model.FactorApplication, model.FactorInsight, 0.6},
	model.SubsystemStructura: {model.FactorStructure, model.FactorGrammar, 0.7},
}

// Subsystems blends factor scores into the branded subsystem scores (0-100)
func Subsystems(scores model.FactorScores) model.SubsystemScores {
	var out model.SubsystemScores
	for _, name := range model.Subsystems {
		b := subsystemBlends[name]
		v := b.weight*scores.Get(b.primary) + (1-b.weight)*scores.Get(b.secondary)
		out.Set(name, model.Round2(model.Clamp(v*10, 0, 100)))
	}
	return out
}

// componentSignal describes one weighted input of a factor
func componentSignal(kind model.SignalType, value, weight float64, label string) model.Signal {
	severity := model.SeverityInfo
	if value < 0.3 {
		severity = model.SeverityCritical
	} else if value < 0.5 {
		severity = model.SeverityWarning
	}

	description := fmt.Sprintf("%s: %.2f (weight %.2f)", kind, value, weight)
	if label != "" {
		description = fmt.Sprintf("%s: %.2f %s (weight %.2f)", kind, value, label, weight)
	}

	return model.Signal{
		Type:        kind,
		Severity:    severity,
		Description: description,
		Data: map[string]interface{}{
			"value":        value,
			"weight":       weight,
			"contribution": model.Round2(value * weight * 10),
			"label":        label,
		},
	}
}

func totalSignal(factor model.Factor, score float64, formula string) model.Signal {
	return model.Signal{
		Type:        model.SignalType(string(factor)),
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("%s score: %.2f/10", factor, score),
		Data: map[string]interface{}{
			"score":   score,
			"formula": formula,
		},
	}
}
