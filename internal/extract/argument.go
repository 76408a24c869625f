package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// Analysis counts analytical commentary markers
func Analysis(text string) model.CountFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.CountFeature{Score: 0.5, Label: "Unavailable"}
	}

	count := lexicon.AnalysisMarkers.Count(norm)
	score := stepScore(float64(count), [5]float64{5, 4, 3, 2, 1}, 0.2)
	return model.CountFeature{
		Score:   score,
		Count:   count,
		Label:   label(score, []string{"Insightful", "Developed", "Emerging", "Descriptive"}, []float64{0.85, 0.55, 0.4}),
		Matches: lexicon.AnalysisMarkers.Matches(norm),
	}
}

// ClaimDepth counts qualified claims and causal reasoning links
func ClaimDepth(text string) model.CountFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.CountFeature{Score: 0.5, Label: "Unavailable"}
	}

	count := lexicon.ClaimQualifiers.Count(norm) + lexicon.CausalLinks.Count(norm)
	var score float64
	switch {
	case count >= 6:
		score = 1.0
	case count >= 4:
		score = 0.8
	case count >= 2:
		score = 0.6
	case count >= 1:
		score = 0.4
	default:
		score = 0.2
	}

	return model.CountFeature{
		Score:   score,
		Count:   count,
		Label:   label(score, []string{"Nuanced", "Reasoned", "Surface"}, []float64{0.8, 0.6}),
		Matches: append(lexicon.ClaimQualifiers.Matches(norm), lexicon.CausalLinks.Matches(norm)...),
	}
}

// Argument strength weights
const (
	argumentBase        = 0.2
	positionBonus       = 0.25
	counterStep         = 0.1
	counterCap          = 0.2
	rebuttalStep        = 0.1
	rebuttalCap         = 0.2
	indicatorStep       = 0.05
	indicatorCap        = 0.15
	fallacyPenaltyStep  = 0.1
	fallacyPenaltyCap   = 0.3
	absolutePenaltyStep = 0.03
	absolutePenaltyCap  = 0.15
)

// Argument measures position-taking, counter-arguments and fallacy hygiene
func Argument(text string) model.ArgumentFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.ArgumentFeature{Score: 0.5, Label: "Unavailable"}
	}

	f := model.ArgumentFeature{
		PositionCount:    lexicon.PositionPhrases.Count(norm),
		CounterCount:     lexicon.CounterMarkers.Count(norm),
		RebuttalCount:    lexicon.RebuttalMarkers.Count(norm),
		IndicatorCount:   lexicon.ArgumentIndicators.Count(norm),
		FallacyCount:     lexicon.FallacyTriggers.Count(norm),
		UnsupportedCount: lexicon.AbsoluteWords.Count(norm),
		Fallacies:        lexicon.FallacyTriggers.Matches(norm),
	}
	f.HasPosition = f.PositionCount > 0

	score := argumentBase
	if f.HasPosition {
		score += positionBonus
	}
	score += minF(counterCap, counterStep*float64(f.CounterCount))
	score += minF(rebuttalCap, rebuttalStep*float64(f.RebuttalCount))
	score += minF(indicatorCap, indicatorStep*float64(f.IndicatorCount))
	score -= minF(fallacyPenaltyCap, fallacyPenaltyStep*float64(f.FallacyCount))
	score -= minF(absolutePenaltyCap, absolutePenaltyStep*float64(f.UnsupportedCount))

	f.Score = model.Round2(model.Clamp(score, 0, 1))
	f.Label = label(f.Score, []string{"Compelling", "Strong", "Developing", "Weak"}, []float64{0.8, 0.6, 0.4})
	return f
}
