package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// Reflection bucket caps and weights
const (
	reflectionBucketCap = 3
	deepWeight          = 0.15
	growthWeight        = 0.10
	realWorldWeight     = 0.05
	markerBonusStep     = 0.025
	markerBonusCap      = 0.05
	consistencyBonus    = 0.05
)

// Reflection measures personal reflection depth
func Reflection(text string) model.ReflectionFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.ReflectionFeature{Score: 0.5, Label: "Unavailable"}
	}

	f := model.ReflectionFeature{
		DeepCount:      lexicon.DeepReflection.Count(norm),
		GrowthCount:    lexicon.PersonalGrowth.Count(norm),
		RealWorldCount: lexicon.RealWorldApplication.Count(norm),
	}
	f.NoveltyBonus = minF(markerBonusCap, markerBonusStep*float64(lexicon.NoveltyMarkers.Count(norm)))
	f.RelevanceBonus = minF(markerBonusCap, markerBonusStep*float64(lexicon.RelevanceMarkers.Count(norm)))

	reflective := 0
	for _, p := range Paragraphs(text) {
		pn := lexicon.Normalize(p)
		if lexicon.DeepReflection.Contains(pn) || lexicon.PersonalGrowth.Contains(pn) {
			reflective++
		}
	}
	if reflective >= 2 {
		f.ConsistencyBonus = consistencyBonus
	}

	score := float64(minI(f.DeepCount, reflectionBucketCap))*deepWeight +
		float64(minI(f.GrowthCount, reflectionBucketCap))*growthWeight +
		float64(minI(f.RealWorldCount, reflectionBucketCap))*realWorldWeight +
		f.NoveltyBonus + f.RelevanceBonus + f.ConsistencyBonus

	f.Score = model.Round2(minF(1, score))
	f.Label = label(f.Score, []string{"Deep", "Developing", "Emerging", "Minimal"}, []float64{0.7, 0.4, 0.15})
	return f
}

// PersonalInsight measures personal voice: anecdotes, stated positions and deep reflection
func PersonalInsight(text string) model.InsightFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.InsightFeature{Score: 0.5}
	}

	f := model.InsightFeature{
		Anecdotes: lexicon.AnecdotePhrases.Count(norm),
		Positions: lexicon.PositionPhrases.Count(norm),
		Deep:      lexicon.DeepReflection.Count(norm),
	}
	score := 0.25*float64(minI(2, f.Anecdotes)) + 0.1*float64(minI(3, f.Positions)) + 0.2*float64(minI(2, f.Deep))
	f.Score = model.Round2(minF(1, score))
	return f
}

// RealWorld measures connections to life beyond the classroom
func RealWorld(text string) model.CountFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.CountFeature{Score: 0.5, Label: "Unavailable"}
	}

	count := lexicon.RealWorldApplication.Count(norm)
	score := quadScore(count, 0.1)
	return model.CountFeature{
		Score:   score,
		Count:   count,
		Label:   label(score, []string{"Strong", "Present", "Limited", "Absent"}, []float64{0.8, 0.6, 0.4}),
		Matches: lexicon.RealWorldApplication.Matches(norm),
	}
}
