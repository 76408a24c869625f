package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// Sophistication labels
const (
	HighlySophisticated = "Highly Sophisticated"
	Sophisticated       = "Sophisticated"
	DevelopingCounter   = "Developing"
	BasicCounter        = "Basic"
)

// CounterArgument measures counter-argument depth globally and per paragraph
func CounterArgument(text string) model.CounterArgumentFeature {
	paragraphs := Paragraphs(text)
	if len(paragraphs) == 0 {
		return model.CounterArgumentFeature{Score: 0.5, Sophistication: DevelopingCounter}
	}

	var f model.CounterArgumentFeature
	rebuttalsInCounterParagraphs := 0
	for _, p := range paragraphs {
		norm := lexicon.Normalize(p)
		counters := lexicon.CounterMarkers.Count(norm)
		rebuttals := lexicon.RebuttalMarkers.Count(norm)

		f.CounterCount += counters
		f.RebuttalCount += rebuttals
		if counters > 0 {
			f.CounterParagraphs++
			rebuttalsInCounterParagraphs += rebuttals
			if rebuttals > 0 {
				f.BalancedParagraphs++
			}
		}
	}

	// Rebuttal density within counter paragraphs
	if f.CounterParagraphs > 0 {
		density := float64(rebuttalsInCounterParagraphs) / float64(f.CounterParagraphs)
		f.ReasoningBonus = minF(0.1, 0.05*density)
	}

	score := minF(0.45, 0.15*float64(f.CounterCount)) +
		minF(0.3, 0.15*float64(f.RebuttalCount)) +
		minF(0.3, 0.15*float64(f.BalancedParagraphs)) +
		f.ReasoningBonus

	f.Score = model.Round2(minF(1.0, score))
	f.Sophistication = label(f.Score,
		[]string{HighlySophisticated, Sophisticated, DevelopingCounter, BasicCounter},
		[]float64{0.75, 0.5, 0.25})
	return f
}
