package extract

import "github.com/ppiankov/douessay/internal/model"

// Analyze runs every extractor once over the essay text
func Analyze(text string) model.Features {
	return model.Features{
		Thesis:          Thesis(text),
		Evidence:        Evidence(text),
		Analysis:        Analysis(text),
		Argument:        Argument(text),
		ClaimDepth:      ClaimDepth(text),
		Relevance:       EvidenceRelevance(text),
		Structure:       Structure(text),
		Emotion:         Emotion(text),
		CounterArgument: CounterArgument(text),
		Reflection:      Reflection(text),
		Vocabulary:      Vocabulary(text),
		Insight:         PersonalInsight(text),
		RealWorld:       RealWorld(text),
		Words:           len(Words(text)),
		Sentences:       len(Sentences(text)),
	}
}
