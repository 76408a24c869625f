package extract

import (
	"strings"

	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// diversityTarget is the unique/total ratio that earns full lexical credit
const diversityTarget = 0.6

// Vocabulary measures lexical diversity, sophisticated word use and rhetorical devices
func Vocabulary(text string) model.VocabularyFeature {
	words := Words(text)
	if len(words) == 0 {
		return model.VocabularyFeature{DiversityScore: 0.5}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	norm := lexicon.Normalize(text)
	f := model.VocabularyFeature{
		Words:            len(words),
		UniqueWords:      len(unique),
		Sophisticated:    lexicon.SophisticatedVocabulary.Count(norm),
		RhetoricalDevice: lexicon.RhetoricalDevices.Count(norm) + strings.Count(text, "?"),
	}
	f.Diversity = model.Round2(float64(f.UniqueWords) / float64(f.Words))
	f.DiversityScore = model.Round2(minF(1, f.Diversity/diversityTarget))
	return f
}
