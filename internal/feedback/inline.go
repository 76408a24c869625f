package feedback

import (
	"github.com/ppiankov/douessay/internal/extract"
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// Inline note kinds
const (
	KindFallacy     = "fallacy"
	KindAbsolute    = "absolute"
	KindUnsupported = "unsupported_claim"
	KindEvidence    = "strong_evidence"
)

const excerptLen = 80

// Inline returns per-sentence notes for fallacies, absolute words, unsupported claims
// and strong evidence
func Inline(text string) []model.InlineNote {
	notes := []model.InlineNote{}
	for i, s := range extract.Sentences(text) {
		norm := lexicon.Normalize(s)

		if m := lexicon.FallacyTriggers.Matches(norm); len(m) > 0 {
			notes = append(notes, note(i, s, KindFallacy, "\""+m[0]+"\" asserts rather than proves; replace it with evidence."))
		}
		if m := lexicon.AbsoluteWords.Matches(norm); len(m) > 0 {
			notes = append(notes, note(i, s, KindAbsolute, "\""+m[0]+"\" is an absolute; qualify the claim (e.g. \"often\", \"many\")."))
		}

		hasEvidence := lexicon.ExplicitEvidence.Contains(norm)
		if lexicon.ArgumentIndicators.Contains(norm) && !hasEvidence && !lexicon.ImplicitEvidence.Contains(norm) {
			notes = append(notes, note(i, s, KindUnsupported, "This claim needs support; add an example or source."))
		}
		if hasEvidence && (lexicon.AnalysisMarkers.Contains(norm) || lexicon.CausalLinks.Contains(norm)) {
			notes = append(notes, note(i, s, KindEvidence, "Strong evidence tied to analysis."))
		}
	}
	return notes
}

func note(index int, sentence, kind, message string) model.InlineNote {
	excerpt := sentence
	if r := []rune(excerpt); len(r) > excerptLen {
		excerpt = string(r[:excerptLen]) + "..."
	}
	return model.InlineNote{Sentence: index, Excerpt: excerpt, Kind: kind, Message: message}
}
