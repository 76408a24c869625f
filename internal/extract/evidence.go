package extract

import (
	"regexp"

	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

var (
	statisticPattern  = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s?(%|percent\b|per cent\b)`)
	quotationPattern  = regexp.MustCompile(`"[^"\n]{3,}"|“[^”\n]{3,}”`)
	yearPattern       = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
	properNounPattern = regexp.MustCompile(`[a-z,;:]\s+([A-Z][a-z]{2,})`)
)

// Evidence weights
const (
	implicitWeight    = 0.3
	statisticWeight   = 0.5
	quotationWeight   = 0.5
	properNounWeight  = 0.1
	properNounCap     = 1.0
	yearWeight        = 0.3
	varietyBonusTwo   = 0.5
	varietyBonusThree = 1.0
)

// Evidence measures supporting evidence and the claim-evidence ratio
func Evidence(text string) model.EvidenceFeature {
	norm := lexicon.Normalize(text)
	if norm.Empty() {
		return model.EvidenceFeature{Score: 0.5, Label: "Unavailable"}
	}

	f := model.EvidenceFeature{
		ExplicitCount:  lexicon.ExplicitEvidence.Count(norm),
		ImplicitCount:  lexicon.ImplicitEvidence.Count(norm),
		Statistics:     len(statisticPattern.FindAllString(text, -1)),
		Quotations:     len(quotationPattern.FindAllString(text, -1)),
		Years:          len(yearPattern.FindAllString(text, -1)),
		ProperNouns:    len(properNounPattern.FindAllStringSubmatch(text, -1)),
		ClaimCount:     lexicon.ArgumentIndicators.Count(norm),
		ExplicitPhrase: lexicon.ExplicitEvidence.Matches(norm),
	}

	weighted := float64(f.ExplicitCount) +
		float64(f.ImplicitCount)*implicitWeight +
		float64(f.Statistics)*statisticWeight +
		float64(f.Quotations)*quotationWeight +
		minF(float64(f.ProperNouns)*properNounWeight, properNounCap) +
		float64(f.Years)*yearWeight

	for _, present := range []bool{f.ExplicitCount > 0, f.Statistics > 0, f.Quotations > 0, f.ProperNouns > 0, f.Years > 0} {
		if present {
			f.Categories++
		}
	}
	switch {
	case f.Categories >= 3:
		f.VarietyBonus = varietyBonusThree
	case f.Categories == 2:
		f.VarietyBonus = varietyBonusTwo
	}
	weighted += f.VarietyBonus

	f.EvidenceCount = model.Round2(weighted)
	f.Score = stepScore(weighted, [5]float64{6, 4, 3, 2, 1}, 0.2)
	f.Ratio = model.Round2(weighted / float64(max(1, f.ClaimCount)))
	f.Label = evidenceLabel(f.Ratio)
	return f
}

func evidenceLabel(ratio float64) string {
	switch {
	case ratio >= 2.0:
		return "Excellent"
	case ratio >= 1.5:
		return "Strong"
	case ratio >= 1.0:
		return "Adequate"
	case ratio >= 0.8:
		return "Developing"
	}
	return "Needs Improvement"
}

// EvidenceRelevance counts evidence sentences that are tied back to analysis in the
// same or the following sentence
func EvidenceRelevance(text string) model.RelevanceFeature {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return model.RelevanceFeature{Score: 0.5}
	}

	norms := make([]lexicon.Text, len(sentences))
	for i, s := range sentences {
		norms[i] = lexicon.Normalize(s)
	}

	linksAnalysis := func(t lexicon.Text) bool {
		return lexicon.AnalysisMarkers.Contains(t) || lexicon.CausalLinks.Contains(t)
	}

	var f model.RelevanceFeature
	for i, n := range norms {
		if !lexicon.ExplicitEvidence.Contains(n) {
			continue
		}
		f.EvidenceSentences++
		if linksAnalysis(n) || (i+1 < len(norms) && linksAnalysis(norms[i+1])) {
			f.LinkedSentences++
		}
	}

	switch {
	case f.LinkedSentences > 0:
		f.Score = minF(1.0, 0.25*float64(f.LinkedSentences))
	case f.EvidenceSentences > 0:
		f.Score = 0.2
	default:
		f.Score = 0.1
	}
	return f
}
