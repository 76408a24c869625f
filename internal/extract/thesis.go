package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// HasThesisCutoff is the score at which a thesis counts as present
const HasThesisCutoff = 0.6

// Thesis scans the first paragraph for thesis keywords and topic announcements
func Thesis(text string) model.ThesisFeature {
	paragraphs := Paragraphs(text)
	if len(paragraphs) == 0 {
		return model.ThesisFeature{Score: 0.5, Label: "Unavailable"}
	}

	first := lexicon.Normalize(paragraphs[0])
	matches := append(lexicon.ThesisIndicators.Matches(first), lexicon.TopicAnnouncements.Matches(first)...)
	count := lexicon.ThesisIndicators.Count(first) + lexicon.TopicAnnouncements.Count(first)

	score := quadScore(count, 0.2)
	return model.ThesisFeature{
		Score:     score,
		HasThesis: score >= HasThesisCutoff,
		Matches:   matches,
		Label:     label(score, []string{"Clear", "Present", "Implied", "Missing"}, []float64{0.8, 0.6, 0.4}),
	}
}
