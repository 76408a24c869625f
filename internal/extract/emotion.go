package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

var toneSets = map[model.Tone]lexicon.Set{
	model.TonePositive:   lexicon.TonePositive,
	model.ToneReflective: lexicon.ToneReflective,
	model.ToneAssertive:  lexicon.ToneAssertive,
	model.ToneEmpathetic: lexicon.ToneEmpathetic,
	model.ToneAnalytical: lexicon.ToneAnalytical,
}

// Emotion measures tone distribution, engagement and authenticity (EmotionFlow)
func Emotion(text string) model.EmotionFeature {
	f := model.EmotionFeature{
		Counts:       make(map[model.Tone]int, len(model.Tones)),
		Distribution: make(map[model.Tone]float64, len(model.Tones)),
		Dominant:     model.ToneNeutral,
	}

	norm := lexicon.Normalize(text)
	words := Words(text)
	if len(words) == 0 {
		f.Engagement, f.Authenticity = 50, 50
		return f
	}

	total, best := 0, 0
	for _, tone := range model.Tones {
		n := toneSets[tone].Count(norm)
		f.Counts[tone] = n
		total += n
		if n > best {
			best = n
			f.Dominant = tone
		}
	}
	for _, tone := range model.Tones {
		f.Distribution[tone] = model.Round2(100 * float64(f.Counts[tone]) / float64(max(1, total)))
	}

	// Engagement: tone density scaled to 100 plus a sentence-length bonus
	engagement := float64(total) / float64(len(words)) * 100 * 5
	sentences := Sentences(text)
	if len(sentences) > 0 {
		avg := float64(len(words)) / float64(len(sentences))
		if avg >= 12 && avg <= 25 {
			engagement += 10
		}
	}
	f.Engagement = model.Round2(model.Clamp(engagement, 0, 100))

	// Authenticity: personal pronoun ratio plus anecdotes
	pronouns := lexicon.PersonalPronouns.Count(norm)
	anecdotes := lexicon.AnecdotePhrases.Count(norm)
	authenticity := float64(pronouns)/float64(len(words))*100*4 + float64(anecdotes)*10
	f.Authenticity = model.Round2(model.Clamp(authenticity, 0, 100))
	return f
}
