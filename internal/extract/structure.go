package extract

import (
	"github.com/ppiankov/douessay/internal/lexicon"
	"github.com/ppiankov/douessay/internal/model"
)

// transitionBuckets pairs each transition category with its table
var transitionBuckets = []struct {
	category model.TransitionCategory
	set      lexicon.Set
}{
	{model.TransitionAddition, lexicon.TransitionAddition},
	{model.TransitionContrast, lexicon.TransitionContrast},
	{model.TransitionCauseEffect, lexicon.TransitionCauseEffect},
	{model.TransitionExample, lexicon.TransitionExample},
	{model.TransitionSequence, lexicon.TransitionSequence},
	{model.TransitionEmphasis, lexicon.TransitionEmphasis},
}

// Structure point values (sum to 100)
const (
	introPoints          = 15
	conclusionPoints     = 15
	explicitTopicPoints  = 6
	implicitTopicPoints  = 3
	topicPointsCap       = 20
	transitionCatPoints  = 3
	transitionTotalCap   = 7
	transitionPointsCap  = 25
	crossReferencePoints = 5
	crossReferenceCap    = 10
	structureScoreCap    = 100
)

// Structure measures paragraph organization, topic sentences and transitions
func Structure(text string) model.StructureFeature {
	paragraphs := Paragraphs(text)
	f := model.StructureFeature{
		Paragraphs:  len(paragraphs),
		Transitions: make(map[model.TransitionCategory]int, len(transitionBuckets)),
	}
	if len(paragraphs) == 0 {
		f.IntroQuality, f.ConclusionQuality, f.Coherence = 0.5, 0.5, 0.5
		f.TransitionScore, f.TopicSentenceScore = 0.5, 0.5
		return f
	}

	norm := lexicon.Normalize(text)
	first := lexicon.Normalize(paragraphs[0])
	last := lexicon.Normalize(paragraphs[len(paragraphs)-1])
	thesis := Thesis(text)

	// 1. Introduction (15 points)
	introMarkers := lexicon.IntroMarkers.Count(first)
	f.HasIntro = introMarkers > 0 || thesis.HasThesis
	f.IntroQuality = minF(1, 0.3+0.2*float64(minI(2, introMarkers))+0.3*thesis.Score)

	// 2. Conclusion (15 points)
	conclusionMarkers := lexicon.ConclusionMarkers.Count(last)
	f.HasConclusion = len(paragraphs) >= 2 && conclusionMarkers > 0
	conclusion := 0.2 + minF(0.5, 0.25*float64(conclusionMarkers))
	if lexicon.ThesisIndicators.Contains(last) || lexicon.PositionPhrases.Contains(last) {
		conclusion += 0.15
	}
	if lexicon.DeepReflection.Contains(last) || lexicon.RealWorldApplication.Contains(last) || lexicon.RelevanceMarkers.Contains(last) {
		conclusion += 0.15
	}
	f.ConclusionQuality = minF(1, conclusion)

	// 3. Topic sentences in body paragraphs
	body := paragraphs
	if len(paragraphs) >= 3 {
		body = paragraphs[1 : len(paragraphs)-1]
	}
	f.BodyParagraphs = len(body)
	startsWithTransition := 0
	for i, p := range paragraphs {
		sentences := Sentences(p)
		if len(sentences) == 0 {
			continue
		}
		if i > 0 && transitionCount(lexicon.Normalize(sentences[0])) > 0 {
			startsWithTransition++
		}
	}
	for _, p := range body {
		lead := leadingSentences(p, 2)
		switch {
		case lexicon.TopicSentenceIndicators.Contains(lead):
			f.ExplicitTopic++
		case lexicon.ThesisIndicators.Contains(lead), lexicon.PositionPhrases.Contains(lead), lexicon.OrdinalWords.Contains(lead):
			f.ImplicitTopic++
		}
	}
	if f.BodyParagraphs > 0 {
		f.TopicSentenceScore = minF(1, (float64(f.ExplicitTopic)+0.5*float64(f.ImplicitTopic))/float64(f.BodyParagraphs))
	}

	// 4. Transitions by category
	for _, bucket := range transitionBuckets {
		n := bucket.set.Count(norm)
		f.Transitions[bucket.category] = n
		f.TransitionTotal += n
		if n > 0 {
			f.CategoriesUsed++
		}
	}
	f.TransitionScore = minF(1, 0.6*float64(f.CategoriesUsed)/float64(len(transitionBuckets))+minF(0.4, 0.04*float64(f.TransitionTotal)))

	// 5. Cross-paragraph references
	f.CrossReferences = lexicon.CrossReferences.Count(norm)

	var coherence float64
	switch {
	case len(paragraphs) >= 5:
		coherence = 0.6
	case len(paragraphs) >= 3:
		coherence = 0.45
	case len(paragraphs) >= 2:
		coherence = 0.3
	default:
		coherence = 0.15
	}
	f.Coherence = minF(1, coherence+minF(0.4, 0.1*float64(f.CrossReferences+startsWithTransition)))

	f.StructureScore = structurePoints(f)
	f.Recommendations = structureRecommendations(f)
	return f
}

func structurePoints(f model.StructureFeature) int {
	points := 0
	if f.HasIntro {
		points += introPoints
	}
	if f.HasConclusion {
		points += conclusionPoints
	}
	switch {
	case f.Paragraphs >= 5:
		points += 15
	case f.Paragraphs >= 3:
		points += 10
	case f.Paragraphs >= 2:
		points += 5
	}
	points += minI(topicPointsCap, f.ExplicitTopic*explicitTopicPoints+f.ImplicitTopic*implicitTopicPoints)
	points += minI(transitionPointsCap, f.CategoriesUsed*transitionCatPoints+minI(transitionTotalCap, f.TransitionTotal))
	points += minI(crossReferenceCap, f.CrossReferences*crossReferencePoints)
	return minI(structureScoreCap, points)
}

func structureRecommendations(f model.StructureFeature) []string {
	var recs []string
	if !f.HasIntro {
		recs = append(recs, "Add a clear introduction that previews your main argument.")
	}
	if !f.HasConclusion {
		recs = append(recs, "End with a conclusion that signals closure (e.g. \"In conclusion\") and restates your position.")
	}
	if f.Paragraphs < 3 {
		recs = append(recs, "Organize your essay into at least three paragraphs: introduction, body, and conclusion.")
	}
	if f.BodyParagraphs > 0 && f.ExplicitTopic+f.ImplicitTopic == 0 {
		recs = append(recs, "Open each body paragraph with a topic sentence that states its main point.")
	}
	if f.CategoriesUsed < 3 {
		recs = append(recs, "Use a wider variety of transitions, such as contrast (\"however\") and cause-effect (\"therefore\").")
	}
	if f.CrossReferences == 0 && f.Paragraphs >= 3 {
		recs = append(recs, "Connect paragraphs by referring back to earlier points (e.g. \"as mentioned earlier\").")
	}
	return recs
}

func transitionCount(t lexicon.Text) int {
	total := 0
	for _, bucket := range transitionBuckets {
		total += bucket.set.Count(t)
	}
	return total
}

// leadingSentences normalizes the first n sentences of a paragraph
func leadingSentences(paragraph string, n int) lexicon.Text {
	sentences := Sentences(paragraph)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	joined := ""
	for _, s := range sentences {
		joined += s + " "
	}
	return lexicon.Normalize(joined)
}
