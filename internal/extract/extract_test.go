package extract

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/douessay/internal/model"
)

const sampleEssay = `In this essay, I will argue that schools should start later. I believe teenagers need more sleep, and there are several reasons for this.

Firstly, research shows that 70% of teenagers sleep less than eight hours. For example, a study by the National Sleep Foundation in 2019 found that tired students perform worse. This suggests that sleep affects learning.

Some argue that later start times cause problems for parents. Critics say buses would be harder to schedule. However, this overlooks the benefits for student health. Nevertheless, schools must plan carefully.

When I was in grade nine, I remember falling asleep in class. Looking back, I realized that my grades suffered. This taught me that rest matters because it leads to better focus in everyday life.

In conclusion, as mentioned earlier, later start times would improve learning. Ultimately, I believe this change can be applied in our community.`

func TestThesis_FirstParagraphOnly(t *testing.T) {
	f := Thesis("In this essay, I will argue that schools should start later. I believe teenagers need sleep.")
	if f.Score != 0.8 {
		t.Errorf("Expected thesis score 0.8, got %v (matches %v)", f.Score, f.Matches)
	}
	if !f.HasThesis {
		t.Error("Expected HasThesis to be true")
	}

	late := Thesis("Dogs are animals. They bark.\n\nI believe in this essay I argue my position.")
	if late.Score != 0.2 || late.HasThesis {
		t.Errorf("Expected thesis in later paragraph to be ignored, got %+v", late)
	}
}

func TestThesis_EmptyIsNeutral(t *testing.T) {
	if f := Thesis(""); f.Score != 0.5 {
		t.Errorf("Expected neutral 0.5 for empty text, got %v", f.Score)
	}
}

func TestEvidence_CategoriesAndRatio(t *testing.T) {
	f := Evidence("For example, research shows that 45% of students sleep less than seven hours.")

	if f.ExplicitCount != 2 {
		t.Errorf("Expected 2 explicit evidence phrases, got %d", f.ExplicitCount)
	}
	if f.Statistics != 1 {
		t.Errorf("Expected 1 statistic, got %d", f.Statistics)
	}
	if f.VarietyBonus != 0.5 {
		t.Errorf("Expected variety bonus 0.5, got %v", f.VarietyBonus)
	}
	if math.Abs(f.EvidenceCount-3.3) > 1e-9 {
		t.Errorf("Expected weighted evidence 3.3, got %v", f.EvidenceCount)
	}
	if f.Score != 0.7 {
		t.Errorf("Expected evidence score 0.7, got %v", f.Score)
	}
	if f.Label != "Excellent" {
		t.Errorf("Expected label Excellent, got %s", f.Label)
	}
}

func TestEvidence_Labels(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{2.0, "Excellent"},
		{1.5, "Strong"},
		{1.0, "Adequate"},
		{0.8, "Developing"},
		{0.79, "Needs Improvement"},
	}
	for _, tt := range tests {
		if got := evidenceLabel(tt.ratio); got != tt.want {
			t.Errorf("evidenceLabel(%v) = %s, want %s", tt.ratio, got, tt.want)
		}
	}
}

func TestEvidence_MoreMarkersNeverScoreLower(t *testing.T) {
	base := "Homework matters. For example, teachers assign practice."
	more := base + " According to experts, studies show 60% of students improve. For instance, in 2020 scores rose."

	if Evidence(more).Score < Evidence(base).Score {
		t.Error("Expected additional evidence markers not to lower the evidence score")
	}
}

func TestArgument_Scoring(t *testing.T) {
	strong := Argument("I believe phones are harmful. Some argue otherwise; however, research disagrees. Therefore we should limit them.")
	if strong.Score != 0.8 || strong.Label != "Compelling" {
		t.Errorf("Expected compelling 0.8 argument, got %+v", strong)
	}

	weak := Argument("Everyone knows that obviously phones are bad.")
	if weak.Score != 0 {
		t.Errorf("Expected fallacies to floor the score at 0, got %v", weak.Score)
	}
	if weak.FallacyCount != 2 {
		t.Errorf("Expected 2 fallacy triggers, got %d", weak.FallacyCount)
	}
	if weak.Label != "Weak" {
		t.Errorf("Expected Weak label, got %s", weak.Label)
	}
}

func TestCounterArgument_HighlySophisticated(t *testing.T) {
	text := "Phones belong in class.\n\nSome argue that homework is harmful. Critics say it wastes time, and opponents claim it causes stress. However, this overlooks the benefits of practice."
	f := CounterArgument(text)

	if f.Sophistication != HighlySophisticated {
		t.Errorf("Expected %s, got %s (score %v)", HighlySophisticated, f.Sophistication, f.Score)
	}
	if f.Score < 0.75 {
		t.Errorf("Expected score >= 0.75, got %v", f.Score)
	}
	if f.BalancedParagraphs != 1 || f.CounterParagraphs != 1 {
		t.Errorf("Expected one balanced counter paragraph, got %+v", f)
	}
}

func TestCounterArgument_NoMarkers(t *testing.T) {
	f := CounterArgument("Cats are calm. They sleep a lot.")
	if f.Score != 0 || f.Sophistication != BasicCounter {
		t.Errorf("Expected basic 0 score, got %+v", f)
	}
}

func TestStructure_FullEssay(t *testing.T) {
	f := Structure(sampleEssay)

	if f.Paragraphs != 5 {
		t.Fatalf("Expected 5 paragraphs, got %d", f.Paragraphs)
	}
	if !f.HasIntro || !f.HasConclusion {
		t.Errorf("Expected intro and conclusion, got intro=%v conclusion=%v", f.HasIntro, f.HasConclusion)
	}
	if f.BodyParagraphs != 3 {
		t.Errorf("Expected 3 body paragraphs, got %d", f.BodyParagraphs)
	}
	if f.ExplicitTopic < 1 {
		t.Errorf("Expected at least one explicit topic sentence, got %d", f.ExplicitTopic)
	}
	if f.CrossReferences < 1 {
		t.Errorf("Expected cross references, got %d", f.CrossReferences)
	}
	if f.StructureScore < 60 || f.StructureScore > 100 {
		t.Errorf("Expected structure score in [60,100], got %d", f.StructureScore)
	}
	for _, v := range []float64{f.IntroQuality, f.ConclusionQuality, f.Coherence, f.TransitionScore, f.TopicSentenceScore} {
		if v < 0 || v > 1 {
			t.Errorf("Expected sub-score in [0,1], got %v", v)
		}
	}
}

func TestStructure_SingleParagraphRecommendations(t *testing.T) {
	f := Structure("Cats are calm animals and they sleep most of the day")

	found := false
	for _, r := range f.Recommendations {
		if strings.Contains(r, "at least three paragraphs") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected paragraph recommendation, got %v", f.Recommendations)
	}
	if f.HasConclusion {
		t.Error("Expected no conclusion for a single paragraph")
	}
}

func TestEmotion_DominantTone(t *testing.T) {
	f := Emotion("I realized I learned so much. Looking back, I wonder how I changed.")
	if f.Dominant != model.ToneReflective {
		t.Errorf("Expected reflective tone, got %s (%v)", f.Dominant, f.Counts)
	}
	if f.Engagement < 0 || f.Engagement > 100 || f.Authenticity < 0 || f.Authenticity > 100 {
		t.Errorf("Expected engagement and authenticity in [0,100], got %v / %v", f.Engagement, f.Authenticity)
	}
}

func TestEmotion_NoToneWordsIsNeutral(t *testing.T) {
	if f := Emotion("Cats sit. Dogs run."); f.Dominant != model.ToneNeutral {
		t.Errorf("Expected neutral tone, got %s", f.Dominant)
	}
}

func TestReflection_BucketsAndConsistency(t *testing.T) {
	text := "Looking back, I realized how much I grew.\n\nThis taught me patience, and I became more confident in everyday life."
	f := Reflection(text)

	if f.DeepCount != 3 {
		t.Errorf("Expected 3 deep reflection phrases, got %d", f.DeepCount)
	}
	if f.GrowthCount < 2 {
		t.Errorf("Expected growth phrases, got %d", f.GrowthCount)
	}
	if f.ConsistencyBonus != 0.05 {
		t.Errorf("Expected consistency bonus across paragraphs, got %v", f.ConsistencyBonus)
	}
	if f.Score < 0.7 || f.Label != "Deep" {
		t.Errorf("Expected deep reflection, got %+v", f)
	}
}

func TestVocabulary_Diversity(t *testing.T) {
	f := Vocabulary("the the the the")
	if f.Diversity != 0.25 {
		t.Errorf("Expected diversity 0.25, got %v", f.Diversity)
	}

	rich := Vocabulary("A nuanced and multifaceted paradigm. What if we consider it?")
	if rich.Sophisticated != 3 {
		t.Errorf("Expected 3 sophisticated words, got %d", rich.Sophisticated)
	}
	if rich.RhetoricalDevice != 3 {
		t.Errorf("Expected 3 rhetorical devices (what if, consider, ?), got %d", rich.RhetoricalDevice)
	}
	if rich.DiversityScore != 1 {
		t.Errorf("Expected full diversity score, got %v", rich.DiversityScore)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := Analyze(sampleEssay)
	b := Analyze(sampleEssay)
	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical features for identical input")
	}
	if a.Words == 0 || a.Sentences == 0 {
		t.Error("Expected word and sentence counts")
	}
}

func TestAnalyze_EmptyNeverPanics(t *testing.T) {
	f := Analyze("")
	if f.Thesis.Score != 0.5 || f.Evidence.Score != 0.5 || f.Reflection.Score != 0.5 {
		t.Errorf("Expected neutral defaults, got %+v", f)
	}
}
