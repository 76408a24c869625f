package model

// ThesisFeature describes thesis presence in the opening paragraph
type ThesisFeature struct {
	Score     float64  `json:"score"`
	HasThesis bool     `json:"has_thesis"`
	Matches   []string `json:"matches,omitempty"`
	Label     string   `json:"label"`
}

// EvidenceFeature describes supporting evidence and the claim-evidence ratio
type EvidenceFeature struct {
	Score          float64  `json:"score"`
	EvidenceCount  float64  `json:"evidence_count"` // Weighted evidence signals
	ClaimCount     int      `json:"claim_count"`
	Ratio          float64  `json:"ratio"`
	Label          string   `json:"label"`
	ExplicitCount  int      `json:"explicit_count"`
	ImplicitCount  int      `json:"implicit_count"`
	Statistics     int      `json:"statistics"`
	Quotations     int      `json:"quotations"`
	ProperNouns    int      `json:"proper_nouns"`
	Years          int      `json:"years"`
	Categories     int      `json:"categories"`
	VarietyBonus   float64  `json:"variety_bonus"`
	ExplicitPhrase []string `json:"explicit_phrases,omitempty"`
}

// CountFeature is a marker count normalized through a step table
type CountFeature struct {
	Score   float64  `json:"score"`
	Count   int      `json:"count"`
	Label   string   `json:"label"`
	Matches []string `json:"matches,omitempty"`
}

// ArgumentFeature describes position-taking and argumentative hygiene
type ArgumentFeature struct {
	Score            float64  `json:"score"`
	Label            string   `json:"label"`
	HasPosition      bool     `json:"has_position"`
	PositionCount    int      `json:"position_count"`
	CounterCount     int      `json:"counter_count"`
	RebuttalCount    int      `json:"rebuttal_count"`
	IndicatorCount   int      `json:"indicator_count"`
	FallacyCount     int      `json:"fallacy_count"`
	UnsupportedCount int      `json:"unsupported_count"`
	Fallacies        []string `json:"fallacies,omitempty"`
}

// RelevanceFeature describes how often evidence is tied back to analysis
type RelevanceFeature struct {
	Score             float64 `json:"score"`
	EvidenceSentences int     `json:"evidence_sentences"`
	LinkedSentences   int     `json:"linked_sentences"`
}

// TransitionCategory is one of the six transition buckets
type TransitionCategory string

const (
	TransitionAddition    TransitionCategory = "addition"
	TransitionContrast    TransitionCategory = "contrast"
	TransitionCauseEffect TransitionCategory = "cause_effect"
	TransitionExample     TransitionCategory = "example"
	TransitionSequence    TransitionCategory = "sequence"
	TransitionEmphasis    TransitionCategory = "emphasis"
)

// StructureFeature describes paragraph and rhetorical organization
type StructureFeature struct {
	StructureScore     int                        `json:"structure_score"` // 0-100
	Paragraphs         int                        `json:"paragraphs"`
	HasIntro           bool                       `json:"has_intro"`
	HasConclusion      bool                       `json:"has_conclusion"`
	ExplicitTopic      int                        `json:"explicit_topic_sentences"`
	ImplicitTopic      int                        `json:"implicit_topic_sentences"`
	BodyParagraphs     int                        `json:"body_paragraphs"`
	Transitions        map[TransitionCategory]int `json:"transitions"`
	TransitionTotal    int                        `json:"transition_total"`
	CategoriesUsed     int                        `json:"categories_used"`
	CrossReferences    int                        `json:"cross_references"`
	IntroQuality       float64                    `json:"intro_quality"`
	ConclusionQuality  float64                    `json:"conclusion_quality"`
	Coherence          float64                    `json:"coherence"`
	TransitionScore    float64                    `json:"transition_score"`
	TopicSentenceScore float64                    `json:"topic_sentence_score"`
	Recommendations    []string                   `json:"recommendations,omitempty"`
}

// Tone is one of the EmotionFlow tone buckets
type Tone string

const (
	TonePositive   Tone = "positive"
	ToneReflective Tone = "reflective"
	ToneAssertive  Tone = "assertive"
	ToneEmpathetic Tone = "empathetic"
	ToneAnalytical Tone = "analytical"
	ToneNeutral    Tone = "neutral"
)

// Tones lists the tone buckets in tie-break order
var Tones = []Tone{TonePositive, ToneReflective, ToneAssertive, ToneEmpathetic, ToneAnalytical}

// EmotionFeature describes the essay's emotional tone distribution
type EmotionFeature struct {
	Counts       map[Tone]int     `json:"counts"`
	Distribution map[Tone]float64 `json:"distribution"` // Percent of tone words per bucket
	Dominant     Tone             `json:"dominant_tone"`
	Engagement   float64          `json:"engagement_level"` // 0-100
	Authenticity float64          `json:"authenticity"`     // 0-100
}

// CounterArgumentFeature describes counter-argument and rebuttal sophistication
type CounterArgumentFeature struct {
	Score              float64 `json:"score"`
	Sophistication     string  `json:"sophistication"`
	CounterCount       int     `json:"counter_count"`
	RebuttalCount      int     `json:"rebuttal_count"`
	CounterParagraphs  int     `json:"counter_paragraphs"`
	BalancedParagraphs int     `json:"balanced_paragraphs"` // Paragraphs with both counter and rebuttal
	ReasoningBonus     float64 `json:"reasoning_bonus"`
}

// ReflectionFeature describes personal reflection depth
type ReflectionFeature struct {
	Score            float64 `json:"score"`
	Label            string  `json:"label"`
	DeepCount        int     `json:"deep_count"`
	GrowthCount      int     `json:"growth_count"`
	RealWorldCount   int     `json:"real_world_count"`
	NoveltyBonus     float64 `json:"novelty_bonus"`
	RelevanceBonus   float64 `json:"relevance_bonus"`
	ConsistencyBonus float64 `json:"consistency_bonus"`
}

// VocabularyFeature describes lexical range
type VocabularyFeature struct {
	Words            int     `json:"words"`
	UniqueWords      int     `json:"unique_words"`
	Diversity        float64 `json:"diversity"` // unique / total
	DiversityScore   float64 `json:"diversity_score"`
	Sophisticated    int     `json:"sophisticated"`
	RhetoricalDevice int     `json:"rhetorical_devices"`
}

// InsightFeature describes personal voice and stance
type InsightFeature struct {
	Score     float64 `json:"score"`
	Anecdotes int     `json:"anecdotes"`
	Positions int     `json:"positions"`
	Deep      int     `json:"deep"`
}

// Features groups every extractor output for a single essay
type Features struct {
	Thesis          ThesisFeature          `json:"thesis"`
	Evidence        EvidenceFeature        `json:"evidence"`
	Analysis        CountFeature           `json:"analysis"`
	Argument        ArgumentFeature        `json:"argument"`
	ClaimDepth      CountFeature           `json:"claim_depth"`
	Relevance       RelevanceFeature       `json:"evidence_relevance"`
	Structure       StructureFeature       `json:"structure"`
	Emotion         EmotionFeature         `json:"emotion"`
	CounterArgument CounterArgumentFeature `json:"counter_argument"`
	Reflection      ReflectionFeature      `json:"reflection"`
	Vocabulary      VocabularyFeature      `json:"vocabulary"`
	Insight         InsightFeature         `json:"personal_insight"`
	RealWorld       CountFeature           `json:"real_world"`
	Words           int                    `json:"words"`
	Sentences       int                    `json:"sentences"`
}
