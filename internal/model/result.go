package model

import (
	"time"
)

// GradingResult is the complete output of grading a single essay
type GradingResult struct {
	RequestID        string                   `json:"request_id"`
	GradedAt         time.Time                `json:"graded_at"`
	GradeLevel       GradeLevel               `json:"grade_level"`
	Score            float64                  `json:"score"` // 0-100
	RubricLevel      RubricLevel              `json:"rubric_level"`
	Feedback         []string                 `json:"feedback"`
	DetailedAnalysis DetailedAnalysis         `json:"detailed_analysis"`
	Subsystems       map[Subsystem]Diagnostic `json:"subsystems,omitempty"`
	Fallback         bool                     `json:"fallback,omitempty"` // Short-essay or error path
	Error            string                   `json:"error,omitempty"`
	Elapsed          time.Duration            `json:"elapsed_ns"`
}

// DetailedAnalysis carries the per-factor breakdown
type DetailedAnalysis struct {
	Factors  map[Factor]FactorDetail `json:"factors"`
	Features *Features               `json:"features,omitempty"`
	Grammar  GrammarSummary          `json:"grammar"`
	Words    int                     `json:"words"`
}

// FactorDetail is one factor's score and the signals that produced it
type FactorDetail struct {
	Score   float64  `json:"score"` // 0-10
	Signals []Signal `json:"signals"`
}

// GrammarSummary reports the grammar collaborator outcome
type GrammarSummary struct {
	ErrorCount   int      `json:"error_count"`
	Replacements []string `json:"replacements,omitempty"`
	Checked      bool     `json:"checked"`
	Note         string   `json:"note,omitempty"`
}

// Diagnostic is a subsystem-branded view over existing features
type Diagnostic struct {
	Score   float64  `json:"score"` // 0-100
	Summary string   `json:"summary"`
	Details []string `json:"details,omitempty"`
}

// Assessment is the automated accuracy-testing view of a grading run
type Assessment struct {
	RequestID           string              `json:"request_id"`
	Overall             float64             `json:"overall"` // 0-1
	FactorScores        AssessmentFactors   `json:"factor_scores"`
	Subsystems          SubsystemScores     `json:"subsystems"`
	ConfidenceIntervals ConfidenceIntervals `json:"confidence_intervals"`
	InlineFeedback      []InlineNote        `json:"inline_feedback"`
	Score               float64             `json:"score"`
	RubricLevel         RubricLevel         `json:"rubric_level"`
	Alignment           *Alignment          `json:"alignment,omitempty"`
	Fallback            bool                `json:"fallback,omitempty"`
	Error               string              `json:"error,omitempty"`
}

// AssessmentFactors is FactorScores plus the weighted overall (all 0-10)
type AssessmentFactors struct {
	FactorScores
	Overall float64 `json:"Overall"`
}

// InlineNote is a sentence-level feedback annotation
type InlineNote struct {
	Sentence int    `json:"sentence"` // Sentence index (0-based)
	Excerpt  string `json:"excerpt"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// TeacherTargets are externally supplied target scores used only for calibration
type TeacherTargets struct {
	Scores     map[Factor]float64    `json:"scores,omitempty"`     // 0-10
	Subsystems map[Subsystem]float64 `json:"subsystems,omitempty"` // 0-100
}

// HasScores reports whether any factor target was supplied
func (t *TeacherTargets) HasScores() bool {
	return t != nil && len(t.Scores) > 0
}

// Alignment reports the outcome of AutoAlign calibration
type Alignment struct {
	Iterations   int                           `json:"iterations"`
	Converged    bool                          `json:"converged"`
	LearningRate float64                       `json:"learning_rate"`
	Factors      map[Factor]FactorAlignment    `json:"factors"`
	Subsystems   map[Subsystem]FactorAlignment `json:"subsystems,omitempty"`
}

// FactorAlignment is a single dimension's calibration trace
type FactorAlignment struct {
	Before  float64 `json:"before"`
	After   float64 `json:"after"`
	Target  float64 `json:"target"`
	Delta   float64 `json:"delta"` // |target - after|
	Aligned bool    `json:"aligned"`
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs and formula
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalThesis          SignalType = "thesis"
	SignalEvidence        SignalType = "evidence"
	SignalAnalysis        SignalType = "analysis"
	SignalArgument        SignalType = "argument_strength"
	SignalClaimDepth      SignalType = "claim_depth"
	SignalRelevance       SignalType = "evidence_relevance"
	SignalRhetoric        SignalType = "rhetorical_structure"
	SignalBonus           SignalType = "bonus"
	SignalPenalty         SignalType = "penalty"
	SignalIntro           SignalType = "intro_quality"
	SignalConclusion      SignalType = "conclusion_quality"
	SignalCoherence       SignalType = "paragraph_coherence"
	SignalTransitions     SignalType = "transitions"
	SignalTopicSentences  SignalType = "topic_sentences"
	SignalGrammar         SignalType = "grammar"
	SignalPersonalInsight SignalType = "personal_insight"
	SignalRealWorld       SignalType = "real_world"
	SignalLexical         SignalType = "lexical_diversity"
	SignalReflection      SignalType = "reflection_depth"
	SignalCalibration     SignalType = "calibration"
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
