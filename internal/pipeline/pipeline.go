// Package pipeline orchestrates grading: input cleanup, feature extraction,
// scoring, calibration, rubric mapping and feedback.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ppiankov/douessay/internal/calibrate"
	"github.com/ppiankov/douessay/internal/extract"
	"github.com/ppiankov/douessay/internal/feedback"
	"github.com/ppiankov/douessay/internal/grammar"
	"github.com/ppiankov/douessay/internal/logging"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/profile"
	"github.com/ppiankov/douessay/internal/rubric"
	"github.com/ppiankov/douessay/internal/score"
)

// Short-essay fallback band
const (
	fallbackBase  = 60.0
	fallbackRange = 15.0
	fallbackMax   = 75.0
)

// Grader grades essays. It holds no per-essay state and is safe for concurrent use.
type Grader struct {
	config   *model.Config
	checker  grammar.Checker
	log      *logging.Logger
	profiles profile.Store
	scorer   *score.Scorer
	now      func() time.Time
}

// Option configures a Grader
type Option func(*Grader)

// WithChecker sets the grammar checker (default: disabled)
func WithChecker(c grammar.Checker) Option {
	return func(g *Grader) { g.checker = c }
}

// WithLogger sets the logger (default: no-op)
func WithLogger(l *logging.Logger) Option {
	return func(g *Grader) { g.log = l }
}

// WithProfiles enables progress tracking against a profile store
func WithProfiles(s profile.Store) Option {
	return func(g *Grader) { g.profiles = s }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(g *Grader) { g.now = now }
}

// NewGrader creates a grader; a nil config means model.DefaultConfig()
func NewGrader(cfg *model.Config, opts ...Option) *Grader {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	g := &Grader{
		config:  cfg,
		checker: grammar.Disabled{},
		log:     logging.Nop(),
		scorer:  score.NewScorer(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// evaluation is the shared intermediate result of GradeEssay and AssessEssay
type evaluation struct {
	text       string
	grade      model.GradeLevel
	fallback   bool
	length     int
	features   model.Features
	grammar    model.GrammarSummary
	details    map[model.Factor]model.FactorDetail
	scores     model.FactorScores
	percentage float64
	level      model.RubricLevel
	subsystems model.SubsystemScores
	alignment  *model.Alignment
}

// GradeEssay grades one essay anonymously
func (g *Grader) GradeEssay(ctx context.Context, text string, grade model.GradeLevel) model.GradingResult {
	return g.GradeEssayFor(ctx, "", text, grade)
}

// GradeEssayFor grades one essay and, when user is set and a profile store is
// configured, records the scores and adds a progress line to the feedback
func (g *Grader) GradeEssayFor(ctx context.Context, user, text string, grade model.GradeLevel) (result model.GradingResult) {
	start := g.now()
	result.RequestID = uuid.NewString()
	result.GradedAt = start.UTC()
	result.GradeLevel = model.ParseGrade(grade)
	log := g.log.With("request_id", result.RequestID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("grading failed", "panic", r)
			result = failedResult(result)
		}
		result.Elapsed = g.now().Sub(start)
	}()

	ev := g.evaluate(ctx, log, text, result.GradeLevel, nil)

	result.Score = ev.percentage
	result.RubricLevel = ev.level
	result.Fallback = ev.fallback
	result.DetailedAnalysis = model.DetailedAnalysis{
		Factors: ev.details,
		Grammar: ev.grammar,
		Words:   ev.features.Words,
	}
	if g.config.Grading.IncludeFeatures && !ev.fallback {
		features := ev.features
		result.DetailedAnalysis.Features = &features
	}

	if ev.fallback {
		result.Feedback = feedback.ShortEssay(ev.length, g.minChars())
	} else {
		result.Feedback = feedback.Build(feedback.Input{
			Text:       ev.text,
			Grade:      ev.grade,
			Percentage: ev.percentage,
			Level:      ev.level,
			Scores:     ev.scores,
			Features:   ev.features,
			Grammar:    ev.grammar,
		})
		result.Subsystems = feedback.Diagnostics(ev.subsystems, ev.features)
	}

	if line := g.trackProgress(ctx, log, user, ev, start); line != "" {
		result.Feedback = append(result.Feedback, line)
	}

	log.Debug("essay graded", "score", result.Score, "level", result.RubricLevel.Level, "fallback", result.Fallback)
	return result
}

// AssessEssay produces the accuracy-testing view. Teacher targets, when given,
// replace the grade curve with AutoAlign calibration.
func (g *Grader) AssessEssay(ctx context.Context, text string, grade model.GradeLevel, targets *model.TeacherTargets) (out model.Assessment) {
	out.RequestID = uuid.NewString()
	log := g.log.With("request_id", out.RequestID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("assessment failed", "panic", r)
			out = model.Assessment{
				RequestID:   out.RequestID,
				RubricLevel: unknownLevel(),
				Fallback:    true,
				Error:       feedback.TemporaryError,
			}
		}
	}()

	ev := g.evaluate(ctx, log, text, model.ParseGrade(grade), targets)

	out.Overall = ev.percentage / 100
	out.FactorScores = model.AssessmentFactors{FactorScores: ev.scores, Overall: score.Overall(ev.scores)}
	out.Subsystems = ev.subsystems
	out.ConfidenceIntervals = calibrate.Intervals(ev.scores, ev.subsystems, ev.alignment != nil)
	out.InlineFeedback = feedback.Inline(ev.text)
	out.Score = ev.percentage
	out.RubricLevel = ev.level
	out.Alignment = ev.alignment
	out.Fallback = ev.fallback
	return out
}

func (g *Grader) evaluate(ctx context.Context, log *logging.Logger, raw string, grade model.GradeLevel, targets *model.TeacherTargets) evaluation {
	// 1. Clean input
	text := cleanText(raw, log)
	ev := evaluation{text: text, grade: grade, length: utf8.RuneCountInString(text)}

	// 2. Short essays skip the full pipeline
	if ev.length < g.minChars() {
		return g.shortEssay(ev)
	}

	// 3. Extract features and check grammar under the wall-clock budget
	ev.features = extract.Analyze(text)
	ev.grammar = g.checkGrammar(ctx, log, text)

	// 4. Score factors
	res := g.scorer.Calculate(ev.features, ev.grammar)
	ev.scores = res.Scores
	ev.details = res.Details

	// 5. Calibrate: AutoAlign when targets exist, otherwise the grade curve
	if targets.HasScores() {
		aligned, alignment := calibrate.AutoAlign(ev.scores, targets, grade)
		ev.scores = aligned
		ev.alignment = &alignment
		for f, d := range ev.details {
			d.Score = model.Round2(ev.scores.Get(f))
			ev.details[f] = d
		}
		log.Debug("auto-align finished", "iterations", alignment.Iterations, "converged", alignment.Converged)
	} else {
		curved, signal := calibrate.ApplyGradeCurve(ev.scores, grade, ev.features.Analysis.Count)
		ev.scores = curved
		for f, d := range ev.details {
			d.Score = ev.scores.Get(f)
			d.Signals = append(d.Signals, signal)
			ev.details[f] = d
		}
	}

	// 6. Overall, rubric, subsystems
	ev.percentage = score.Percentage(ev.scores)
	ev.level = rubric.ForScore(ev.percentage)
	ev.subsystems = score.Subsystems(ev.scores)
	return ev
}

func (g *Grader) shortEssay(ev evaluation) evaluation {
	ev.fallback = true
	pct := model.Clamp(fallbackBase+fallbackRange*float64(ev.length)/100, fallbackBase, fallbackMax)
	ev.percentage = model.Round2(pct)

	factor := model.Round2(pct / 10)
	ev.details = make(map[model.Factor]model.FactorDetail, len(model.Factors))
	for _, f := range model.Factors {
		ev.scores.Set(f, factor)
		ev.details[f] = model.FactorDetail{Score: factor, Signals: []model.Signal{{
			Type:        model.SignalPenalty,
			Severity:    model.SeverityWarning,
			Description: "Essay below minimum length; fallback score",
			Data: map[string]interface{}{
				"length":  ev.length,
				"formula": "clamp(60 + 15*length/100, 60, 75) / 10",
			},
		}}}
	}
	ev.features = extract.Analyze(ev.text)
	ev.grammar = model.GrammarSummary{Note: "skipped for short essay"}
	ev.level = rubric.ForScore(ev.percentage)
	ev.subsystems = score.Subsystems(ev.scores)
	return ev
}

func (g *Grader) checkGrammar(ctx context.Context, log *logging.Logger, text string) model.GrammarSummary {
	if budget := g.config.Grading.Budget; budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	issues, err := g.checker.Check(ctx, text)
	if err != nil {
		if errors.Is(err, grammar.ErrDisabled) {
			return model.GrammarSummary{Note: "grammar check disabled"}
		}
		log.Warn("grammar check failed, using neutral default", "error", err)
		return model.GrammarSummary{Note: "grammar check unavailable"}
	}

	return model.GrammarSummary{
		ErrorCount:   len(issues),
		Replacements: grammar.Replacements(issues),
		Checked:      true,
	}
}

func (g *Grader) trackProgress(ctx context.Context, log *logging.Logger, user string, ev evaluation, at time.Time) string {
	if user == "" || g.profiles == nil || ev.fallback {
		return ""
	}

	var line string
	prev, ok, err := g.profiles.Latest(ctx, user)
	if err != nil {
		log.Warn("profile lookup failed", "user", user, "error", err)
	} else if ok {
		line = feedback.Progress(prev.Scores, ev.scores)
	}

	snap := profile.Snapshot{Scores: ev.scores, Percentage: ev.percentage, Grade: ev.grade, RecordedAt: at.UTC()}
	if err := g.profiles.Append(ctx, user, snap); err != nil {
		log.Warn("profile update failed", "user", user, "error", err)
	}
	return line
}

func (g *Grader) minChars() int {
	if g.config.Grading.MinChars > 0 {
		return g.config.Grading.MinChars
	}
	return model.DefaultConfig().Grading.MinChars
}

// cleanText strips markup from HTML essays and trims whitespace
func cleanText(raw string, log *logging.Logger) string {
	text := raw
	if extract.LooksLikeHTML(raw) {
		stripped, err := extract.StripHTML(raw)
		if err != nil {
			log.Warn("could not strip HTML, grading raw text", "error", err)
		} else {
			text = stripped
		}
	}
	return strings.TrimSpace(text)
}

func failedResult(r model.GradingResult) model.GradingResult {
	return model.GradingResult{
		RequestID:   r.RequestID,
		GradedAt:    r.GradedAt,
		GradeLevel:  r.GradeLevel,
		RubricLevel: unknownLevel(),
		Feedback:    []string{feedback.TemporaryError},
		Fallback:    true,
		Error:       feedback.TemporaryError,
	}
}

func unknownLevel() model.RubricLevel {
	return model.RubricLevel{Level: model.LevelUnknown, Description: model.LevelUnknown.Description()}
}
