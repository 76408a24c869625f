package pipeline

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/douessay/internal/feedback"
	"github.com/ppiankov/douessay/internal/grammar"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/profile"
)

const testEssay = `In this essay, I will argue that schools should start later. I believe teenagers need more sleep, and there are several reasons for this.

Firstly, research shows that 70% of teenagers sleep less than eight hours. For example, a study by the National Sleep Foundation in 2019 found that tired students perform worse. This suggests that sleep affects learning.

Some argue that later start times cause problems for parents. Critics say buses would be harder to schedule. However, this overlooks the benefits for student health. Nevertheless, schools must plan carefully.

When I was in grade nine, I remember falling asleep in class. Looking back, I realized that my grades suffered. This taught me that rest matters because it leads to better focus in everyday life.

In conclusion, as mentioned earlier, later start times would improve learning. Ultimately, I believe this change can be applied in our community.`

type stubChecker struct {
	issues []grammar.Issue
	err    error
}

func (s stubChecker) Check(context.Context, string) ([]grammar.Issue, error) {
	return s.issues, s.err
}

type blockingChecker struct{}

func (blockingChecker) Check(ctx context.Context, _ string) ([]grammar.Issue, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type panicChecker struct{}

func (panicChecker) Check(context.Context, string) ([]grammar.Issue, error) {
	panic("checker exploded")
}

func TestGradeEssay_Deterministic(t *testing.T) {
	g := NewGrader(nil)

	first := g.GradeEssay(context.Background(), testEssay, 11)
	second := g.GradeEssay(context.Background(), testEssay, 11)

	if first.Score != second.Score {
		t.Errorf("Expected identical scores, got %v and %v", first.Score, second.Score)
	}
	if !reflect.DeepEqual(first.Feedback, second.Feedback) {
		t.Errorf("Expected identical feedback")
	}
	if !reflect.DeepEqual(first.DetailedAnalysis, second.DetailedAnalysis) {
		t.Errorf("Expected identical detailed analysis")
	}
	if first.RequestID == second.RequestID {
		t.Errorf("Expected distinct request IDs")
	}
}

func TestGradeEssay_Bounds(t *testing.T) {
	g := NewGrader(nil)
	inputs := []string{
		testEssay,
		strings.Repeat("Always everyone never nobody. ", 20),
		strings.Repeat("For example, research shows 45% of 2020 data. ", 30),
		"",
	}

	for i, text := range inputs {
		for grade := model.GradeLevel(9); grade <= 12; grade++ {
			res := g.GradeEssay(context.Background(), text, grade)
			if res.Score < 0 || res.Score > 100 {
				t.Errorf("input %d grade %d: score %v out of range", i, grade, res.Score)
			}
			for f, d := range res.DetailedAnalysis.Factors {
				if d.Score < 0 || d.Score > 10 {
					t.Errorf("input %d grade %d: %s = %v out of range", i, grade, f, d.Score)
				}
			}
			for name, d := range res.Subsystems {
				if d.Score < 0 || d.Score > 100 {
					t.Errorf("input %d grade %d: %s = %v out of range", i, grade, name, d.Score)
				}
			}
		}
	}
}

func TestGradeEssay_ShortEssayFallback(t *testing.T) {
	g := NewGrader(nil)
	res := g.GradeEssay(context.Background(), "Technology is important. It helps students learn better.", 9)

	if !res.Fallback {
		t.Fatal("Expected fallback result for short essay")
	}
	if res.Score >= 80 || res.Score < 60 || res.Score > 75 {
		t.Errorf("Expected fallback score in [60,75], got %v", res.Score)
	}
	if res.Score != 68.4 {
		t.Errorf("Expected 60 + 15*56/100 = 68.4, got %v", res.Score)
	}

	joined := strings.ToLower(strings.Join(res.Feedback, " "))
	if !strings.Contains(joined, "short") || !strings.Contains(joined, "expand") {
		t.Errorf("Expected feedback to mention length shortfall, got %v", res.Feedback)
	}
	if res.GradeLevel != 9 {
		t.Errorf("Expected grade 9, got %v", res.GradeLevel)
	}
}

func TestGradeEssay_EmptyEssay(t *testing.T) {
	res := NewGrader(nil).GradeEssay(context.Background(), "   ", 10)
	if !res.Fallback || res.Score != 60 {
		t.Errorf("Expected fallback score 60 for empty essay, got %v (fallback=%v)", res.Score, res.Fallback)
	}
}

func TestGradeEssay_InvalidGradeFallsBack(t *testing.T) {
	res := NewGrader(nil).GradeEssay(context.Background(), testEssay, 42)
	if res.GradeLevel != model.DefaultGrade {
		t.Errorf("Expected grade 10, got %v", res.GradeLevel)
	}
}

func TestGradeEssay_GrammarChecker(t *testing.T) {
	checker := stubChecker{issues: []grammar.Issue{
		{Offset: 0, Length: 2, Message: "a", Replacements: []string{"In"}},
		{Offset: 5, Length: 2, Message: "b"},
		{Offset: 9, Length: 2, Message: "c", Replacements: []string{"is"}},
	}}
	res := NewGrader(nil, WithChecker(checker)).GradeEssay(context.Background(), testEssay, 10)

	gs := res.DetailedAnalysis.Grammar
	if !gs.Checked || gs.ErrorCount != 3 {
		t.Errorf("Expected 3 checked errors, got %+v", gs)
	}
	if !reflect.DeepEqual(gs.Replacements, []string{"In", "is"}) {
		t.Errorf("Unexpected replacements: %v", gs.Replacements)
	}
	if got := res.DetailedAnalysis.Factors[model.FactorGrammar].Score; got != 8 {
		t.Errorf("Expected grammar score 8 for 3 errors, got %v", got)
	}
}

func TestGradeEssay_GrammarFailureUsesDefault(t *testing.T) {
	g := NewGrader(nil, WithChecker(stubChecker{err: errors.New("connection refused")}))
	res := g.GradeEssay(context.Background(), testEssay, 10)

	if res.Error != "" {
		t.Fatalf("Expected grading to continue, got error %q", res.Error)
	}
	gs := res.DetailedAnalysis.Grammar
	if gs.Checked || gs.ErrorCount != 0 {
		t.Errorf("Expected unchecked grammar, got %+v", gs)
	}
	if got := res.DetailedAnalysis.Factors[model.FactorGrammar].Score; got != 8 {
		t.Errorf("Expected neutral grammar score 8, got %v", got)
	}
}

func TestGradeEssay_BudgetBoundsGrammar(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Grading.Budget = 20 * time.Millisecond

	start := time.Now()
	res := NewGrader(cfg, WithChecker(blockingChecker{})).GradeEssay(context.Background(), testEssay, 10)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected budget to bound the grammar call, took %v", elapsed)
	}
	if res.DetailedAnalysis.Grammar.Checked {
		t.Errorf("Expected grammar to be unchecked after timeout")
	}
}

func TestGradeEssay_RecoversPanics(t *testing.T) {
	res := NewGrader(nil, WithChecker(panicChecker{})).GradeEssay(context.Background(), testEssay, 10)

	if res.Error != feedback.TemporaryError {
		t.Errorf("Expected temporary error, got %q", res.Error)
	}
	if len(res.Feedback) != 1 || res.Feedback[0] != feedback.TemporaryError {
		t.Errorf("Expected single temporary-error feedback line, got %v", res.Feedback)
	}
	if res.RubricLevel.Level != model.LevelUnknown {
		t.Errorf("Expected unknown level, got %v", res.RubricLevel.Level)
	}
	if res.RequestID == "" {
		t.Errorf("Expected request ID to survive recovery")
	}
}

func TestGradeEssay_StripsHTML(t *testing.T) {
	html := "<html><body>" +
		"<p>" + strings.ReplaceAll(testEssay, "\n\n", "</p><p>") + "</p>" +
		"<script>alert('x')</script></body></html>"

	g := NewGrader(nil)
	fromHTML := g.GradeEssay(context.Background(), html, 10)
	plain := g.GradeEssay(context.Background(), testEssay, 10)

	if fromHTML.Score != plain.Score {
		t.Errorf("Expected HTML essay to score like plain text: %v vs %v", fromHTML.Score, plain.Score)
	}
}

func TestGradeEssay_ProgressTracking(t *testing.T) {
	store := profile.NewMemoryStore(0)
	g := NewGrader(nil, WithProfiles(store))

	first := g.GradeEssayFor(context.Background(), "student-1", testEssay, 10)
	second := g.GradeEssayFor(context.Background(), "student-1", testEssay, 10)

	for _, line := range first.Feedback {
		if strings.Contains(line, "last essay") {
			t.Errorf("First submission should have no progress line, got %q", line)
		}
	}
	last := second.Feedback[len(second.Feedback)-1]
	if last != "Your scores are consistent with your last essay." {
		t.Errorf("Expected consistency line, got %q", last)
	}

	h, _ := store.History(context.Background(), "student-1")
	if len(h) != 2 {
		t.Errorf("Expected 2 snapshots, got %d", len(h))
	}
}

func TestGradeEssay_IncludeFeatures(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Grading.IncludeFeatures = true

	res := NewGrader(cfg).GradeEssay(context.Background(), testEssay, 10)
	if res.DetailedAnalysis.Features == nil {
		t.Fatal("Expected features to be attached")
	}
	if res.DetailedAnalysis.Features.Structure.Paragraphs != 5 {
		t.Errorf("Expected 5 paragraphs, got %d", res.DetailedAnalysis.Features.Structure.Paragraphs)
	}
}

func TestAssessEssay_WithoutTargets(t *testing.T) {
	a := NewGrader(nil).AssessEssay(context.Background(), testEssay, 10, nil)

	if a.Alignment != nil {
		t.Errorf("Expected no alignment without targets")
	}
	if math.Abs(a.Overall*100-a.Score) > 1e-9 {
		t.Errorf("Expected overall to be score/100, got %v and %v", a.Overall, a.Score)
	}
	ci := a.ConfidenceIntervals.Factors[model.FactorContent]
	if math.Abs(ci.MarginOfError-0.5) > 1e-9 || ci.ConfidenceLevel != 0.85 {
		t.Errorf("Expected unaligned interval margin 0.5 at 0.85, got %+v", ci)
	}
	if a.InlineFeedback == nil {
		t.Errorf("Expected non-nil inline feedback")
	}
	if len(a.ConfidenceIntervals.Subsystems) != len(model.Subsystems) {
		t.Errorf("Expected an interval per subsystem")
	}
}

func TestAssessEssay_WithTargets(t *testing.T) {
	g := NewGrader(nil)
	baseline := g.AssessEssay(context.Background(), testEssay, 11, nil)

	target := math.Min(10, math.Max(6, baseline.FactorScores.Content+0.3))
	targets := &model.TeacherTargets{Scores: map[model.Factor]float64{model.FactorContent: target}}
	a := g.AssessEssay(context.Background(), testEssay, 11, targets)

	if a.Alignment == nil {
		t.Fatal("Expected alignment trace with targets")
	}
	fa, ok := a.Alignment.Factors[model.FactorContent]
	if !ok {
		t.Fatal("Expected Content in alignment trace")
	}
	if fa.Target != target {
		t.Errorf("Expected target %v, got %v", target, fa.Target)
	}
	ci := a.ConfidenceIntervals.Factors[model.FactorContent]
	if math.Abs(ci.MarginOfError-0.15) > 1e-9 || ci.ConfidenceLevel != 0.98 {
		t.Errorf("Expected aligned interval margin 0.15 at 0.98, got %+v", ci)
	}
	if !a.Alignment.Converged && a.Alignment.Iterations != 50 {
		t.Errorf("Expected convergence or an exhausted budget, got %+v", a.Alignment)
	}
}

func TestAssessEssay_RecoversPanics(t *testing.T) {
	a := NewGrader(nil, WithChecker(panicChecker{})).AssessEssay(context.Background(), testEssay, 10, nil)
	if a.Error != feedback.TemporaryError || !a.Fallback {
		t.Errorf("Expected temporary error assessment, got %+v", a)
	}
}
