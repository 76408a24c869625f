package calibrate

import (
	"math"

	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/score"
)

// AutoAlign parameters
const (
	MaxIterations        = 50
	ConvergenceThreshold = 0.05
	alignFloor           = 6.0
	alignCeiling         = 10.0

	// FactorTolerance and SubsystemTolerance decide the reported aligned flags
	FactorTolerance    = 0.5
	SubsystemTolerance = 2.0
)

// LearningRate returns the base AutoAlign step size for the grade
func LearningRate(grade model.GradeLevel) float64 {
	switch {
	case grade <= 9:
		return 0.10
	case grade == 10:
		return 0.12
	default:
		return 0.15
	}
}

// AutoAlign nudges factor scores toward teacher targets with a linearly decaying
// step. Factors without a target are left untouched. This is a damped interpolation
// toward a fixed point, not an optimizer.
func AutoAlign(scores model.FactorScores, targets *model.TeacherTargets, grade model.GradeLevel) (model.FactorScores, model.Alignment) {
	lr := LearningRate(grade)
	alignment := model.Alignment{
		LearningRate: lr,
		Factors:      make(map[model.Factor]model.FactorAlignment),
	}
	if !targets.HasScores() {
		alignment.Converged = true
		return scores, alignment
	}

	before := scores
	var active []model.Factor
	for _, f := range model.Factors {
		if _, ok := targets.Scores[f]; ok {
			active = append(active, f)
		}
	}

	for i := 0; i < MaxIterations; i++ {
		done := true
		decay := 1 - float64(i)/MaxIterations
		for _, f := range active {
			current := scores.Get(f)
			delta := targets.Scores[f] - current
			if math.Abs(delta) <= ConvergenceThreshold {
				continue
			}
			done = false
			scores.Set(f, model.Clamp(current+delta*lr*decay, alignFloor, alignCeiling))
		}
		if done {
			alignment.Converged = true
			break
		}
		alignment.Iterations = i + 1
	}

	if !alignment.Converged {
		alignment.Converged = true
		for _, f := range active {
			if math.Abs(targets.Scores[f]-scores.Get(f)) > ConvergenceThreshold {
				alignment.Converged = false
				break
			}
		}
	}

	for _, f := range active {
		delta := math.Abs(targets.Scores[f] - scores.Get(f))
		alignment.Factors[f] = model.FactorAlignment{
			Before:  before.Get(f),
			After:   model.Round2(scores.Get(f)),
			Target:  targets.Scores[f],
			Delta:   model.Round2(delta),
			Aligned: delta < FactorTolerance,
		}
	}

	if len(targets.Subsystems) > 0 {
		beforeSubs := score.Subsystems(before)
		afterSubs := score.Subsystems(scores)
		alignment.Subsystems = make(map[model.Subsystem]model.FactorAlignment, len(targets.Subsystems))
		for _, name := range model.Subsystems {
			target, ok := targets.Subsystems[name]
			if !ok {
				continue
			}
			delta := math.Abs(target - afterSubs.Get(name))
			alignment.Subsystems[name] = model.FactorAlignment{
				Before:  beforeSubs.Get(name),
				After:   afterSubs.Get(name),
				Target:  target,
				Delta:   model.Round2(delta),
				Aligned: delta < SubsystemTolerance,
			}
		}
	}

	return scores, alignment
}
