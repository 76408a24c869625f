// Package agreement reports how closely system scores match teacher scores.
//
// The kappa value and the confidence interval are fixed heuristics: kappa is a step
// function of rubric-level distance and the interval is a constant ±1.96×2.5 band.
// Neither is derived from sample statistics.
package agreement

import (
	"math"

	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/rubric"
)

// Agreement heuristics
const (
	IntervalMargin     = 1.96 * 2.5
	FactorTolerance    = 0.5
	SubsystemTolerance = 2.0
)

// ScoreSet is one grader's view of an essay
type ScoreSet struct {
	Percentage float64                     `json:"score"` // 0-100
	Factors    map[model.Factor]float64    `json:"factor_scores,omitempty"`
	Subsystems map[model.Subsystem]float64 `json:"subsystems,omitempty"`
}

// Field compares one dimension between the two graders
type Field struct {
	System  float64 `json:"system"`
	Teacher float64 `json:"teacher"`
	Error   float64 `json:"error"`
	Aligned bool    `json:"aligned"`
}

// Interval is the fixed-width band around the system score
type Interval struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Margin float64 `json:"margin"`
}

// Report is the outcome of a single comparison
type Report struct {
	AbsoluteError float64                   `json:"absolute_error"`
	ErrorPercent  float64                   `json:"error_percent"`
	SystemLevel   model.Level               `json:"system_level"`
	TeacherLevel  model.Level               `json:"teacher_level"`
	LevelDistance int                       `json:"level_distance"`
	Kappa         float64                   `json:"kappa"`
	Interval      Interval                  `json:"confidence_interval"`
	WithinBand    bool                      `json:"within_interval"`
	Factors       map[model.Factor]Field    `json:"factors,omitempty"`
	Subsystems    map[model.Subsystem]Field `json:"subsystems,omitempty"`
	Aligned       bool                      `json:"aligned"` // Every compared field aligned
}

// Compare computes error, kappa proxy and per-dimension alignment flags
func Compare(system, teacher ScoreSet) Report {
	absErr := math.Abs(system.Percentage - teacher.Percentage)

	r := Report{
		AbsoluteError: model.Round2(absErr),
		ErrorPercent:  model.Round2(absErr / math.Max(1, teacher.Percentage) * 100),
		SystemLevel:   rubric.LevelFor(system.Percentage),
		TeacherLevel:  rubric.LevelFor(teacher.Percentage),
		Interval: Interval{
			Lower:  model.Round2(model.Clamp(system.Percentage-IntervalMargin, 0, 100)),
			Upper:  model.Round2(model.Clamp(system.Percentage+IntervalMargin, 0, 100)),
			Margin: IntervalMargin,
		},
		Aligned: true,
	}
	r.LevelDistance = rubric.Distance(r.SystemLevel, r.TeacherLevel)
	r.Kappa = Kappa(r.LevelDistance)
	r.WithinBand = teacher.Percentage >= r.Interval.Lower && teacher.Percentage <= r.Interval.Upper

	if len(teacher.Factors) > 0 {
		r.Factors = make(map[model.Factor]Field, len(teacher.Factors))
		for _, f := range model.Factors {
			target, ok := teacher.Factors[f]
			if !ok {
				continue
			}
			field := compareField(system.Factors[f], target, FactorTolerance)
			r.Factors[f] = field
			r.Aligned = r.Aligned && field.Aligned
		}
	}

	if len(teacher.Subsystems) > 0 {
		r.Subsystems = make(map[model.Subsystem]Field, len(teacher.Subsystems))
		for _, name := range model.Subsystems {
			target, ok := teacher.Subsystems[name]
			if !ok {
				continue
			}
			field := compareField(system.Subsystems[name], target, SubsystemTolerance)
			r.Subsystems[name] = field
			r.Aligned = r.Aligned && field.Aligned
		}
	}

	return r
}

// Kappa maps rubric-level distance onto the agreement proxy
func Kappa(distance int) float64 {
	switch distance {
	case 0:
		return 1.0
	case 1:
		return 0.90
	case 2:
		return 0.75
	}
	return 0.50
}

func compareField(system, teacher, tolerance float64) Field {
	e := math.Abs(system - teacher)
	return Field{
		System:  system,
		Teacher: teacher,
		Error:   model.Round2(e),
		Aligned: e < tolerance,
	}
}

// FromFactorScores builds a ScoreSet from a grading run
func FromFactorScores(percentage float64, scores model.FactorScores, subsystems model.SubsystemScores) ScoreSet {
	set := ScoreSet{
		Percentage: percentage,
		Factors:    make(map[model.Factor]float64, len(model.Factors)),
		Subsystems: make(map[model.Subsystem]float64, len(model.Subsystems)),
	}
	for _, f := range model.Factors {
		set.Factors[f] = scores.Get(f)
	}
	for _, name := range model.Subsystems {
		set.Subsystems[name] = subsystems.Get(name)
	}
	return set
}
