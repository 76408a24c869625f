// Package rubric maps percentage scores onto Ontario achievement levels.
package rubric

import (
	"math"

	"github.com/ppiankov/douessay/internal/model"
)

// threshold is a lower bound (inclusive) for a level
type threshold struct {
	min   float64
	level model.Level
}

// thresholds are evaluated from high to low; ≥80 maps to Level 4
var thresholds = []threshold{
	{90, model.Level4Plus},
	{80, model.Level4},
	{75, model.Level3},
	{70, model.Level2Plus},
	{65, model.Level2},
	{60, model.Level1},
}

// LevelFor returns the achievement level for a 0-100 percentage
func LevelFor(percentage float64) model.Level {
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < 0 || percentage > 100 {
		return model.LevelUnknown
	}
	for _, t := range thresholds {
		if percentage >= t.min {
			return t.level
		}
	}
	return model.LevelR
}

// ForScore returns the canonical rubric level for a 0-100 percentage
func ForScore(percentage float64) model.RubricLevel {
	level := LevelFor(percentage)
	r := model.RubricLevel{Level: level, Description: level.Description()}
	if level != model.LevelUnknown {
		r.Score = model.Round2(percentage)
	}
	return r
}

// Distance returns how many bands apart two levels are, or -1 if either is unknown
func Distance(a, b model.Level) int {
	ra, rb := a.Rank(), b.Rank()
	if ra < 0 || rb < 0 {
		return -1
	}
	if ra > rb {
		return ra - rb
	}
	return rb - ra
}
