// Package calibrate adjusts factor scores for grade level and aligns them toward
// teacher-supplied targets.
package calibrate

import (
	"fmt"

	"github.com/ppiankov/douessay/internal/model"
)

// gradeMultipliers scale every factor except Grammar
var gradeMultipliers = map[model.GradeLevel]float64{
	9:  0.98,
	10: 1.00,
	11: 1.02,
	12: 1.05,
}

// Grade curve caps and boosts
const (
	juniorContentCap      = 9.5
	seniorAnalysisMarkers = 5
	seniorInsightBonus    = 0.5
	seniorInsightFloor    = 6.5
)

// ParseGrade accepts an integer or a "Grade N" string and falls back to grade 10
func ParseGrade(v interface{}) model.GradeLevel {
	return model.ParseGrade(v)
}

// GradeMultiplier returns the multiplier applied for the grade
func GradeMultiplier(grade model.GradeLevel) float64 {
	if m, ok := gradeMultipliers[grade]; ok {
		return m
	}
	return 1.0
}

// ApplyGradeCurve applies the grade-level multipliers, caps and boosts used when no
// teacher targets are supplied
func ApplyGradeCurve(scores model.FactorScores, grade model.GradeLevel, analysisMarkers int) (model.FactorScores, model.Signal) {
	before := scores
	multiplier := GradeMultiplier(grade)

	for _, f := range []model.Factor{model.FactorContent, model.FactorStructure, model.FactorApplication, model.FactorInsight} {
		scores.Set(f, scores.Get(f)*multiplier)
	}

	var adjustments []string
	if grade <= model.MinGrade && scores.Content > juniorContentCap {
		scores.Content = juniorContentCap
		adjustments = append(adjustments, fmt.Sprintf("content capped at %.1f", juniorContentCap))
	}
	if grade >= 11 && analysisMarkers >= seniorAnalysisMarkers {
		scores.Insight += seniorInsightBonus
		if scores.Insight < seniorInsightFloor {
			scores.Insight = seniorInsightFloor
		}
		adjustments = append(adjustments, fmt.Sprintf("insight +%.1f (floor %.1f) for %d analysis markers", seniorInsightBonus, seniorInsightFloor, analysisMarkers))
	}

	for _, f := range model.Factors {
		scores.Set(f, model.Round2(model.Clamp(scores.Get(f), 0, 10)))
	}

	return scores, model.Signal{
		Type:        model.SignalCalibration,
		Severity:    model.SeverityInfo,
		Description: fmt.Sprintf("%s curve: x%.2f", grade, multiplier),
		Data: map[string]interface{}{
			"grade":       int(grade),
			"multiplier":  multiplier,
			"before":      before,
			"after":       scores,
			"adjustments": adjustments,
			"formula":     "factor * multiplier (grammar unchanged), clamp [0,10]",
		},
	}
}
