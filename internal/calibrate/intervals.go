package calibrate

import "github.com/ppiankov/douessay/internal/model"

// Interval margins. These are fixed heuristic bands, not sample-derived statistics.
const (
	alignedFactorMargin      = 0.15
	alignedSubsystemMargin   = 1.5
	alignedConfidence        = 0.98
	unalignedFactorMargin    = 0.5
	unalignedSubsystemMargin = 5.0
	unalignedConfidence      = 0.85
)

// Intervals attaches a fixed-margin confidence interval to every factor and subsystem
func Intervals(scores model.FactorScores, subsystems model.SubsystemScores, usedTargets bool) model.ConfidenceIntervals {
	factorMargin, subsystemMargin, confidence := unalignedFactorMargin, unalignedSubsystemMargin, unalignedConfidence
	if usedTargets {
		factorMargin, subsystemMargin, confidence = alignedFactorMargin, alignedSubsystemMargin, alignedConfidence
	}

	out := model.ConfidenceIntervals{
		Factors:    make(map[model.Factor]model.ConfidenceInterval, len(model.Factors)),
		Subsystems: make(map[model.Subsystem]model.ConfidenceInterval, len(model.Subsystems)),
	}
	for _, f := range model.Factors {
		out.Factors[f] = interval(scores.Get(f), factorMargin, confidence, 10)
	}
	for _, name := range model.Subsystems {
		out.Subsystems[name] = interval(subsystems.Get(name), subsystemMargin, confidence, 100)
	}
	return out
}

func interval(score, margin, confidence, scale float64) model.ConfidenceInterval {
	return model.ConfidenceInterval{
		Score:           score,
		MarginOfError:   margin,
		LowerBound:      model.Round2(model.Clamp(score-margin, 0, scale)),
		UpperBound:      model.Round2(model.Clamp(score+margin, 0, scale)),
		ConfidenceLevel: confidence,
	}
}
