package model

import "math"

// Factor names one of the five top-level essay dimensions
type Factor string

const (
	FactorContent     Factor = "Content"
	FactorStructure   Factor = "Structure"
	FactorGrammar     Factor = "Grammar"
	FactorApplication Factor = "Application"
	FactorInsight     Factor = "Insight"
)

// Factors lists every factor in reporting order
var Factors = []Factor{FactorContent, FactorStructure, FactorGrammar, FactorApplication, FactorInsight}

// FactorWeights are the fixed weights used to combine factors into the overall score
var FactorWeights = map[Factor]float64{
	FactorContent:     0.30,
	FactorStructure:   0.25,
	FactorGrammar:     0.20,
	FactorApplication: 0.15,
	FactorInsight:     0.10,
}

// FactorScores holds the five factor scores on a 0-10 scale
type FactorScores struct {
	Content     float64 `json:"Content"`
	Structure   float64 `json:"Structure"`
	Grammar     float64 `json:"Grammar"`
	Application float64 `json:"Application"`
	Insight     float64 `json:"Insight"`
}

// Get returns the score for the given factor
func (s FactorScores) Get(f Factor) float64 {
	switch f {
	case FactorContent:
		return s.Content
	case FactorStructure:
		return s.Structure
	case FactorGrammar:
		return s.Grammar
	case FactorApplication:
		return s.Application
	case FactorInsight:
		return s.Insight
	}
	return 0
}

// Set stores the score for the given factor
func (s *FactorScores) Set(f Factor, v float64) {
	switch f {
	case FactorContent:
		s.Content = v
	case FactorStructure:
		s.Structure = v
	case FactorGrammar:
		s.Grammar = v
	case FactorApplication:
		s.Application = v
	case FactorInsight:
		s.Insight = v
	}
}

// Overall combines the factors with FactorWeights (0-10)
func (s FactorScores) Overall() float64 {
	total := 0.0
	for _, f := range Factors {
		total += s.Get(f) * FactorWeights[f]
	}
	return total
}

// Subsystem names one of the branded reporting engines
type Subsystem string

const (
	SubsystemArgus     Subsystem = "Argus"
	SubsystemNexus     Subsystem = "Nexus"
	SubsystemDepthCore Subsystem = "DepthCore"
	SubsystemEmpathica Subsystem = "Empathica"
	SubsystemStructura Subsystem = "Structura"
)

// Subsystems lists every subsystem in reporting order
var Subsystems = []Subsystem{SubsystemArgus, SubsystemNexus, SubsystemDepthCore, SubsystemEmpathica, SubsystemStructura}

// SubsystemScores holds subsystem scores on a 0-100 scale
type SubsystemScores struct {
	Argus     float64 `json:"Argus"`
	Nexus     float64 `json:"Nexus"`
	DepthCore float64 `json:"DepthCore"`
	Empathica float64 `json:"Empathica"`
	Structura float64 `json:"Structura"`
}

// Get returns the score for the given subsystem
func (s SubsystemScores) Get(name Subsystem) float64 {
	switch name {
	case SubsystemArgus:
		return s.Argus
	case SubsystemNexus:
		return s.Nexus
	case SubsystemDepthCore:
		return s.DepthCore
	case SubsystemEmpathica:
		return s.Empathica
	case SubsystemStructura:
		return s.Structura
	}
	return 0
}

// Set stores the score for the given subsystem
func (s *SubsystemScores) Set(name Subsystem, v float64) {
	switch name {
	case SubsystemArgus:
		s.Argus = v
	case SubsystemNexus:
		s.Nexus = v
	case SubsystemDepthCore:
		s.DepthCore = v
	case SubsystemEmpathica:
		s.Empathica = v
	case SubsystemStructura:
		s.Structura = v
	}
}

// ConfidenceInterval is a fixed-margin band around a score
type ConfidenceInterval struct {
	Score           float64 `json:"score"`
	MarginOfError   float64 `json:"margin_of_error"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// ConfidenceIntervals groups intervals for factors and subsystems
type ConfidenceIntervals struct {
	Factors    map[Factor]ConfidenceInterval    `json:"factors"`
	Subsystems map[Subsystem]ConfidenceInterval `json:"subsystems"`
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round2 rounds v to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
