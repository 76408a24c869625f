package model

import "encoding/json"

// Level is an Ontario achievement band
type Level string

const (
	Level4Plus   Level = "Level 4+"
	Level4       Level = "Level 4"
	Level3       Level = "Level 3"
	Level2Plus   Level = "Level 2+"
	Level2       Level = "Level 2"
	Level1       Level = "Level 1"
	LevelR       Level = "R"
	LevelUnknown Level = "Unknown"
)

// Levels lists the known bands from lowest to highest
var Levels = []Level{LevelR, Level1, Level2, Level2Plus, Level3, Level4, Level4Plus}

var levelDescriptions = map[Level]string{
	Level4Plus:   "Exceptional - Exceeds the provincial standard with sophisticated insight",
	Level4:       "Excellent - Surpasses the provincial standard",
	Level3:       "Good - Meets the provincial standard",
	Level2Plus:   "Approaching Standard - Nearing the provincial standard",
	Level2:       "Fair - Approaching the provincial standard",
	Level1:       "Limited - Below the provincial standard",
	LevelR:       "Remedial - Insufficient achievement of curriculum expectations",
	LevelUnknown: "Assessment unavailable",
}

// Description returns the fixed description for the level
func (l Level) Description() string {
	if d, ok := levelDescriptions[l]; ok {
		return d
	}
	return levelDescriptions[LevelUnknown]
}

// Rank returns the position of the level in Levels, or -1 when unknown
func (l Level) Rank() int {
	for i, known := range Levels {
		if known == l {
			return i
		}
	}
	return -1
}

// RubricValue is either a SimpleLevel or a RubricLevel
type RubricValue interface {
	rubricValue()
}

// SimpleLevel is the legacy string-only rubric shape
type SimpleLevel string

func (SimpleLevel) rubricValue() {}

// RubricLevel is the canonical structured rubric result
type RubricLevel struct {
	Level       Level   `json:"level"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

func (RubricLevel) rubricValue() {}

// UnmarshalJSON accepts both the structured object and a bare level string
func (r *RubricLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RubricLevel{Level: Level(s)}
		return nil
	}

	type plain RubricLevel
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RubricLevel(p)
	return nil
}
