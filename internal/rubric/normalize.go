package rubric

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/douessay/internal/logging"
	"github.com/ppiankov/douessay/internal/model"
)

// Normalize converts any accepted rubric shape into the canonical structured form.
// Accepted shapes: model.RubricLevel, *model.RubricLevel, model.SimpleLevel, a level
// string, a JSON string of either shape, and a decoded JSON object. The description
// always comes from the level table; a missing score falls back to score. Legacy
// shapes are logged as warnings. Normalize never fails: unrecognized input yields
// the Unknown level.
func Normalize(raw interface{}, score float64, log *logging.Logger) model.RubricLevel {
	if log == nil {
		log = logging.Nop()
	}

	var (
		level    string
		rawScore float64
		hasScore bool
		legacy   string
	)

	switch v := raw.(type) {
	case model.RubricLevel:
		level, rawScore, hasScore = string(v.Level), v.Score, v.Score != 0
	case *model.RubricLevel:
		if v != nil {
			level, rawScore, hasScore = string(v.Level), v.Score, v.Score != 0
		}
	case model.SimpleLevel:
		level, legacy = string(v), "simple"
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "\"") {
			var decoded model.RubricLevel
			if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
				log.Warn("rubric level is not valid JSON", "error", err)
				return unknown()
			}
			level, rawScore, hasScore, legacy = string(decoded.Level), decoded.Score, decoded.Score != 0, "json_string"
		} else {
			level, legacy = trimmed, "string"
		}
	case map[string]interface{}:
		level = fmt.Sprint(v["level"])
		if s, ok := v["score"].(float64); ok {
			rawScore, hasScore = s, true
		}
		legacy = "map"
	default:
		log.Warn("unrecognized rubric level shape", "type", fmt.Sprintf("%T", raw))
		return unknown()
	}

	if legacy != "" {
		log.Warn("normalizing legacy rubric level", "shape", legacy, "level", level)
	}

	canonical, ok := canonicalLevel(level)
	if !ok {
		return unknown()
	}
	if !hasScore {
		rawScore = score
	}
	return model.RubricLevel{
		Level:       canonical,
		Description: canonical.Description(),
		Score:       model.Round2(rawScore),
	}
}

// canonicalLevel matches level names case-insensitively; "4+" and "level 4+" are equivalent
func canonicalLevel(s string) (model.Level, bool) {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.TrimPrefix(s, "level ")
	for _, l := range model.Levels {
		name := strings.TrimPrefix(strings.ToLower(string(l)), "level ")
		if s == name {
			return l, true
		}
	}
	if s == "remedial" {
		return model.LevelR, true
	}
	return model.LevelUnknown, false
}

func unknown() model.RubricLevel {
	return model.RubricLevel{Level: model.LevelUnknown, Description: model.LevelUnknown.Description()}
}
