package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// GradeLevel is a secondary school grade (9-12)
type GradeLevel int

const (
	MinGrade     GradeLevel = 9
	MaxGrade     GradeLevel = 12
	DefaultGrade GradeLevel = 10
)

// ParseGrade accepts an integer or a string such as "Grade 11" and falls back to grade 10
func ParseGrade(v interface{}) GradeLevel {
	switch g := v.(type) {
	case GradeLevel:
		return gradeOrDefault(int(g))
	case int:
		return gradeOrDefault(g)
	case int64:
		return gradeOrDefault(int(g))
	case float64:
		if g != float64(int(g)) {
			return DefaultGrade
		}
		return gradeOrDefault(int(g))
	case string:
		return parseGradeString(g)
	}
	return DefaultGrade
}

func parseGradeString(s string) GradeLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "grade")
	s = strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '-' || r == '_' })
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultGrade
	}
	return gradeOrDefault(n)
}

func gradeOrDefault(n int) GradeLevel {
	if g := GradeLevel(n); g.Valid() {
		return g
	}
	return DefaultGrade
}

// Valid reports whether g is within grades 9-12
func (g GradeLevel) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// String renders the grade as "Grade N"
func (g GradeLevel) String() string {
	return "Grade " + strconv.Itoa(int(g))
}

// UnmarshalJSON tolerates numbers and strings
func (g *GradeLevel) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*g = DefaultGrade
		return nil
	}
	*g = ParseGrade(raw)
	return nil
}
