package lexicon

// Set is a named, immutable list of phrases
type Set struct {
	name    string
	phrases []string
	padded  []string
}

func newSet(name string, phrases ...string) Set {
	padded := make([]string, len(phrases))
	for i, p := range phrases {
		padded[i] = " " + p + " "
	}
	return Set{name: name, phrases: phrases, padded: padded}
}

// Name returns the table name
func (s Set) Name() string {
	return s.name
}

// Len returns the number of phrases in the table
func (s Set) Len() int {
	return len(s.phrases)
}

// Count returns the total number of phrase occurrences in t
func (s Set) Count(t Text) int {
	total := 0
	for _, p := range s.padded {
		total += countPhrase(t, p)
	}
	return total
}

// Matches returns the distinct phrases found in t, in table order
func (s Set) Matches(t Text) []string {
	var found []string
	for i, p := range s.padded {
		if countPhrase(t, p) > 0 {
			found = append(found, s.phrases[i])
		}
	}
	return found
}

// Distinct returns the number of distinct phrases found in t
func (s Set) Distinct(t Text) int {
	return len(s.Matches(t))
}

// Contains reports whether any phrase occurs in t
func (s Set) Contains(t Text) bool {
	for _, p := range s.padded {
		if countPhrase(t, p) > 0 {
			return true
		}
	}
	return false
}

// Phrases returns a copy of the table
func (s Set) Phrases() []string {
	out := make([]string, len(s.phrases))
	copy(out, s.phrases)
	return out
}
