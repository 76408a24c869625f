// Package lexicon holds the read-only phrase tables used by the feature extractors.
package lexicon

import (
	"strings"
	"unicode"
)

// Text is lower-cased essay text with punctuation folded to single spaces and
// padded on both ends, so " phrase " matches whole words only
type Text string

// Normalize prepares raw text for phrase matching
func Normalize(s string) Text {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(' ')

	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
			space = false
			continue
		}
		if r == '’' {
			b.WriteByte('\'')
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return Text(b.String())
}

// Empty reports whether the text holds no words
func (t Text) Empty() bool {
	return strings.TrimSpace(string(t)) == ""
}

// countPhrase counts occurrences of a padded needle, letting adjacent matches share
// their boundary space
func countPhrase(t Text, needle string) int {
	h := string(t)
	count := 0
	for i := 0; i < len(h); {
		idx := strings.Index(h[i:], needle)
		if idx < 0 {
			break
		}
		count++
		i += idx + len(needle) - 1
	}
	return count
}
