// Package extract turns raw essay text into heuristic feature measurements.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)

// Paragraphs splits text into blocks separated by a blank line
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var paragraphs []string
	for _, block := range paragraphBreak.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// Sentences splits text on '.', '!' and '?'
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Words returns the lower-cased word tokens of text
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’')
	})
}

// LooksLikeHTML reports whether the input appears to be markup rather than plain text
func LooksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	for _, tag := range []string{"<html", "<body", "<p>", "<p ", "<div", "<br", "<li>", "<h1", "<h2"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

// StripHTML extracts visible text from HTML, keeping block elements as paragraphs
func StripHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return extractVisibleText(doc), nil
}

// blockElements end the current paragraph
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "tr": true,
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder
	var para strings.Builder

	flush := func() {
		text := strings.Join(strings.Fields(para.String()), " ")
		if text != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(text)
		}
		para.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			case "br":
				para.WriteString(" ")
			}
		}

		if n.Type == html.TextNode {
			para.WriteString(n.Data)
			para.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}

	walk(n)
	flush()
	return buf.String()
}

// stepScore maps a count onto the shared five-step table
func stepScore(count float64, steps [5]float64, floor float64) float64 {
	values := [5]float64{1.0, 0.85, 0.7, 0.55, 0.4}
	for i, threshold := range steps {
		if count >= threshold {
			return values[i]
		}
	}
	return floor
}

// quadScore maps a count onto the 4/3/2/1 table used by several extractors
func quadScore(count int, floor float64) float64 {
	switch {
	case count >= 4:
		return 1.0
	case count >= 3:
		return 0.8
	case count >= 2:
		return 0.6
	case count >= 1:
		return 0.4
	}
	return floor
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func label(score float64, labels []string, cutoffs []float64) string {
	for i, c := range cutoffs {
		if score >= c {
			return labels[i]
		}
	}
	return labels[len(labels)-1]
}
