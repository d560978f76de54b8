// Package textscore turns free-text teacher observations into keyword-derived
// affinity scores.
package textscore

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, drops combining marks and recomposes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, strips diacritics and collapses punctuation
// and whitespace runs into single spaces. All lexicon matching happens on
// this canonical form, so lexicon stems must themselves be accent-free.
func Normalize(text string) string {
	text = strings.ToLower(text)
	if out, _, err := transform.String(stripAccents, text); err == nil {
		text = out
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// precedingWord returns the word that immediately precedes position idx in
// a normalized string, or "" when the match starts the text.
func precedingWord(s string, idx int) string {
	left := strings.TrimRight(s[:idx], " ")
	if left == "" {
		return ""
	}
	if i := strings.LastIndexByte(left, ' '); i >= 0 {
		return left[i+1:]
	}
	return left
}
