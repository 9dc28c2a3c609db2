package aggregate

import (
	"slices"
	"strings"
	"unicode"
)

// defaultStopwords covers the filler of English and German postings.
var defaultStopwords = []string{
	"a", "about", "all", "also", "an", "and", "any", "are", "as", "at", "be", "been",
	"but", "by", "can", "do", "for", "from", "has", "have", "if", "in", "into", "is",
	"it", "its", "more", "most", "not", "of", "on", "or", "our", "out", "so", "such",
	"than", "that", "the", "their", "them", "then", "there", "these", "they", "this",
	"to", "up", "us", "was", "we", "were", "what", "when", "which", "who", "will",
	"with", "within", "would", "you", "your",
	"als", "am", "auch", "auf", "aus", "bei", "bis", "das", "dem", "den", "der",
	"des", "die", "du", "durch", "ein", "eine", "einem", "einen", "einer", "es", "für",
	"hat", "ihr", "ihre", "im", "ist", "mit", "nach", "oder", "sich", "sie",
	"sind", "und", "uns", "unser", "unsere", "von", "vor", "wir", "zu", "zum", "zur",
	"m", "w", "d", "mwd",
}

// SkillTerms counts the words of text the way a word cloud weighs them:
// lower-cased, stop-words and single letters removed, the n most frequent
// first, ties in order of first occurrence.
func SkillTerms(text string, n int, extraStopwords []string) []Count {
	out := []Count{}
	if n <= 0 || text == "" {
		return out
	}

	stop := make(map[string]bool, len(defaultStopwords)+len(extraStopwords))
	for _, w := range defaultStopwords {
		stop[w] = true
	}
	for _, w := range extraStopwords {
		stop[strings.ToLower(strings.TrimSpace(w))] = true
	}

	index := map[string]int{}
	for _, w := range tokenize(text) {
		if len([]rune(w)) < 2 || stop[w] || isNumber(w) {
			continue
		}
		if pos, ok := index[w]; ok {
			out[pos].Count++
			continue
		}
		index[w] = len(out)
		out = append(out, Count{Value: w, Count: 1})
	}

	slices.SortStableFunc(out, func(a, b Count) int { return b.Count - a.Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// tokenize splits on anything that is not a letter, digit or one of the
// characters skill names use ("c++", "c#", "node.js").
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})
	out := words[:0]
	for _, w := range words {
		w = strings.Trim(w, ".")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isNumber(w string) bool {
	return strings.IndexFunc(w, func(r rune) bool { return !unicode.IsDigit(r) && r != '.' }) < 0
}
