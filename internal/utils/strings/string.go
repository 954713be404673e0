package strings

import (
	"sort"
	"strings"
	"unicode"
)

func Pluralize(singular, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}

// SplitWords breaks an identifier into lower-case words at underscores,
// lower-to-upper case changes and letter/digit boundaries.
// "maxItemCount" -> [max item count], "HTTP_server2" -> [http server 2].
func SplitWords(name string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '$' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(cur) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				flush()
			case unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(prev):
				// "HTTPServer": the S starts a new word
				flush()
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ClosestMatch returns the candidate sharing the most words with name, or ""
// when none shares any. Ties go to the lexically smallest candidate.
func ClosestMatch(name string, candidates []string) string {
	want := make(map[string]bool)
	for _, w := range SplitWords(name) {
		want[w] = true
	}

	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestScore := "", 0
	for _, c := range sorted {
		if c == name {
			continue
		}
		score := 0
		seen := make(map[string]bool)
		for _, w := range SplitWords(c) {
			if want[w] && !seen[w] {
				seen[w] = true
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
