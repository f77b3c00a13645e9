package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PronunciationScorer compares what the recognizer heard with the expected
// phrase and turns the difference into an accuracy in [0,1].
type PronunciationScorer struct {
	passThreshold float64
}

func NewPronunciationScorer() *PronunciationScorer {
	return &PronunciationScorer{
		passThreshold: 0.8,
	}
}

// Score returns 1 for an exact match after normalization and decreases with
// the edit distance.
func (s *PronunciationScorer) Score(heard, expected string) float64 {
	a := normalizePhrase(heard)
	b := normalizePhrase(expected)
	if a == b {
		return 1
	}

	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(longest)
}

// Passed reports whether the score is good enough to count as correct.
func (s *PronunciationScorer) Passed(score float64) bool {
	return score >= s.passThreshold
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizePhrase lowercases, folds accents and drops punctuation so "Ça va?"
// and "ca va" compare equal.
func normalizePhrase(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	folded = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, folded)

	return strings.Join(strings.Fields(folded), " ")
}

func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				curr[j-1]+1,
				prev[j]+1,
				prev[j-1]+cost,
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
