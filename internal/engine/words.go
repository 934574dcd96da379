package engine

import (
	"math"
	"regexp"
)

// MaxQuestionMarks bounds the marks a single question can carry.
const MaxQuestionMarks = 1000

const (
	wordsPerMark = 16
	minWordFloor = 80
	minWordCeil  = 240
)

var wordPattern = regexp.MustCompile(`\b[\w’'-]+\b`)

// CountWords counts word tokens (letters, digits, apostrophes and hyphens).
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// MinWordsForMarks is the word count an answer needs before the length
// penalty stops applying: 16 words per mark, kept within [80, 240].
func MinWordsForMarks(maxMarks float64) int {
	n := math.Round(allocation(maxMarks) * wordsPerMark)
	if n < minWordFloor {
		return minWordFloor
	}
	if n > minWordCeil {
		return minWordCeil
	}
	return int(n)
}

// Readiness reports whether each answer has reached its minimum length.
type Readiness struct {
	WordCounts []int `json:"wordCounts"`
	MinWords   []int `json:"minWords"`
	MeetsAll   bool  `json:"meetsMinimum"`
}

// MeetsMinimum checks every answer against MinWordsForMarks for its question.
// A missing answer counts as zero words.
func MeetsMinimum(questions []Question, answers []string) Readiness {
	r := Readiness{
		WordCounts: make([]int, len(questions)),
		MinWords:   make([]int, len(questions)),
		MeetsAll:   true,
	}
	for i, q := range questions {
		r.WordCounts[i] = CountWords(answerAt(answers, i))
		r.MinWords[i] = MinWordsForMarks(q.MaxMarks)
		if r.WordCounts[i] < r.MinWords[i] {
			r.MeetsAll = false
		}
	}
	return r
}

// allocation is a question's usable mark allocation: finite, non-negative
// and at most MaxQuestionMarks, so totals over a case stay finite.
func allocation(v float64) float64 {
	return math.Min(finite(v), MaxQuestionMarks)
}

// finite maps NaN, infinities and negative values to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func answerAt(answers []string, i int) string {
	if i < len(answers) {
		return answers[i]
	}
	return ""
}
