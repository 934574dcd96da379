package engine

import "math"

const (
	MinBand = 1
	MaxBand = 7

	strongPercent = 90
	strongBand    = 6
	weakPercent   = 60
	weakBandCap   = 5
)

// bandThresholds are checked top down; the first floor reached wins.
var bandThresholds = []struct {
	floor int
	band  int
}{
	{95, 7},
	{85, 6},
	{72, 5},
	{60, 4},
	{48, 3},
	{38, 2},
}

var descriptors = map[int]string{
	1: "Very limited: fragmentary knowledge; no usable diagram; no analysis or evaluation.",
	2: "Limited: partial or inaccurate theory; weak diagram; minimal application.",
	3: "Basic: some correct theory; diagram present but poorly integrated; superficial analysis.",
	4: "Adequate: mostly correct theory; relevant diagram; some application; thin analysis.",
	5: "Good: accurate theory; well-labelled diagram; clear application; coherent analysis; some evaluation.",
	6: "Very good: strong, integrated analysis; balanced evaluation; precise diagrams; clear judgement.",
	7: "Excellent: consistently accurate, contextualised analysis; sustained, criteria-based evaluation; precise diagrams; fully justified conclusion.",
}

// PercentToBand maps a percentage onto the 1-7 scale.
func PercentToBand(p int) int {
	for _, t := range bandThresholds {
		if p >= t.floor {
			return t.band
		}
	}
	return MinBand
}

// Descriptor returns the narrative description of a band, or "" when
// the band is out of range.
func Descriptor(band int) string {
	return descriptors[band]
}

// Descriptors returns a copy of the full band descriptor table.
func Descriptors() map[int]string {
	out := make(map[int]string, len(descriptors))
	for k, v := range descriptors {
		out[k] = v
	}
	return out
}

// Percent is round(100*got/total), 0 when total is not positive.
func Percent(got, total float64) int {
	if !(total > 0) {
		return 0
	}
	p := int(math.Round(100 * got / total))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// QuestionGrade is a question's own percent and band.
type QuestionGrade struct {
	Percent int
	Band    int
}

// GradeQuestion computes a question's own percent and band from its
// adjusted mark.
func GradeQuestion(marks, maxMarks float64) QuestionGrade {
	p := Percent(marks, maxMarks)
	return QuestionGrade{Percent: p, Band: PercentToBand(p)}
}

// OverallBand derives the overall band from the overall percent, then
// applies two caps in order:
//
//	a 7 survives only when every question is at least 90% and band 6;
//	any question under 60% holds the overall band at 5 or below.
//
// Both caps only lower the band.
func OverallBand(percent int, questions []QuestionGrade) int {
	band := PercentToBand(percent)

	allStrong := true
	for _, q := range questions {
		if q.Percent < strongPercent || q.Band < strongBand {
			allStrong = false
			break
		}
	}
	if !allStrong && band > strongBand {
		band = strongBand
	}

	for _, q := range questions {
		if q.Percent < weakPercent {
			if band > weakBandCap {
				band = weakBandCap
			}
			break
		}
	}
	return band
}
