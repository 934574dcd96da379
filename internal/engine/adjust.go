package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	lengthCurve   = 0.85
	lengthScale   = 0.85
	diagramCap    = 0.6
	termCap       = 0.7
	minTermHits   = 2
	thinAnswer    = 60
	thinAnswerCap = 0.5
	stubAnswer    = 40
	stubAnswerCap = 0.35
)

var (
	// question text asking for a diagram
	needsDiagramPattern = regexp.MustCompile(`(?i)\b(diagram|draw|ppc|curve)`)

	// answer text that talks through a diagram
	diagramCuePattern = regexp.MustCompile(`(?i)\b(diagram|graph|curve|axis|axes|shift|label|wedge|dwl|deadweight)|\b(pc|pp|q0|q1)\b`)

	termPattern = regexp.MustCompile(`(?i)\b(ped|elastic\w*|inelastic\w*|incidence|burden\w*|revenue\w*|dwl|deadweight|welfare|externalit\w*|equity|efficien\w*|ppc|marginal|opportunit\w*|substitut\w*|complement\w*|regress\w*|tax\w*|subsid\w*)\b`)
)

// Adjusted is one question's mark after every cap has been applied.
type Adjusted struct {
	Marks    float64
	Comments string
	Words    int
	MinWords int
}

// Adjust derives the capped mark for one question. Every rule can only
// lower the mark, so the result never exceeds the clamped raw mark.
func Adjust(q Question, raw RawScore, answer string) Adjusted {
	full := allocation(q.MaxMarks)
	got := clamp(raw.Marks, full)

	wc := CountWords(answer)
	minW := MinWordsForMarks(full)
	var notes []string

	if wc < minW {
		ratio := float64(wc) / float64(minW)
		got = math.Min(got, math.Round(full*math.Pow(ratio, lengthCurve)*lengthScale))
		notes = append(notes, fmt.Sprintf("Too short for %s marks (words %d/%d).", formatMarks(full), wc, minW))
	}

	if needsDiagramPattern.MatchString(q.Text) && !diagramCuePattern.MatchString(answer) {
		got = math.Min(got, math.Round(full*diagramCap))
		notes = append(notes, "Weak/no diagram references. Capped at 60%.")
	}

	if len(termPattern.FindAllStringIndex(answer, -1)) < minTermHits {
		got = math.Min(got, math.Round(full*termCap))
		notes = append(notes, "Limited use of economics terms; mark capped.")
	}

	// Hard floors round down so a stub answer never exceeds its share.
	if wc < thinAnswer {
		got = math.Min(got, math.Floor(full*thinAnswerCap))
	}
	if wc < stubAnswer {
		got = math.Min(got, math.Floor(full*stubAnswerCap))
	}

	return Adjusted{
		Marks:    got,
		Comments: joinComments(raw.Comments, strings.Join(notes, " ")),
		Words:    wc,
		MinWords: minW,
	}
}

// AdjustAll runs Adjust over every question. Scores and answers are
// addressed by position; a missing entry counts as a zero mark or an
// empty answer.
func AdjustAll(questions []Question, raw []RawScore, answers []string) []Adjusted {
	out := make([]Adjusted, len(questions))
	for i, q := range questions {
		var r RawScore
		if i < len(raw) {
			r = raw[i]
		}
		out[i] = Adjust(q, r, answerAt(answers, i))
	}
	return out
}

// clamp keeps v within [0, limit]; NaN becomes 0.
func clamp(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinComments(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
