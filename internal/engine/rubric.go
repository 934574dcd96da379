package engine

import (
	"regexp"
	"strings"
)

type checkItem struct {
	label   string
	pattern *regexp.Regexp
}

// topic pairs a question-text signature with the concepts an answer to
// such a question is expected to cover.
type topic struct {
	signature *regexp.Regexp
	checklist []checkItem
}

var topics = []topic{
	{
		signature: regexp.MustCompile(`elasticity|\bped\b`),
		checklist: []checkItem{
			{"PED formula", regexp.MustCompile(`\bped\b|% ?δq|% ?δp|% ?change in quantity|% ?change in price|ped\s*=\s*%`)},
			{"Short vs long run", regexp.MustCompile(`short[\s-]?run|long[\s-]?run|over time|time horizon`)},
			{"Determinants/substitutes", regexp.MustCompile(`substitut|alternativ|habit|brand|income share`)},
		},
	},
	{
		signature: regexp.MustCompile(`diagram|incidence|indirect tax|deadweight|welfare|dwl`),
		checklist: []checkItem{
			{"Diagram labels", regexp.MustCompile(`axis|axes|curve|label|s\W*\+\W*tax|\bpc\b|\bpp\b|\bq0\b|\bq1\b|vertical gap`)},
			{"Incidence (elasticities)", regexp.MustCompile(`elastic|inelastic|burden|consumer|producer`)},
			{"Revenue & DWL", regexp.MustCompile(`revenue|rectangle|dwl|deadweight|triangle`)},
		},
	},
	{
		signature: regexp.MustCompile(`equity|efficien`),
		checklist: []checkItem{
			{"Negative externality", regexp.MustCompile(`externalit|social cost|over[- ]?consumption|health`)},
			{"Regressive burden", regexp.MustCompile(`regress|low-?income|inequal|burden`)},
			{"Mitigation / earmarking", regexp.MustCompile(`earmark|subsid|water|fountain|fruit|healthy`)},
		},
	},
}

// CheckRubric selects every checklist whose signature matches the question
// text and partitions its labels by whether the answer covers them.
// Questions matching no signature yield an empty check.
func CheckRubric(questionText, answer string) RubricCheck {
	q := strings.ToLower(questionText)
	a := strings.ToLower(answer)

	res := RubricCheck{Found: []string{}, Missing: []string{}}
	for _, t := range topics {
		if !t.signature.MatchString(q) {
			continue
		}
		for _, item := range t.checklist {
			if item.pattern.MatchString(a) {
				res.Found = append(res.Found, item.label)
			} else {
				res.Missing = append(res.Missing, item.label)
			}
		}
	}
	return res
}

// Trace renders a check as a short comment suffix, e.g.
// "✓ Mentioned: PED formula. ✗ Missing: Short vs long run."
func (r RubricCheck) Trace() string {
	var parts []string
	if len(r.Found) > 0 {
		parts = append(parts, "✓ Mentioned: "+strings.Join(r.Found, ", ")+".")
	}
	if len(r.Missing) > 0 {
		parts = append(parts, "✗ Missing: "+strings.Join(r.Missing, ", ")+".")
	}
	return strings.Join(parts, " ")
}
