package engine

// Assemble scores one submission end to end: adjust raw marks, grade each
// question and the whole, check rubric coverage and write the feedback.
//
// Questions, answers and raw scores are aligned by position. Missing
// answers or scores are treated as empty answers and zero marks, so
// Assemble always returns a complete result.
func Assemble(questions []Question, answers []string, raw []RawScore, meta CaseMeta) FeedbackResult {
	adjusted := AdjustAll(questions, raw, answers)

	perQ := make([]QuestionResult, len(questions))
	grades := make([]QuestionGrade, len(questions))
	var got, total float64

	for i, q := range questions {
		full := allocation(q.MaxMarks)
		adj := adjusted[i]
		grades[i] = GradeQuestion(adj.Marks, full)

		check := CheckRubric(q.Text, answerAt(answers, i))
		n := ExpandQuestion(check)

		perQ[i] = QuestionResult{
			Marks:    adj.Marks,
			Band:     grades[i].Band,
			Comments: joinComments(adj.Comments, check.Trace()),
			Good:     n.Good,
			Improve:  n.Improve,
			Add:      n.Add,
		}
		got += adj.Marks
		total += full
	}

	percent := Percent(got, total)
	band := OverallBand(percent, grades)
	study := StudyBundle(meta)
	overall := OverallNarrative(study)

	return FeedbackResult{
		PerQuestion: perQ,
		Overall: OverallResult{
			Got:        got,
			Max:        total,
			Percent:    percent,
			Band:       band,
			Descriptor: Descriptor(band),
			Good:       overall.Good,
			Improve:    overall.Improve,
			Add:        overall.Add,
		},
		Study: study,
	}
}
