package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_ShortAnswer(t *testing.T) {
	questions := []Question{{ID: "q1", Text: "Explain the effect of the policy.", MaxMarks: 10}}
	res := Assemble(questions, []string{essay(10, "")}, []RawScore{{Marks: 9}}, CaseMeta{})

	require.Len(t, res.PerQuestion, 1)
	q := res.PerQuestion[0]
	assert.Equal(t, 1.0, q.Marks)
	assert.LessOrEqual(t, q.Marks, 3.5)
	assert.Equal(t, 1, q.Band)
	assert.Contains(t, q.Comments, "Too short for 10 marks (words 10/160).")
	assert.Equal(t, 10, res.Overall.Percent)
	assert.Equal(t, 1, res.Overall.Band)
	assert.Equal(t, Descriptor(1), res.Overall.Descriptor)
}

func TestAssemble_FullMarks(t *testing.T) {
	questions := []Question{{ID: "q1", Text: "Using a diagram, explain the incidence of the tax.", MaxMarks: 10}}
	answer := essay(200, "The diagram shows the supply curve shift by the tax along the price axis; "+
		"inelastic demand puts the burden on the consumer and the revenue rectangle sits above the deadweight triangle.")
	res := Assemble(questions, []string{answer}, []RawScore{{Marks: 10}}, CaseMeta{Toolkit: []string{"PED"}})

	q := res.PerQuestion[0]
	assert.Equal(t, 10.0, q.Marks)
	assert.Equal(t, 7, q.Band)
	assert.Equal(t, "✓ Mentioned: Diagram labels, Incidence (elasticities), Revenue & DWL.", q.Comments)
	assert.Len(t, q.Good, 3)
	assert.Empty(t, q.Improve)
	assert.Empty(t, q.Add)

	assert.Equal(t, 10.0, res.Overall.Got)
	assert.Equal(t, 10.0, res.Overall.Max)
	assert.Equal(t, 100, res.Overall.Percent)
	assert.Equal(t, 7, res.Overall.Band)
	assert.Len(t, res.Overall.Good, 3)
	assert.Equal(t, []string{"PED"}, res.Study.Toolkit)
}

func TestAssemble_WeakQuestionCapsOverall(t *testing.T) {
	strong := essay(260, "Elasticity and tax incidence shape the outcome.")
	questions := []Question{
		{ID: "q1", Text: "Evaluate the policy.", MaxMarks: 30},
		{ID: "q2", Text: "Evaluate the policy.", MaxMarks: 10},
	}
	res := Assemble(questions, []string{strong, strong}, []RawScore{{Marks: 30}, {Marks: 5.5}}, CaseMeta{})

	assert.Equal(t, 30.0, res.PerQuestion[0].Marks)
	assert.Equal(t, 5.5, res.PerQuestion[1].Marks)
	assert.Equal(t, 89, res.Overall.Percent)
	assert.Equal(t, 6, PercentToBand(res.Overall.Percent))
	assert.Equal(t, 5, res.Overall.Band)
}

func TestAssemble_MissingScores(t *testing.T) {
	questions := []Question{
		{ID: "q1", Text: "Draw a diagram of the tax.", MaxMarks: 10},
		{ID: "q2", Text: "Discuss equity.", MaxMarks: 6},
	}
	res := Assemble(questions, nil, nil, CaseMeta{})

	require.Len(t, res.PerQuestion, 2)
	for _, q := range res.PerQuestion {
		assert.Equal(t, 0.0, q.Marks)
		assert.Equal(t, 1, q.Band)
		assert.Contains(t, q.Comments, "Too short")
		assert.NotNil(t, q.Good)
	}
	assert.Equal(t, 16.0, res.Overall.Max)
	assert.Equal(t, 0, res.Overall.Percent)
	assert.Equal(t, 1, res.Overall.Band)
	assert.NotNil(t, res.Study.Resources)
}

func TestAssemble_HugeAllocations(t *testing.T) {
	questions := []Question{
		{ID: "q1", Text: "Explain PED.", MaxMarks: 1e308},
		{ID: "q2", Text: "Evaluate the tax.", MaxMarks: 1e308},
	}
	raw := []RawScore{{Marks: 1e308}, {Marks: 1e308}}
	res := Assemble(questions, nil, raw, CaseMeta{})

	assert.Equal(t, float64(2*MaxQuestionMarks), res.Overall.Max)
	assert.False(t, math.IsInf(res.Overall.Got, 0))
	for _, q := range res.PerQuestion {
		assert.LessOrEqual(t, q.Marks, float64(MaxQuestionMarks))
	}
	_, err := json.Marshal(res)
	assert.NoError(t, err)
}

func TestAssemble_NoQuestions(t *testing.T) {
	res := Assemble(nil, nil, nil, CaseMeta{})
	assert.Empty(t, res.PerQuestion)
	assert.Equal(t, 0, res.Overall.Percent)
	assert.Equal(t, 1, res.Overall.Band)
	assert.NotEmpty(t, res.Overall.Descriptor)
}

func TestAssemble_Idempotent(t *testing.T) {
	questions := []Question{
		{ID: "q1", Text: "Explain PED for sugary drinks.", MaxMarks: 4},
		{ID: "q2", Text: "Using a diagram, explain the welfare effects of the tax.", MaxMarks: 10},
		{ID: "q3", Text: "Evaluate the equity and efficiency of the tax.", MaxMarks: 15},
	}
	answers := []string{
		essay(90, "PED is low in the short run because of habit."),
		essay(120, "The curve shifts and the deadweight loss grows with elasticity."),
		essay(30, "It is regressive."),
	}
	raw := []RawScore{{Marks: 4, Comments: "ok"}, {Marks: 8}, {Marks: 14}}
	meta := CaseMeta{Toolkit: []string{"PED", "Incidence"}, RelatedTopics: []string{"Externalities"}}

	first := Assemble(questions, answers, raw, meta)
	second := Assemble(questions, answers, raw, meta)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated assemble differs (-first +second):\n%s", diff)
	}
}

func TestAssemble_Invariants(t *testing.T) {
	texts := []string{"Discuss.", "Using a diagram, explain incidence.", "Explain PED.", "Evaluate equity and efficiency."}
	answers := []string{
		"",
		essay(35, "tax"),
		essay(70, "Elasticity and tax incidence with a curve shift."),
		essay(250, "Welfare, deadweight loss, marginal cost, regressive burden, health externality."),
	}
	for _, max := range []float64{2, 5, 10, 20} {
		for _, raw := range []float64{0, max / 2, max, max * 3} {
			questions := make([]Question, len(texts))
			scores := make([]RawScore, len(texts))
			for i, text := range texts {
				questions[i] = Question{Text: text, MaxMarks: max}
				scores[i] = RawScore{Marks: raw}
			}
			res := Assemble(questions, answers, scores, CaseMeta{})

			var weak, allStrong = false, true
			for i, q := range res.PerQuestion {
				require.GreaterOrEqual(t, q.Marks, 0.0)
				require.LessOrEqual(t, q.Marks, max)
				require.LessOrEqual(t, q.Marks, raw)
				require.LessOrEqual(t, len(q.Good), 6)
				require.LessOrEqual(t, len(q.Improve), 6)
				require.LessOrEqual(t, len(q.Add), 6)
				if CountWords(answers[i]) < 40 {
					require.LessOrEqual(t, q.Marks, 0.35*max)
				}
				g := GradeQuestion(q.Marks, max)
				weak = weak || g.Percent < 60
				allStrong = allStrong && g.Percent >= 90 && g.Band >= 6
			}
			o := res.Overall
			require.GreaterOrEqual(t, o.Percent, 0)
			require.LessOrEqual(t, o.Percent, 100)
			require.LessOrEqual(t, o.Band, PercentToBand(o.Percent))
			if weak {
				require.LessOrEqual(t, o.Band, 5)
			}
			if o.Band == 7 {
				require.True(t, allStrong)
			}
		}
	}
}
