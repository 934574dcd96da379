package normalize

import (
	"fmt"

	"github.com/nsip/otf-feedback/internal/engine"
	"github.com/tidwall/gjson"
)

// DefaultMarks is used for a question whose mark allocation is missing
// or not a positive number.
const DefaultMarks = 10

// numbered questions q1..qN are only looked for up to this index
const maxNumberedQuestions = 12

// QuestionSet is the tagged outcome of reading a question list.
type QuestionSet struct {
	Kind      Kind
	Questions []engine.Question
	Reason    string
}

// Questions reads the question list of a case document. It understands
// a "questions" array of strings or objects (text/prompt/question,
// marks/mark, id) and falls back to numbered "q1".."q12" fields. Entries
// of "marksPerQuestion" override per-question marks.
func Questions(doc gjson.Result) QuestionSet {
	marks := Numbers(doc.Get("marksPerQuestion"))
	override := func(i int) (float64, bool) {
		if i < len(marks) && marks[i].OK && marks[i].Value > 0 {
			return marks[i].Value, true
		}
		return 0, false
	}

	var qs []engine.Question
	list := unwrap(doc.Get("questions"))
	switch {
	case list.IsArray() && len(list.Array()) > 0:
		for i, item := range list.Array() {
			qs = append(qs, question(i, item, override))
		}
	case list.Type == gjson.String && list.Str != "":
		qs = append(qs, question(0, list, override))
	default:
		n := len(marks)
		for k := 1; k <= maxNumberedQuestions; k++ {
			if doc.Get(fmt.Sprintf("q%d", k)).String() != "" && k > n {
				n = k
			}
		}
		for i := 0; i < n; i++ {
			qs = append(qs, question(i, doc.Get(fmt.Sprintf("q%d", i+1)), override))
		}
	}

	if len(qs) == 0 {
		return QuestionSet{Kind: Unrecognized, Reason: "no questions found"}
	}
	return QuestionSet{Kind: Canonical, Questions: qs}
}

func question(i int, item gjson.Result, override func(int) (float64, bool)) engine.Question {
	q := engine.Question{ID: fmt.Sprintf("q%d", i+1), MaxMarks: DefaultMarks}

	own, ownOK := 0.0, false
	if item.IsObject() {
		if id := item.Get("id").String(); id != "" {
			q.ID = id
		}
		for _, key := range []string{"text", "prompt", "question"} {
			if t := item.Get(key).String(); t != "" {
				q.Text = t
				break
			}
		}
		for _, key := range []string{"marks", "mark"} {
			if v, ok := number(item.Get(key)); ok && v > 0 {
				own, ownOK = v, true
				break
			}
		}
	} else {
		q.Text = scalar(item)
	}

	if v, ok := override(i); ok {
		q.MaxMarks = v
	} else if ownOK {
		q.MaxMarks = own
	}
	if q.MaxMarks > engine.MaxQuestionMarks {
		q.MaxMarks = engine.MaxQuestionMarks
	}
	return q
}
