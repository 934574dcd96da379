package normalize

import (
	"github.com/nsip/otf-feedback/internal/engine"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// CaseDoc is a case study document in canonical form.
type CaseDoc struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Subject       string      `json:"subject"`
	Topic         string      `json:"topic"`
	CommandTerm   string      `json:"commandTerm"`
	PaperType     string      `json:"paperType"`
	CaseText      []string    `json:"caseText"`
	Toolkit       []string    `json:"toolkit"`
	Resources     []string    `json:"resources"`
	RelatedTopics []string    `json:"relatedTopics"`
	Questions     QuestionSet `json:"-"`
	Table         TableResult `json:"dataTable"`
}

// Case reads a case document. Only malformed JSON is an error; missing
// or oddly shaped fields are normalized and an unreadable question list
// is reported through Questions.Kind.
func Case(doc []byte) (CaseDoc, error) {
	if !gjson.ValidBytes(doc) {
		return CaseDoc{}, errors.New("case document is not valid json")
	}
	return CaseFrom(gjson.ParseBytes(doc)), nil
}

// CaseFrom reads an already parsed case document.
func CaseFrom(d gjson.Result) CaseDoc {
	c := CaseDoc{
		ID:            d.Get("id").String(),
		Title:         d.Get("title").String(),
		Subject:       d.Get("subject").String(),
		Topic:         d.Get("topic").String(),
		CommandTerm:   d.Get("commandTerm").String(),
		PaperType:     d.Get("paperType").String(),
		CaseText:      Strings(d.Get("caseText")),
		Toolkit:       Strings(d.Get("toolkit")),
		Resources:     Strings(d.Get("resources")),
		RelatedTopics: Strings(d.Get("relatedTopics")),
		Questions:     Questions(d),
		Table:         Table(d.Get("dataTable")),
	}
	if c.Title == "" {
		c.Title = c.ID
	}
	return c
}

// Meta is the part of the case the engine needs.
func (c CaseDoc) Meta() engine.CaseMeta {
	return engine.CaseMeta{
		Title:         c.Title,
		PaperType:     c.PaperType,
		Toolkit:       c.Toolkit,
		RelatedTopics: c.RelatedTopics,
		Resources:     c.Resources,
	}
}
