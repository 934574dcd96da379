//
// Package engine turns an externally supplied raw mark per question into
// a capped, explainable grade plus structured written feedback.
//
// Everything here is a pure function of its inputs: no I/O, no clock,
// no shared state. Results can be recomputed at any time for audit.
//
package engine

// Question is one graded prompt of a case study.
type Question struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	MaxMarks float64 `json:"marks"`
}

// RawScore is what the upstream scorer said about one question,
// before any adjustment.
type RawScore struct {
	Marks    float64 `json:"marks"`
	Comments string  `json:"comments,omitempty"`
}

// CaseMeta carries the case-level lists passed straight through
// into the study bundle.
type CaseMeta struct {
	Title         string   `json:"title"`
	PaperType     string   `json:"paperType"`
	Toolkit       []string `json:"toolkit"`
	RelatedTopics []string `json:"relatedTopics"`
	Resources     []string `json:"resources"`
}

type QuestionResult struct {
	Marks    float64  `json:"marks"`
	Band     int      `json:"ib"`
	Comments string   `json:"comments"`
	Good     []string `json:"good"`
	Improve  []string `json:"improve"`
	Add      []string `json:"add"`
}

type OverallResult struct {
	Got        float64  `json:"got"`
	Max        float64  `json:"max"`
	Percent    int      `json:"percent"`
	Band       int      `json:"ib"`
	Descriptor string   `json:"ibDescriptor"`
	Good       []string `json:"good"`
	Improve    []string `json:"improve"`
	Add        []string `json:"add"`
}

type Study struct {
	Toolkit       []string `json:"toolkit"`
	RelatedTopics []string `json:"relatedTopics"`
	Resources     []string `json:"resources"`
}

// FeedbackResult is the full outcome of scoring one submission.
type FeedbackResult struct {
	PerQuestion []QuestionResult `json:"perQuestion"`
	Overall     OverallResult    `json:"overall"`
	Study       Study            `json:"study"`
}

// RubricCheck partitions a checklist into covered and uncovered concept labels.
type RubricCheck struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}
