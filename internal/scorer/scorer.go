//
// Package scorer calls the external service that supplies a raw mark
// for each answer. The engine only consumes what this returns.
//
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nsip/otf-feedback/internal/engine"
	"github.com/nsip/otf-feedback/internal/normalize"
	"github.com/nsip/otf-feedback/internal/util"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a scoring call when the client is given none.
const DefaultTimeout = 60 * time.Second

// Request is the payload the scoring service expects.
type Request struct {
	Title     string          `json:"title"`
	Questions []QuestionSpec  `json:"questions"`
	Answers   []string        `json:"answers"`
	Rubric    RubricSelection `json:"rubric"`
}

type QuestionSpec struct {
	Text  string  `json:"text"`
	Marks float64 `json:"marks"`
}

type RubricSelection struct {
	PaperType string `json:"paperType"`
}

// NewRequest builds a scoring request for a set of questions and answers.
func NewRequest(meta engine.CaseMeta, questions []engine.Question, answers []string) Request {
	r := Request{
		Title:     meta.Title,
		Questions: make([]QuestionSpec, len(questions)),
		Answers:   make([]string, len(questions)),
		Rubric:    RubricSelection{PaperType: meta.PaperType},
	}
	for i, q := range questions {
		r.Questions[i] = QuestionSpec{Text: q.Text, Marks: q.MaxMarks}
		if i < len(answers) {
			r.Answers[i] = answers[i]
		}
	}
	return r
}

// Client posts scoring requests to a single endpoint.
type Client struct {
	url     string
	token   string
	timeout time.Duration
}

func NewClient(url, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{url: url, token: token, timeout: timeout}
}

// Score sends the request and returns the per-question raw scores. The
// response's overall block is ignored; the engine recomputes it.
func (c *Client) Score(ctx context.Context, req Request) ([]engine.RawScore, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode scoring request")
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if c.token != "" {
		headers["Authorization"] = c.token
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := util.Fetch(ctx, http.MethodPost, c.url, headers, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "scoring service call failed")
	}
	if !gjson.ValidBytes(res) {
		return nil, errors.New("scoring service returned invalid json")
	}

	return normalize.RawScores(gjson.ParseBytes(res)), nil
}
