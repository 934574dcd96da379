package normalize

import (
	"github.com/nsip/otf-feedback/internal/engine"
	"github.com/tidwall/gjson"
)

// RawScores reads the per-question marks out of a scorer response. A
// missing or non-array "perQuestion" gives no scores; a mark that is not
// a number reads as 0. Any "overall" block is ignored.
func RawScores(body gjson.Result) []engine.RawScore {
	pq := unwrap(body.Get("perQuestion"))
	out := []engine.RawScore{}
	if !pq.IsArray() {
		return out
	}
	pq.ForEach(func(_, item gjson.Result) bool {
		marks, _ := number(item.Get("marks"))
		s := engine.RawScore{Marks: marks}
		if c := item.Get("comments"); c.Type == gjson.String {
			s.Comments = c.Str
		}
		out = append(out, s)
		return true
	})
	return out
}
