//
// Package normalize turns loosely shaped case documents and scorer
// payloads into the canonical shapes the engine works on.
//
// Anything that cannot be understood is reported through an explicit
// Unrecognized result rather than guessed at.
//
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind tags the outcome of a structural parse.
type Kind int

const (
	Unrecognized Kind = iota
	Canonical
)

func (k Kind) String() string {
	if k == Canonical {
		return "canonical"
	}
	return "unrecognized"
}

// Number is one parsed numeric entry; OK is false when the source value
// was not a finite number.
type Number struct {
	Value float64
	OK    bool
}

// unwrap parses a string value that itself holds a JSON array or object.
func unwrap(v gjson.Result) gjson.Result {
	if v.Type != gjson.String {
		return v
	}
	t := strings.TrimSpace(v.Str)
	if looksJSON(t) && gjson.Valid(t) {
		return gjson.Parse(t)
	}
	return v
}

func looksJSON(t string) bool {
	return (strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]")) ||
		(strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}"))
}

// Strings reads a list of strings from an array, a JSON-encoded string,
// a comma separated string or a single scalar. Missing and null values
// give an empty list.
func Strings(v gjson.Result) []string {
	v = unwrap(v)
	out := []string{}
	switch {
	case !v.Exists() || v.Type == gjson.Null:
	case v.IsArray():
		v.ForEach(func(_, e gjson.Result) bool {
			if e.Type != gjson.Null {
				out = append(out, e.String())
			}
			return true
		})
	case v.IsObject():
		out = append(out, v.Raw)
	case v.Type == gjson.String:
		t := strings.TrimSpace(v.Str)
		switch {
		case t == "":
		case strings.Contains(t, ","):
			for _, p := range strings.Split(t, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
		default:
			out = append(out, t)
		}
	default:
		out = append(out, v.String())
	}
	return out
}

// Numbers reads a list of numbers the same way Strings reads strings.
// Entries that are not numbers are kept in place with OK unset so that
// positions stay aligned.
func Numbers(v gjson.Result) []Number {
	v = unwrap(v)
	out := []Number{}
	switch {
	case v.IsArray():
		v.ForEach(func(_, e gjson.Result) bool {
			n, ok := number(e)
			out = append(out, Number{Value: n, OK: ok})
			return true
		})
	case v.Type == gjson.Number:
		out = append(out, Number{Value: v.Num, OK: true})
	case v.Type == gjson.String:
		t := strings.TrimSpace(v.Str)
		if t == "" || looksJSON(t) {
			break
		}
		for _, p := range strings.Split(t, ",") {
			n, ok := parseNumber(p)
			out = append(out, Number{Value: n, OK: ok})
		}
	}
	return out
}

// number reads a finite number from a JSON number or a numeric string.
func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, !math.IsInf(v.Num, 0) && !math.IsNaN(v.Num)
	case gjson.String:
		return parseNumber(v.Str)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Answers aligns submitted answers to n questions. It accepts an array
// or an object keyed by question index; missing entries become "".
func Answers(v gjson.Result, n int) []string {
	v = unwrap(v)
	out := make([]string, n)
	switch {
	case v.IsArray():
		for i, e := range v.Array() {
			if i >= n {
				break
			}
			out[i] = strings.TrimSpace(scalar(e))
		}
	case v.IsObject():
		v.ForEach(func(k, e gjson.Result) bool {
			if i, err := strconv.Atoi(k.String()); err == nil && i >= 0 && i < n {
				out[i] = strings.TrimSpace(scalar(e))
			}
			return true
		})
	}
	return out
}

// scalar renders strings and numbers as text and anything else as "".
func scalar(v gjson.Result) string {
	switch v.Type {
	case gjson.String, gjson.Number:
		return v.String()
	}
	return ""
}
