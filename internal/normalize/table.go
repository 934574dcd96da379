package normalize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const jsonTablePrefix = "__JSON__:"

// TableResult is the tagged outcome of reading a data table.
type TableResult struct {
	Kind    Kind       `json:"-"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Table reads a data table given as a "__JSON__:" prefixed string, a
// bare array of rows, or an object with headers and rows. Object rows
// are laid out by header, or by first appearance of their keys when no
// headers are given.
func Table(v gjson.Result) TableResult {
	if v.Type == gjson.String {
		t := strings.TrimSpace(v.Str)
		if strings.HasPrefix(t, jsonTablePrefix) {
			j := strings.TrimPrefix(t, jsonTablePrefix)
			if !gjson.Valid(j) {
				return TableResult{Kind: Unrecognized}
			}
			p := gjson.Parse(j)
			if !p.Get("headers").IsArray() || !p.Get("rows").IsArray() {
				return TableResult{Kind: Unrecognized}
			}
			return TableResult{Kind: Canonical, Headers: Strings(p.Get("headers")), Rows: rows(p.Get("rows"), nil)}
		}
	}

	v = unwrap(v)
	switch {
	case v.IsArray():
		rs := rows(v, nil)
		cols := 0
		for _, r := range rs {
			if len(r) > cols {
				cols = len(r)
			}
		}
		headers := make([]string, cols)
		for i := range headers {
			headers[i] = fmt.Sprintf("Col %d", i+1)
		}
		return TableResult{Kind: Canonical, Headers: headers, Rows: rs}

	case v.IsObject():
		headers := Strings(v.Get("headers"))
		raw := unwrap(v.Get("rows"))
		first := raw.Get("0")
		if first.IsObject() {
			if len(headers) == 0 {
				headers = objectKeys(raw)
			}
			return TableResult{Kind: Canonical, Headers: headers, Rows: rows(raw, headers)}
		}
		if len(headers) > 0 && first.IsArray() {
			return TableResult{Kind: Canonical, Headers: headers, Rows: rows(raw, nil)}
		}
	}
	return TableResult{Kind: Unrecognized}
}

// rows converts each row to strings. Object rows are projected onto keys;
// scalar rows become single-cell rows.
func rows(v gjson.Result, keys []string) [][]string {
	out := [][]string{}
	v.ForEach(func(_, row gjson.Result) bool {
		switch {
		case row.IsObject():
			vals := map[string]string{}
			row.ForEach(func(k, c gjson.Result) bool {
				vals[k.Str] = scalar(c)
				return true
			})
			cells := make([]string, len(keys))
			for i, k := range keys {
				cells[i] = vals[k]
			}
			out = append(out, cells)
		case row.IsArray():
			cells := []string{}
			row.ForEach(func(_, c gjson.Result) bool {
				cells = append(cells, scalar(c))
				return true
			})
			out = append(out, cells)
		default:
			out = append(out, []string{scalar(row)})
		}
		return true
	})
	return out
}

// objectKeys lists the keys of every object row in order of first use.
func objectKeys(v gjson.Result) []string {
	var keys []string
	seen := map[string]bool{}
	v.ForEach(func(_, row gjson.Result) bool {
		row.ForEach(func(k, _ gjson.Result) bool {
			if !seen[k.Str] {
				seen[k.Str] = true
				keys = append(keys, k.Str)
			}
			return true
		})
		return true
	})
	return keys
}
