// Package normalize recovers structured data from loosely-formatted LLM
// output. LLMs wrap JSON in prose or markdown fences and render enum-like
// fields inconsistently; this package turns that output into canonical,
// typed values without ever raising on malformed input.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedBlockRe captures the interior of a ```json or bare ``` code fence.
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")

// ExtractJSON recovers a JSON value from arbitrary text. Three strategies
// are tried in order: direct parse, fenced code block, and a bracket scan
// that tracks nesting depth while skipping string literals. Returns nil if
// all three fail. Never panics and never returns an error.
func ExtractJSON(text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if v, ok := tryParse(trimmed); ok {
		return v
	}

	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		if v, ok := tryParse(strings.TrimSpace(m[1])); ok {
			return v
		}
	}

	for _, start := range candidateStarts(trimmed) {
		if sub := balancedValueAt(trimmed, start); sub != "" {
			if v, ok := tryParse(sub); ok {
				return v
			}
		}
	}

	return nil
}

// candidateStarts returns the indexes of the first '{' and the first '['
// in index order, so the earlier token is tried first rather than objects
// being preferred over arrays.
func candidateStarts(s string) []int {
	objIdx := strings.IndexByte(s, '{')
	arrIdx := strings.IndexByte(s, '[')

	var starts []int
	switch {
	case objIdx == -1 && arrIdx == -1:
	case objIdx == -1:
		starts = []int{arrIdx}
	case arrIdx == -1:
		starts = []int{objIdx}
	case objIdx < arrIdx:
		starts = []int{objIdx, arrIdx}
	default:
		starts = []int{arrIdx, objIdx}
	}
	return starts
}

// tryParse attempts a strict JSON parse of s.
func tryParse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// balancedValueAt scans forward from the bracket at start to its matching
// close bracket, ignoring brackets that occur inside string literals.
// Escaped quotes inside strings do not terminate string mode. Returns ""
// when the bracket is never balanced.
func balancedValueAt(s string, start int) string {
	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
