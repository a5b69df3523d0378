// Package jsonarray recovers a JSON array of objects from free-form LLM output.
//
// Models are asked for a bare JSON array but routinely wrap it in prose,
// markdown code fences or trailing commentary. Extract finds the first array
// that is well-formed JSON and holds at least one object, and never panics.
package jsonarray

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

const (
	// MaxInputBytes caps how much provider text is scanned.
	MaxInputBytes = 256 << 10

	// maxCandidates bounds the number of '[' positions tried per scan.
	maxCandidates = 512
)

// fencePattern matches ``` or ```json fenced blocks, non-greedy.
var fencePattern = regexp.MustCompile("(?s)```[ \t]*(?:json|JSON)?[ \t]*\r?\n?(.*?)```")

// Extract returns the first substring of text that is a JSON array containing
// at least one object. The boolean is false when no such array exists.
//
// Fenced code blocks are searched before the surrounding text, so a model that
// quotes an example array in prose and then emits the real payload in a fence
// yields the fenced payload.
func Extract(text string) (result string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			result, ok = "", false
		}
	}()

	if len(text) > MaxInputBytes {
		text = text[:MaxInputBytes]
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if isArrayOfObjects(trimmed) {
		return trimmed, true
	}

	for _, m := range fencePattern.FindAllStringSubmatch(text, -1) {
		if candidate, found := scan(m[1]); found {
			return candidate, true
		}
	}

	return scan(text)
}

// scan walks text from each '[' left to right and returns the first balanced
// bracket span that decodes as an array of objects.
func scan(text string) (string, bool) {
	tried := 0
	for start := strings.IndexByte(text, '['); start >= 0 && tried < maxCandidates; tried++ {
		if end := matchBracket(text, start); end > start {
			candidate := text[start : end+1]
			if isArrayOfObjects(candidate) {
				return candidate, true
			}
		}

		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBracket returns the index of the ']' closing the '[' at start, or -1.
// Brackets inside JSON string literals are ignored.
func matchBracket(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isArrayOfObjects reports whether s is valid JSON whose top level is an array
// with at least one object element.
func isArrayOfObjects(s string) bool {
	if !strings.HasPrefix(s, "[") || !json.Valid([]byte(s)) {
		return false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return false
	}
	for _, e := range elems {
		if bytes.HasPrefix(bytes.TrimSpace(e), []byte("{")) {
			return true
		}
	}
	return false
}
