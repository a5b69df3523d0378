package jsonarray_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/budge42/novanews/internal/utils/jsonarray"
)

const item = `{"title":"t","summary":"s","source":"x","date":"2024-05-01"}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "clean array returns itself",
			input:  "[" + item + "]",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "clean array with surrounding whitespace",
			input:  "\n  [" + item + "]  \n",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "prose preamble and trailing commentary",
			input:  "Here are the stories you asked for: [" + item + "] Let me know if you need more.",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "json fenced block",
			input:  "Sure! ```json\n[" + item + "]\n``` ",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "unlabelled fence",
			input:  "```\n[" + item + "]\n```",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "fenced payload wins over array quoted in prose",
			input:  `Format: [{"title":"example"}]` + "\n```json\n[" + item + "," + item + "]\n```",
			want:   "[" + item + "," + item + "]",
			wantOK: true,
		},
		{
			name:   "citation markers before the array are skipped",
			input:  "Sources [1] and [2] agree. [" + item + "]",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "nested arrays inside objects",
			input:  `result: [{"title":"t","tags":["a","b"],"summary":"s","source":"x","date":"2024-05-01"}] done`,
			want:   `[{"title":"t","tags":["a","b"],"summary":"s","source":"x","date":"2024-05-01"}]`,
			wantOK: true,
		},
		{
			name:   "brackets inside string values",
			input:  `ok [{"title":"Array [beta] ships","summary":"a ] b","source":"x","date":"2024-05-01"}] end`,
			want:   `[{"title":"Array [beta] ships","summary":"a ] b","source":"x","date":"2024-05-01"}]`,
			wantOK: true,
		},
		{
			name:   "escaped quotes inside strings",
			input:  `[{"title":"He said \"[hi]\"","summary":"s","source":"x","date":"2024-05-01"}]`,
			want:   `[{"title":"He said \"[hi]\"","summary":"s","source":"x","date":"2024-05-01"}]`,
			wantOK: true,
		},
		{
			name:   "first of two arrays",
			input:  "[" + item + "] and also [" + item + "," + item + "]",
			want:   "[" + item + "]",
			wantOK: true,
		},
		{
			name:   "mixed array with at least one object",
			input:  `[1, {"a":1}]`,
			want:   `[1, {"a":1}]`,
			wantOK: true,
		},
		{
			name:   "plain refusal",
			input:  "I cannot comply.",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
		{
			name:   "array of scalars",
			input:  `["a", "b", 3]`,
			wantOK: false,
		},
		{
			name:   "empty array",
			input:  `[]`,
			wantOK: false,
		},
		{
			name:   "bare object",
			input:  item,
			wantOK: false,
		},
		{
			name:   "truncated array",
			input:  "[" + item + "," + `{"title":"cut off`,
			wantOK: false,
		},
		{
			name:   "unbalanced brackets",
			input:  "]]][[[{",
			wantOK: false,
		},
		{
			name:   "trailing comma is not json",
			input:  "[" + item + ",]",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := jsonarray.Extract(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	noise := make([]byte, 4096)
	rng.Read(noise)

	inputs := []string{
		string(noise),
		strings.Repeat("{", 100000),
		strings.Repeat("[", 20000) + strings.Repeat("]", 20000),
		"[" + strings.Repeat(`{"a":`, 20000) + "1" + strings.Repeat("}", 20000) + "]",
		strings.Repeat("[", 5000),
		strings.Repeat(`"`, 3001) + "[" + item + "]",
		"\x00\xff[\xfe]",
		strings.Repeat("x", jsonarray.MaxInputBytes+10) + "[" + item + "]",
	}

	for i, in := range inputs {
		assert.NotPanics(t, func() {
			_, _ = jsonarray.Extract(in)
		}, "input %d", i)
	}
}

func TestExtract_DeeplyNestedArrayIsRejected(t *testing.T) {
	in := strings.Repeat("[", 20000) + item + strings.Repeat("]", 20000)
	_, ok := jsonarray.Extract(in)
	assert.False(t, ok)
}
