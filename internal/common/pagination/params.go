package pagination

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used whenever the page field is absent or unusable.
	DefaultPage = 1

	// MaxPage bounds the page number so the prompt offset stays meaningful.
	MaxPage = 1000
)

// CoercePage converts a decoded JSON page value into a page number.
//
// Accepted inputs: integers, floats with no fractional part, json.Number and
// numeric strings (surrounding spaces allowed), each in [1, MaxPage].
// Anything else, including nil, booleans, 0, negatives and 2.5, yields DefaultPage.
func CoercePage(v any) int {
	var f float64

	switch p := v.(type) {
	case int:
		f = float64(p)
	case int64:
		f = float64(p)
	case float64:
		f = p
	case json.Number:
		parsed, err := p.Float64()
		if err != nil {
			return DefaultPage
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return DefaultPage
		}
		f = parsed
	default:
		return DefaultPage
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 1 || f > MaxPage {
		return DefaultPage
	}
	return int(f)
}
