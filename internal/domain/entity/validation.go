package entity

import (
	"fmt"
	"time"
)

// newsItemFields lists the keys every decoded news item must carry as non-empty strings.
var newsItemFields = []string{"title", "summary", "source", "date"}

// NewsValidator decides whether a decoded provider payload is a usable news list.
// The zero value checks types and emptiness only; StrictDate additionally requires
// the date field to parse as YYYY-MM-DD.
type NewsValidator struct {
	StrictDate bool
}

// Validate checks v, the result of decoding JSON into an `any`, and converts it to a NewsList.
// It returns a *ValidationError describing the first violation found.
func (nv NewsValidator) Validate(v any) (NewsList, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, &ValidationError{Index: -1, Message: fmt.Sprintf("expected array, got %T", v)}
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Index: -1, Message: "news list is empty"}
	}

	list := make(NewsList, 0, len(raw))
	for i, elem := range raw {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, &ValidationError{Index: i, Message: fmt.Sprintf("expected object, got %T", elem)}
		}

		values := make(map[string]string, len(newsItemFields))
		for _, field := range newsItemFields {
			s, ok := obj[field].(string)
			if !ok {
				return nil, &ValidationError{Index: i, Field: field, Message: "must be a string"}
			}
			if s == "" {
				return nil, &ValidationError{Index: i, Field: field, Message: "cannot be empty"}
			}
			values[field] = s
		}

		if nv.StrictDate {
			if _, err := time.Parse(DateLayout, values["date"]); err != nil {
				return nil, &ValidationError{Index: i, Field: "date", Message: "must be in YYYY-MM-DD format"}
			}
		}

		list = append(list, NewsItem{
			Title:   values["title"],
			Summary: values["summary"],
			Source:  values["source"],
			Date:    values["date"],
		})
	}

	return list, nil
}

// IsValidNewsList reports whether v is a non-empty array whose elements all carry
// non-empty string title, summary, source and date fields.
func IsValidNewsList(v any) bool {
	_, err := NewsValidator{}.Validate(v)
	return err == nil
}
