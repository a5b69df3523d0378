package news

import (
	"time"

	"github.com/budge42/novanews/internal/domain/entity"
)

const fallbackSource = "NovaNews"

// Fallback returns the placeholder list served when the provider output cannot
// be trusted. It is a pure function of the calendar day of now in the server's
// local zone.
func Fallback(now time.Time) entity.NewsList {
	date := now.In(time.Local).Format(entity.DateLayout)

	return entity.NewsList{
		{
			Title:   "Fresh headlines are on their way",
			Summary: "We could not load verified stories for this topic just now. Please try again in a few minutes.",
			Source:  fallbackSource,
			Date:    date,
		},
		{
			Title:   "Try a broader topic",
			Summary: "Broader or more widely covered topics usually return more recent stories.",
			Source:  fallbackSource,
			Date:    date,
		},
	}
}
