// Package entity defines the core domain entities and validation logic for the application.
// It contains the NewsItem record returned to callers and the rules a decoded
// provider payload must satisfy before it is trusted.
package entity

// TargetNewsCount is the number of items requested from the provider per page.
const TargetNewsCount = 5

// DateLayout is the YYYY-MM-DD layout used by NewsItem.Date.
const DateLayout = "2006-01-02"

// NewsItem represents a single news summary.
type NewsItem struct {
	Title   string `json:"title" example:"New battery chemistry reaches pilot production"`
	Summary string `json:"summary" example:"A sodium-ion cell maker opened its first pilot line..."`
	Source  string `json:"source" example:"Reuters"`
	Date    string `json:"date" example:"2025-05-01"`
}

// NewsList is an ordered sequence of news items.
// Duplicate titles are allowed.
type NewsList []NewsItem

// Titles returns the item titles in order.
func (l NewsList) Titles() []string {
	titles := make([]string, 0, len(l))
	for _, item := range l {
		titles = append(titles, item.Title)
	}
	return titles
}
