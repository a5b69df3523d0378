// Package pagination turns the loosely typed page field of a request body into
// a page number and the offset passed to the provider prompt.
package pagination

// CalculateOffset calculates the number of items to skip for a 1-based page.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 5 -> Offset 0
//   - Page 2, Limit 5 -> Offset 5
//   - Page 3, Limit 5 -> Offset 10
func CalculateOffset(page, limit int) int {
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * limit
}
