// Package text provides small helpers for handling user and provider text.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Topics are limited in characters, not bytes, so multi-byte scripts and emoji
// are counted the way a user would count them.
//
// Examples:
//
//	CountRunes("hello")     // 5
//	CountRunes("こんにちは") // 5
//	CountRunes("")          // 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate shortens text to at most maxRunes runes, appending "..." when it cuts.
// It never splits a multi-byte character.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
