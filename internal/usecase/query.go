package usecase

import (
	"regexp"
	"strings"
)

// MaxQueryLength is the longest query, in characters, forwarded to stores
const MaxQueryLength = 200

var bracketRegex = regexp.MustCompile(`[<>{}]`)

// SanitizeQuery trims the query, strips angle and curly brackets and
// truncates it to MaxQueryLength characters.
func SanitizeQuery(raw string) string {
	query := bracketRegex.ReplaceAllString(strings.TrimSpace(raw), "")

	if runes := []rune(query); len(runes) > MaxQueryLength {
		query = string(runes[:MaxQueryLength])
	}

	return strings.TrimSpace(query)
}
