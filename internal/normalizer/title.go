package normalizer

import (
	"regexp"
	"strings"

	"github.com/closetscout/backend/internal/domain"
)

// MaxTitleLength is the longest title, in characters, kept after normalization.
const MaxTitleLength = 120

const ellipsis = "..."

// promoPrefixRegex matches merchandising labels glued to the front of a title
var promoPrefixRegex = regexp.MustCompile(`(?i)^(?:new|sale|hot|best seller)\s*[[:punct:]]+\s*`)

// NormalizeTitle collapses whitespace, strips promotional prefixes and
// truncates long titles with an ellipsis. Empty input yields domain.UnknownTitle.
func NormalizeTitle(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")

	// Labels can stack ("NEW! SALE - ..."), strip until nothing matches.
	for {
		stripped := strings.TrimSpace(promoPrefixRegex.ReplaceAllString(s, ""))
		if stripped == s {
			break
		}
		s = stripped
	}

	if s == "" {
		return domain.UnknownTitle
	}

	runes := []rune(s)
	if len(runes) > MaxTitleLength {
		s = strings.TrimRight(string(runes[:MaxTitleLength-len(ellipsis)]), " ") + ellipsis
	}

	return s
}
