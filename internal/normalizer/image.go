package normalizer

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// placeholderPatterns mark images that are spacers or tracking pixels rather than product shots
var placeholderPatterns = []string{"placeholder", "blank.gif", "1x1", "spacer"}

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">` +
	`<rect width="400" height="400" fill="#f3f4f6"/>` +
	`<text x="200" y="210" font-family="sans-serif" font-size="24" fill="#9ca3af" text-anchor="middle">No Image</text>` +
	`</svg>`

// PlaceholderImage is the inline image used when a product has no usable picture.
var PlaceholderImage = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(placeholderSVG))

// NormalizeImageURL returns an absolute https image URL, rewriting
// protocol-relative and plain http URLs to https. Data URIs, known placeholders and strings
// that are not well-formed absolute URLs are rejected.
func NormalizeImageURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "data:") {
		return "", false
	}
	for _, pattern := range placeholderPatterns {
		if strings.Contains(lower, pattern) {
			return "", false
		}
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if u.Scheme == "http" {
		s = "https" + s[len("http"):]
	}

	return s, true
}
