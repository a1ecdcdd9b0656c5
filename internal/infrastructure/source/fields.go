package source

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/closetscout/backend/internal/domain"
)

// lookup walks a dotted path through decoded JSON. Numeric segments index arrays.
func lookup(v any, path string) any {
	if path == "" {
		return nil
	}
	for _, key := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			v = node[key]
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			v = node[i]
		default:
			return nil
		}
	}
	return v
}

// stringify renders scalar JSON values; objects, arrays and null become "".
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// resolveField evaluates accessor attempts in order and returns the first
// non-empty value. A multi-path accessor joins whichever parts are present.
func resolveField(item any, field domain.Field) string {
	for _, accessor := range field {
		parts := make([]string, 0, len(accessor))
		for _, path := range accessor {
			if s := stringify(lookup(item, path)); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// withDefaults fills attributes the store left unconfigured
func withDefaults(fields, defaults domain.FieldMap) domain.FieldMap {
	if len(fields.Title) == 0 {
		fields.Title = defaults.Title
	}
	if len(fields.Price) == 0 {
		fields.Price = defaults.Price
	}
	if len(fields.Image) == 0 {
		fields.Image = defaults.Image
	}
	if len(fields.Link) == 0 {
		fields.Link = defaults.Link
	}
	return fields
}

// candidatesFromItems maps decoded upstream items onto candidate records,
// resolving links and images against the store's base URL.
func candidatesFromItems(items []any, fields domain.FieldMap, baseURL string) []domain.CandidateRecord {
	records := make([]domain.CandidateRecord, 0, len(items))
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			continue
		}
		records = append(records, domain.CandidateRecord{
			Title: resolveField(item, fields.Title),
			Price: resolveField(item, fields.Price),
			Image: absoluteImageURL(baseURL, resolveField(item, fields.Image)),
			Link:  absoluteURL(baseURL, resolveField(item, fields.Link)),
		})
	}
	return records
}

// absoluteURL resolves ref against base. Protocol-relative refs get https.
// Returns "" when ref is empty or cannot be made absolute.
func absoluteURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return ref
	}

	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(u).String()
}

// absoluteImageURL is absoluteURL plus support for scheme-less CDN hosts
// such as "images.example-cdn.com/products/1.jpg".
func absoluteImageURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, ".") || strings.Contains(ref, "://") {
		return absoluteURL(base, ref)
	}
	if strings.HasPrefix(ref, "data:") {
		return ref
	}

	host, _, hasPath := strings.Cut(ref, "/")
	if hasPath && strings.Contains(host, ".") && !strings.ContainsAny(host, "?#") {
		return "https://" + ref
	}
	return absoluteURL(base, ref)
}
