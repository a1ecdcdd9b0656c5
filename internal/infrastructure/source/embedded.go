package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/closetscout/backend/internal/normalizer"
	"github.com/titanous/json5"
	"go.uber.org/zap"
)

// embeddedFields covers the item shapes seen in server-rendered product payloads.
var embeddedFields = domain.FieldMap{
	Title: domain.Field{{"title"}, {"name"}, {"brand", "description"}},
	Price: domain.Field{{"price.formattedValue"}, {"price.value"}, {"price"}, {"salePrice"}, {"regularPrice"}},
	Image: domain.Field{{"image"}, {"imageUrl"}, {"images.0.url"}, {"images.0"}},
	Link:  domain.Field{{"url"}, {"link"}, {"productUrl"}},
}

// ArrayExtractor cuts the JSON array stored under marker out of a script's
// text. It returns false when the script holds no such array.
type ArrayExtractor func(scriptText, marker string) (string, bool)

// ExtractEmbeddedArray finds `"marker": [` (quotes optional, as in JS object
// literals) and returns the bracket-balanced array that follows. Brackets
// inside string literals are ignored.
func ExtractEmbeddedArray(scriptText, marker string) (string, bool) {
	if marker == "" {
		return "", false
	}

	loc := markerPattern(marker).FindStringIndex(scriptText)
	if loc == nil {
		return "", false
	}

	start := loc[1] - 1
	end := matchingBracket(scriptText, start)
	if end < 0 {
		return "", false
	}
	return scriptText[start : end+1], true
}

// markerPatterns caches one compiled pattern per marker
var markerPatterns sync.Map

func markerPattern(marker string) *regexp.Regexp {
	if cached, ok := markerPatterns.Load(marker); ok {
		return cached.(*regexp.Regexp)
	}
	pattern := regexp.MustCompile(`(?:^|[^\w$])["']?` + regexp.QuoteMeta(marker) + `["']?\s*:\s*\[`)
	actual, _ := markerPatterns.LoadOrStore(marker, pattern)
	return actual.(*regexp.Regexp)
}

// matchingBracket returns the index closing the bracket opened at start, or -1
func matchingBracket(s string, start int) int {
	depth := 0
	var quote byte
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// decodeArray parses strict JSON first and falls back to JSON5 for
// JavaScript-style literals (unquoted keys, single quotes, trailing commas).
func decodeArray(raw string) ([]any, error) {
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}
	if err := json5.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode embedded array: %w", err)
	}
	return items, nil
}

// EmbeddedAdapter reads the product list a retailer embeds as JSON inside a
// script block of its search results page.
type EmbeddedAdapter struct {
	fetcher domain.Fetcher
	extract ArrayExtractor
	logger  *zap.Logger
}

// NewEmbeddedAdapter creates a new embedded-JSON adapter
func NewEmbeddedAdapter(fetcher domain.Fetcher, logger *zap.Logger) *EmbeddedAdapter {
	return &EmbeddedAdapter{
		fetcher: fetcher,
		extract: ExtractEmbeddedArray,
		logger:  logger,
	}
}

// Search implements domain.SourceAdapter
func (a *EmbeddedAdapter) Search(ctx context.Context, store domain.Store, query string) ([]domain.Product, error) {
	body, err := fetchSearchPage(ctx, a.fetcher, store, query, fetch.AcceptHTML)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Debug("search page is not parseable HTML", zap.String("store", string(store.ID)), zap.Error(err))
		return []domain.Product{}, nil
	}

	items := a.scanScripts(doc, store)
	if len(items) == 0 {
		a.logger.Debug("no embedded product payload found",
			zap.String("store", string(store.ID)),
			zap.String("marker", store.Endpoint.Marker),
		)
		return []domain.Product{}, nil
	}

	fields := withDefaults(store.Endpoint.Fields, embeddedFields)
	records := candidatesFromItems(items, fields, store.Endpoint.BaseURL)

	return normalizer.BuildProducts(records, store), nil
}

// scanScripts returns the items of the first script whose marker array decodes
func (a *EmbeddedAdapter) scanScripts(doc *goquery.Document, store domain.Store) []any {
	marker := store.Endpoint.Marker
	var items []any

	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, marker) {
			return true
		}

		raw, ok := a.extract(text, marker)
		if !ok {
			return true
		}

		decoded, err := decodeArray(raw)
		if err != nil {
			a.logger.Debug("embedded payload did not decode", zap.String("store", string(store.ID)), zap.Error(err))
			return true
		}

		items = decoded
		return false
	})

	return items
}
