package source

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/closetscout/backend/internal/normalizer"
	"go.uber.org/zap"
)

// suggestFields is the item shape of storefront-platform search suggestions.
var suggestFields = domain.FieldMap{
	Title: domain.Field{{"title"}, {"name"}},
	Price: domain.Field{{"price"}, {"price_min"}, {"variants.0.price"}},
	Image: domain.Field{{"image"}, {"featured_image.url"}, {"images.0"}},
	Link:  domain.Field{{"url"}, {"product_url"}},
}

const defaultSuggestResultsPath = "resources.results.products"

// imageSizeRegex matches the size token storefront CDNs put before the file extension
var imageSizeRegex = regexp.MustCompile(`_(?:\d+x\d*|x\d+|pico|icon|thumb|small|compact|medium|large|grande)(@2x)?(\.(?:jpe?g|png|gif|webp)(?:\?|$))`)

const upsizedImageToken = "_600x"

// upsizeImage asks the CDN for a larger rendition by rewriting the size token
// in the file name. URLs without a token are returned unchanged.
func upsizeImage(imageURL string) string {
	return imageSizeRegex.ReplaceAllString(imageURL, upsizedImageToken+"$2")
}

// SuggestAdapter queries a storefront-platform search-suggest JSON endpoint.
type SuggestAdapter struct {
	fetcher domain.Fetcher
	logger  *zap.Logger
}

// NewSuggestAdapter creates a new search-suggest adapter
func NewSuggestAdapter(fetcher domain.Fetcher, logger *zap.Logger) *SuggestAdapter {
	return &SuggestAdapter{fetcher: fetcher, logger: logger}
}

// Search implements domain.SourceAdapter
func (a *SuggestAdapter) Search(ctx context.Context, store domain.Store, query string) ([]domain.Product, error) {
	body, err := fetchSearchPage(ctx, a.fetcher, store, query, fetch.AcceptJSON)
	if err != nil {
		return nil, err
	}

	// UseNumber keeps "150" and "150.00" distinguishable for the cents heuristic.
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		a.logger.Debug("suggest payload is not JSON", zap.String("store", string(store.ID)), zap.Error(err))
		return []domain.Product{}, nil
	}

	resultsPath := store.Endpoint.ResultsPath
	if resultsPath == "" {
		resultsPath = defaultSuggestResultsPath
	}
	items, ok := lookup(payload, resultsPath).([]any)
	if !ok {
		a.logger.Debug("suggest payload has no product list",
			zap.String("store", string(store.ID)),
			zap.String("path", resultsPath),
		)
		return []domain.Product{}, nil
	}

	fields := withDefaults(store.Endpoint.Fields, suggestFields)
	records := make([]domain.CandidateRecord, 0, len(items))
	for _, record := range candidatesFromItems(items, fields, store.Endpoint.BaseURL) {
		price, ok := normalizer.CentsAwarePrice(record.Price)
		switch {
		case ok:
			record.Price = price
		case normalizer.IsBareNumber(record.Price):
			// zero or negative amount
			record.Price = ""
		}
		// spacers and tracking pixels must be rejected before their size token is rewritten
		if _, ok := normalizer.NormalizeImageURL(record.Image); ok {
			record.Image = upsizeImage(record.Image)
		}
		records = append(records, record)
	}

	return normalizer.BuildProducts(records, store), nil
}
