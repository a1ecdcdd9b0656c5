package source

import (
	"context"
	"encoding/json"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/closetscout/backend/internal/normalizer"
	"go.uber.org/zap"
)

// jsonAPIFields covers the common shapes of retailer search APIs.
var jsonAPIFields = domain.FieldMap{
	Title: domain.Field{{"name"}, {"brandName", "description"}, {"title"}},
	Price: domain.Field{{"price.current.text"}, {"price.current.value"}, {"price"}},
	Image: domain.Field{{"imageUrl"}, {"images.0.url"}, {"image"}},
	Link:  domain.Field{{"url"}, {"pdpUrl"}, {"link"}},
}

const defaultJSONAPIResultsPath = "products"

// JSONAPIAdapter queries a retailer's own paginated search API.
type JSONAPIAdapter struct {
	fetcher domain.Fetcher
	logger  *zap.Logger
}

// NewJSONAPIAdapter creates a new search API adapter
func NewJSONAPIAdapter(fetcher domain.Fetcher, logger *zap.Logger) *JSONAPIAdapter {
	return &JSONAPIAdapter{fetcher: fetcher, logger: logger}
}

// Search implements domain.SourceAdapter
func (a *JSONAPIAdapter) Search(ctx context.Context, store domain.Store, query string) ([]domain.Product, error) {
	body, err := fetchSearchPage(ctx, a.fetcher, store, query, fetch.AcceptJSON)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		a.logger.Debug("search API payload is not JSON", zap.String("store", string(store.ID)), zap.Error(err))
		return []domain.Product{}, nil
	}

	resultsPath := store.Endpoint.ResultsPath
	if resultsPath == "" {
		resultsPath = defaultJSONAPIResultsPath
	}
	items, ok := lookup(payload, resultsPath).([]any)
	if !ok {
		a.logger.Debug("search API payload has no product list",
			zap.String("store", string(store.ID)),
			zap.String("path", resultsPath),
		)
		return []domain.Product{}, nil
	}

	fields := withDefaults(store.Endpoint.Fields, jsonAPIFields)
	records := candidatesFromItems(items, fields, store.Endpoint.BaseURL)

	return normalizer.BuildProducts(records, store), nil
}
