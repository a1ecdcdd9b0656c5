package domain

import (
	"context"
	"net/url"
)

// SourceAdapter queries one upstream store and returns normalized products
// in the upstream's native order.
type SourceAdapter interface {
	Search(ctx context.Context, store Store, query string) ([]Product, error)
}

// FetchResponse is a raw upstream answer.
type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
}

// Fetcher performs outbound GET requests with shared request hygiene.
// Statuses >= 500 are returned as errors; everything below is passed through.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, params url.Values, accept string) (*FetchResponse, error)
}

// StoreDirectory is the read-only store configuration consumed by the router.
type StoreDirectory interface {
	Lookup(id StoreID) (Store, bool)
	All() []Store
}
