package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
)

// searchURL builds the store's search URL; a "{query}" placeholder in the
// search path is replaced with the escaped query.
func searchURL(store domain.Store, query string) string {
	path := strings.ReplaceAll(store.Endpoint.SearchPath, "{query}", url.PathEscape(query))
	return strings.TrimRight(store.Endpoint.BaseURL, "/") + path
}

// searchParams builds the query string sent with every search request
func searchParams(store domain.Store, query string) url.Values {
	params := url.Values{}
	if qp := store.Endpoint.QueryParam; qp != "" {
		params.Set(qp, query)
	}
	for key, value := range store.Endpoint.Params {
		params.Set(key, value)
	}
	if lp := store.Endpoint.LimitParam; lp != "" && store.MaxResults > 0 {
		params.Set(lp, strconv.Itoa(store.MaxResults))
	}
	return params
}

// fetchSearchPage performs the single search request an adapter makes and
// rejects any status of 400 or above.
func fetchSearchPage(ctx context.Context, fetcher domain.Fetcher, store domain.Store, query, accept string) ([]byte, error) {
	resp, err := fetcher.Get(ctx, searchURL(store, query), searchParams(store, query), accept)
	if err != nil {
		return nil, err
	}
	if err := fetch.RequireSuccess(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
