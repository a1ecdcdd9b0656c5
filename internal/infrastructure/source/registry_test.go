package source

import (
	"context"
	"testing"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DispatchesByKind(t *testing.T) {
	tests := []struct {
		kind   domain.AdapterKind
		accept string
	}{
		{domain.KindSuggest, fetch.AcceptJSON},
		{domain.KindJSONAPI, fetch.AcceptJSON},
		{domain.KindEmbedded, fetch.AcceptHTML},
		{domain.KindDOM, fetch.AcceptHTML},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			fetcher := &stubFetcher{body: ""}
			registry := NewRegistry(fetcher, nil)

			store := domain.Store{
				ID:       "example",
				Name:     "Example",
				Kind:     tt.kind,
				Endpoint: domain.Endpoint{BaseURL: "https://shop.example.com", SearchPath: "/search"},
			}
			products, err := registry.Search(context.Background(), store, "tee")

			require.NoError(t, err)
			assert.Empty(t, products)
			require.Len(t, fetcher.accepts, 1)
			assert.Equal(t, tt.accept, fetcher.accepts[0])
			assert.Equal(t, "https://shop.example.com/search", fetcher.urls[0])
		})
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	fetcher := &stubFetcher{}
	registry := NewRegistry(fetcher, nil)

	_, err := registry.Search(context.Background(), domain.Store{ID: "x", Kind: "graphql"}, "tee")

	assert.ErrorIs(t, err, domain.ErrNoAdapter)
	assert.Empty(t, fetcher.urls)
}
