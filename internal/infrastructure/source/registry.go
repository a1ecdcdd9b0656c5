package source

import (
	"context"
	"fmt"

	"github.com/closetscout/backend/internal/domain"
	"go.uber.org/zap"
)

// Registry dispatches a store to the adapter for its kind.
type Registry struct {
	adapters map[domain.AdapterKind]domain.SourceAdapter
}

// NewRegistry wires every adapter kind to the shared fetcher
func NewRegistry(fetcher domain.Fetcher, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("source")

	return &Registry{
		adapters: map[domain.AdapterKind]domain.SourceAdapter{
			domain.KindSuggest:  NewSuggestAdapter(fetcher, logger),
			domain.KindJSONAPI:  NewJSONAPIAdapter(fetcher, logger),
			domain.KindEmbedded: NewEmbeddedAdapter(fetcher, logger),
			domain.KindDOM:      NewDOMAdapter(fetcher, logger),
		},
	}
}

// Search implements domain.SourceAdapter
func (r *Registry) Search(ctx context.Context, store domain.Store, query string) ([]domain.Product, error) {
	adapter, ok := r.adapters[store.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoAdapter, store.Kind)
	}
	return adapter.Search(ctx, store, query)
}
