package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/logger"
	"github.com/closetscout/backend/internal/metrics"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// SearchService fans one query out to every requested store and
// collects the per-store outcomes into a single response.
type SearchService struct {
	directory domain.StoreDirectory
	adapter   domain.SourceAdapter
	logger    *zap.Logger
	now       func() time.Time
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(directory domain.StoreDirectory, adapter domain.SourceAdapter, log *zap.Logger) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchService{
		directory: directory,
		adapter:   adapter,
		logger:    log.Named("search"),
		now:       time.Now,
	}
}

// ResolveStores maps requested ids onto directory entries in request order.
// Unknown ids are dropped and repeated ids keep their first position.
func (s *SearchService) ResolveStores(ids []string) []domain.Store {
	stores := make([]domain.Store, 0, len(ids))
	seen := make(map[domain.StoreID]bool, len(ids))

	for _, id := range ids {
		storeID := domain.StoreID(id)
		if seen[storeID] {
			continue
		}
		store, ok := s.directory.Lookup(storeID)
		if !ok {
			continue
		}
		seen[storeID] = true
		stores = append(stores, store)
	}

	return stores
}

// Search queries the requested stores concurrently and waits for all of them.
// A failing store yields an error entry; it never fails the whole search.
func (s *SearchService) Search(ctx context.Context, request *domain.SearchRequest) (*domain.SearchResponse, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	query := SanitizeQuery(request.Query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if len(request.Stores) == 0 {
		return nil, domain.ErrNoStoresSelected
	}

	log := logger.FromContext(ctx, s.logger)
	stores := s.ResolveStores(request.Stores)
	if dropped := len(request.Stores) - len(stores); dropped > 0 {
		log.Debug("ignoring unknown or repeated store ids", zap.Int("dropped", dropped))
	}

	results := make([]domain.StoreResult, len(stores))
	var wg conc.WaitGroup
	for i, store := range stores {
		wg.Go(func() {
			results[i] = s.searchStore(ctx, log, store, query)
		})
	}
	wg.Wait()

	log.Info("search completed",
		zap.String("query", query),
		zap.Int("stores", len(stores)),
		zap.Int("products", totalProducts(results)),
	)

	return &domain.SearchResponse{
		Query:     query,
		Category:  request.Category,
		Timestamp: s.now().UTC(),
		Stores:    results,
	}, nil
}

// searchStore runs one adapter and turns any failure, panics included,
// into the store's error field.
func (s *SearchService) searchStore(ctx context.Context, log *zap.Logger, store domain.Store, query string) domain.StoreResult {
	result := domain.StoreResult{
		ID:      store.ID,
		Name:    store.Name,
		Results: []domain.Product{},
	}
	log = log.With(zap.String("store", string(store.ID)))

	start := time.Now()
	var (
		products []domain.Product
		err      error
	)
	recovered := panics.Try(func() {
		products, err = s.adapter.Search(ctx, store, query)
	})
	if recovered != nil {
		log.Error("store adapter panicked", zap.Any("panic", recovered.Value), zap.ByteString("stack", recovered.Stack))
		err = fmt.Errorf("panic: %v", recovered.Value)
	}
	elapsed := time.Since(start)

	if err != nil {
		log.Warn("store search failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		metrics.ObserveStoreFetch(string(store.ID), metrics.OutcomeError, elapsed, 0)
		msg := err.Error()
		result.Error = &msg
		return result
	}

	if len(products) > 0 {
		result.Results = products
	}
	result.Count = len(result.Results)

	outcome := metrics.OutcomeOK
	if result.Count == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.ObserveStoreFetch(string(store.ID), outcome, elapsed, result.Count)
	log.Debug("store search completed", zap.Duration("elapsed", elapsed), zap.Int("count", result.Count))

	return result
}

func totalProducts(results []domain.StoreResult) int {
	total := 0
	for _, r := range results {
		total += r.Count
	}
	return total
}
