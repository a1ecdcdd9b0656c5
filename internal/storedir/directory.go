package storedir

import (
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"
	"github.com/closetscout/backend/internal/domain"
)

// Override changes one built-in store without redefining it
type Override struct {
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	Disabled   bool   `mapstructure:"disabled"`
}

// Directory is the read-only store table shared by the router and adapters.
// It is built once at startup and never mutated.
type Directory struct {
	stores map[domain.StoreID]domain.Store
	order  []domain.StoreID
}

// New builds a directory, rejecting duplicate or incomplete entries
func New(stores []domain.Store) (*Directory, error) {
	d := &Directory{
		stores: make(map[domain.StoreID]domain.Store, len(stores)),
		order:  make([]domain.StoreID, 0, len(stores)),
	}

	for _, store := range stores {
		if store.ID == "" || store.Name == "" {
			return nil, errors.New("store id and name are required")
		}
		if store.Endpoint.BaseURL == "" {
			return nil, fmt.Errorf("store %q has no base URL", store.ID)
		}
		if _, exists := d.stores[store.ID]; exists {
			return nil, fmt.Errorf("duplicate store id %q", store.ID)
		}
		d.stores[store.ID] = store
		d.order = append(d.order, store.ID)
	}

	return d, nil
}

// Lookup returns the store configured under id
func (d *Directory) Lookup(id domain.StoreID) (domain.Store, bool) {
	store, ok := d.stores[id]
	return store, ok
}

// All returns every store in directory order
func (d *Directory) All() []domain.Store {
	stores := make([]domain.Store, 0, len(d.order))
	for _, id := range d.order {
		stores = append(stores, d.stores[id])
	}
	return stores
}

// Len returns the number of stores
func (d *Directory) Len() int {
	return len(d.order)
}

// Apply merges configuration onto a store table: defaultMaxResults fills
// stores without their own cap, overrides replace non-empty fields, and
// disabled stores are removed. Unknown override ids are an error.
func Apply(stores []domain.Store, defaultMaxResults int, overrides map[string]Override) ([]domain.Store, error) {
	for id := range overrides {
		known := slices.ContainsFunc(stores, func(s domain.Store) bool { return string(s.ID) == id })
		if !known {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, id)
		}
	}

	result := make([]domain.Store, 0, len(stores))
	for _, store := range stores {
		override, ok := overrides[string(store.ID)]
		if ok && override.Disabled {
			continue
		}

		if ok {
			patch := domain.Store{
				MaxResults: override.MaxResults,
				Endpoint:   domain.Endpoint{BaseURL: override.BaseURL},
			}
			if err := mergo.Merge(&store, patch, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("apply override for %q: %w", store.ID, err)
			}
		}

		if err := mergo.Merge(&store, domain.Store{MaxResults: defaultMaxResults}); err != nil {
			return nil, fmt.Errorf("apply defaults for %q: %w", store.ID, err)
		}

		result = append(result, store)
	}

	return result, nil
}

// Load builds the directory from the built-in table and configuration
func Load(defaultMaxResults int, overrides map[string]Override) (*Directory, error) {
	stores, err := Apply(Builtin(), defaultMaxResults, overrides)
	if err != nil {
		return nil, err
	}
	return New(stores)
}
