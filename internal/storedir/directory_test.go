package storedir

import (
	"testing"

	"github.com/closetscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	stores := Builtin()

	require.Len(t, stores, 13)

	tiers := map[domain.Tier]int{}
	seen := map[domain.StoreID]bool{}
	for _, s := range stores {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		tiers[s.Tier]++

		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Endpoint.BaseURL)
		assert.NotEmpty(t, s.Endpoint.SearchPath)

		switch s.Kind {
		case domain.KindSuggest:
			assert.Equal(t, domain.TierSuggest, s.Tier)
		case domain.KindEmbedded:
			assert.NotEmpty(t, s.Endpoint.Marker, s.ID)
		case domain.KindDOM:
			assert.NotEmpty(t, s.Endpoint.Selectors.Cards, s.ID)
		}
	}

	assert.Equal(t, 8, tiers[domain.TierSuggest])
	assert.Equal(t, 5, tiers[domain.TierBespoke])
	for _, id := range []domain.StoreID{"allbirds", "asos", "hm", "zara", "shein", "uniqlo"} {
		assert.True(t, seen[id], "missing %s", id)
	}
}

func TestBuiltin_ReturnsFreshCopies(t *testing.T) {
	first := Builtin()
	first[0].Endpoint.Params["q"] = "mutated"

	second := Builtin()
	assert.NotContains(t, second[0].Endpoint.Params, "q")
}

func TestNew(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		dir, err := New([]domain.Store{
			{ID: "b", Name: "B", Endpoint: domain.Endpoint{BaseURL: "https://b.example.com"}},
			{ID: "a", Name: "A", Endpoint: domain.Endpoint{BaseURL: "https://a.example.com"}},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, dir.Len())
		all := dir.All()
		assert.Equal(t, domain.StoreID("b"), all[0].ID)
		assert.Equal(t, domain.StoreID("a"), all[1].ID)

		store, ok := dir.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, "A", store.Name)

		_, ok = dir.Lookup("zz")
		assert.False(t, ok)
	})

	tests := []struct {
		name   string
		stores []domain.Store
		errMsg string
	}{
		{
			name: "duplicate id",
			stores: []domain.Store{
				{ID: "a", Name: "A", Endpoint: domain.Endpoint{BaseURL: "https://a.example.com"}},
				{ID: "a", Name: "A2", Endpoint: domain.Endpoint{BaseURL: "https://a.example.com"}},
			},
			errMsg: "duplicate store id",
		},
		{
			name:   "missing name",
			stores: []domain.Store{{ID: "a", Endpoint: domain.Endpoint{BaseURL: "https://a.example.com"}}},
			errMsg: "id and name are required",
		},
		{
			name:   "missing base url",
			stores: []domain.Store{{ID: "a", Name: "A"}},
			errMsg: "no base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.stores)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestApply(t *testing.T) {
	base := []domain.Store{
		{ID: "kith", Name: "Kith", Endpoint: domain.Endpoint{BaseURL: "https://kith.com", SearchPath: "/search/suggest.json"}},
		{ID: "asos", Name: "ASOS", MaxResults: 5, Endpoint: domain.Endpoint{BaseURL: "https://www.asos.com"}},
		{ID: "zara", Name: "Zara", Endpoint: domain.Endpoint{BaseURL: "https://www.zara.com"}},
	}

	t.Run("defaults fill unset caps only", func(t *testing.T) {
		got, err := Apply(base, 20, nil)

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 20, got[0].MaxResults)
		assert.Equal(t, 5, got[1].MaxResults)
	})

	t.Run("overrides replace set fields", func(t *testing.T) {
		got, err := Apply(base, 20, map[string]Override{
			"kith": {BaseURL: "http://127.0.0.1:9999"},
			"asos": {MaxResults: 40},
		})

		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:9999", got[0].Endpoint.BaseURL)
		assert.Equal(t, "/search/suggest.json", got[0].Endpoint.SearchPath, "unset override fields keep the built-in value")
		assert.Equal(t, 20, got[0].MaxResults)
		assert.Equal(t, 40, got[1].MaxResults)
		assert.Equal(t, "https://www.asos.com", got[1].Endpoint.BaseURL)
	})

	t.Run("disabled stores are removed", func(t *testing.T) {
		got, err := Apply(base, 20, map[string]Override{"zara": {Disabled: true}})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, domain.StoreID("kith"), got[0].ID)
		assert.Equal(t, domain.StoreID("asos"), got[1].ID)
	})

	t.Run("unknown override id", func(t *testing.T) {
		_, err := Apply(base, 20, map[string]Override{"gap": {MaxResults: 3}})

		assert.ErrorIs(t, err, domain.ErrUnknownStore)
	})

	t.Run("does not modify the input", func(t *testing.T) {
		_, err := Apply(base, 20, map[string]Override{"kith": {BaseURL: "http://other"}})

		require.NoError(t, err)
		assert.Equal(t, "https://kith.com", base[0].Endpoint.BaseURL)
		assert.Zero(t, base[0].MaxResults)
	})
}

func TestLoad(t *testing.T) {
	dir, err := Load(20, map[string]Override{"bombas": {Disabled: true}})

	require.NoError(t, err)
	assert.Equal(t, 12, dir.Len())

	_, ok := dir.Lookup("bombas")
	assert.False(t, ok)

	kith, ok := dir.Lookup("kith")
	require.True(t, ok)
	assert.Equal(t, 20, kith.MaxResults)
	assert.Equal(t, "https://kith.com", kith.Endpoint.BaseURL)
}
