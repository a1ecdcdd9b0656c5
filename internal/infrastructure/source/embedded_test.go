package source

import (
	"context"
	"net/http"
	"testing"

	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractEmbeddedArray(t *testing.T) {
	tests := []struct {
		name   string
		script string
		marker string
		want   string
		ok     bool
	}{
		{
			name:   "quoted key",
			script: `window.__STATE__ = {"products":[{"a":1}],"x":2};`,
			marker: "products",
			want:   `[{"a":1}]`,
			ok:     true,
		},
		{
			name:   "unquoted key with nesting",
			script: `var data = {products: [1, [2, 3]], more: true};`,
			marker: "products",
			want:   `[1, [2, 3]]`,
			ok:     true,
		},
		{
			name:   "brackets inside strings",
			script: `x = {products: ["a]b", 'c[d'], y: 1}`,
			marker: "products",
			want:   `["a]b", 'c[d']`,
			ok:     true,
		},
		{
			name:   "escaped quotes",
			script: `{"products": ["say \"]\" now"]}`,
			marker: "products",
			want:   `["say \"]\" now"]`,
			ok:     true,
		},
		{
			name:   "marker at start of text",
			script: `products: [1]`,
			marker: "products",
			want:   `[1]`,
			ok:     true,
		},
		{
			name:   "longer key sharing a suffix",
			script: `{allproducts: [1]}`,
			marker: "products",
		},
		{
			name:   "marker is not an array",
			script: `{"products": {"a": 1}}`,
			marker: "products",
		},
		{
			name:   "unbalanced",
			script: `{products: [1, 2`,
			marker: "products",
		},
		{
			name:   "missing marker",
			script: `{items: [1]}`,
			marker: "products",
		},
		{
			name:   "empty marker",
			script: `{products: [1]}`,
			marker: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractEmbeddedArray(tt.script, tt.marker)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeArray(t *testing.T) {
	t.Run("strict json", func(t *testing.T) {
		items, err := decodeArray(`[{"name":"Tee"}]`)
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"name": "Tee"}}, items)
	})

	t.Run("javascript literal", func(t *testing.T) {
		items, err := decodeArray(`[{name: 'Tee', tags: ['a', 'b',],},]`)
		require.NoError(t, err)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "Tee", item["name"])
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := decodeArray(`[{name: ]`)
		assert.Error(t, err)
	})
}

func embeddedStoreFor(baseURL string) domain.Store {
	return domain.Store{
		ID:         "shein",
		Name:       "SHEIN",
		Tier:       domain.TierBespoke,
		Kind:       domain.KindEmbedded,
		MaxResults: 20,
		Endpoint: domain.Endpoint{
			BaseURL:    baseURL,
			SearchPath: "/pdsearch/{query}/",
			Marker:     "goods",
			Fields: domain.FieldMap{
				Title: domain.Field{{"goods_name"}},
				Price: domain.Field{{"salePrice.amountWithSymbol"}},
				Image: domain.Field{{"goods_img"}},
				Link:  domain.Field{{"goods_url"}},
			},
		},
	}
}

const embeddedPage = `<!doctype html>
<html>
<head>
<script src="/static/app.js"></script>
<script>window.analytics = {"goods": 1};</script>
<script>
var gbRawData = {results: {goods: [
  {goods_name: 'Ribbed [Knit] Top', salePrice: {amountWithSymbol: '$12.49'}, goods_img: '//img.example-cdn.com/top.jpg', goods_url: '/Ribbed-Knit-Top-p-1.html',},
  {goods_name: 'Wide Leg Jeans', salePrice: {amountWithSymbol: '$24.00'}, goods_img: '//img.example-cdn.com/jeans.jpg', goods_url: '/Wide-Leg-Jeans-p-2.html',},
  {goods_name: 'Mesh Cardigan', salePrice: {amountWithSymbol: '$9.99'}, goods_url: '/Mesh-Cardigan-p-3.html',},
],},};
</script>
</head>
<body><div id="app"></div></body>
</html>`

func TestEmbeddedAdapter_Search(t *testing.T) {
	var gotPath, gotAccept string
	server, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(embeddedPage))
	})

	products, err := NewEmbeddedAdapter(client, zap.NewNop()).Search(context.Background(), embeddedStoreFor(server.URL), "knit top")

	require.NoError(t, err)
	assert.Equal(t, "/pdsearch/knit top/", gotPath)
	assert.Equal(t, fetch.AcceptHTML, gotAccept)

	require.Len(t, products, 3)
	assert.Equal(t, "Ribbed [Knit] Top", products[0].Title)
	assert.Equal(t, "$12.49", products[0].Price)
	assert.Equal(t, "https://img.example-cdn.com/top.jpg", products[0].Image)
	assert.Equal(t, server.URL+"/Ribbed-Knit-Top-p-1.html", products[0].Link)
	assert.Equal(t, "Wide Leg Jeans", products[1].Title)
	assert.Equal(t, "Mesh Cardigan", products[2].Title)
	assert.Contains(t, products[2].Image, "data:image/svg+xml")
}

func TestEmbeddedAdapter_RespectsMaxResults(t *testing.T) {
	fetcher := &stubFetcher{body: embeddedPage}
	store := embeddedStoreFor("https://us.shein.com")
	store.MaxResults = 2

	products, err := NewEmbeddedAdapter(fetcher, zap.NewNop()).Search(context.Background(), store, "top")

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestEmbeddedAdapter_DefaultFields(t *testing.T) {
	fetcher := &stubFetcher{body: `<script>
	  window.__INITIAL_STATE__ = {"hits": [{"title": "Linen Blazer", "price": {"formattedValue": "$ 49.99"}, "image": "https://image.example-cdn.com/blazer.jpg", "url": "/productpage.1.html"}]};
	</script>`}
	store := embeddedStoreFor("https://www2.hm.com")
	store.Endpoint.Marker = "hits"
	store.Endpoint.Fields = domain.FieldMap{}

	products, err := NewEmbeddedAdapter(fetcher, zap.NewNop()).Search(context.Background(), store, "blazer")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Linen Blazer", products[0].Title)
	assert.Equal(t, "$49.99", products[0].Price)
	assert.Equal(t, "https://www2.hm.com/productpage.1.html", products[0].Link)
}

func TestEmbeddedAdapter_NoPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no scripts", "<html><body>Access denied</body></html>"},
		{"marker never holds an array", `<script>var goods = "none";</script>`},
		{"array does not decode", `<script>x = {goods: [{goods_name: ]}</script>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := NewEmbeddedAdapter(&stubFetcher{body: tt.body}, zap.NewNop()).
				Search(context.Background(), embeddedStoreFor("https://us.shein.com"), "top")

			require.NoError(t, err)
			assert.NotNil(t, products)
			assert.Empty(t, products)
		})
	}
}

func TestEmbeddedAdapter_CustomExtractor(t *testing.T) {
	var seenMarker string
	adapter := NewEmbeddedAdapter(&stubFetcher{body: `<script>SSR(goods)</script>`}, zap.NewNop())
	adapter.extract = func(scriptText, marker string) (string, bool) {
		seenMarker = marker
		return `[{"goods_name": "Puffer Vest", "goods_url": "/vest.html"}]`, true
	}

	products, err := adapter.Search(context.Background(), embeddedStoreFor("https://us.shein.com"), "vest")

	require.NoError(t, err)
	assert.Equal(t, "goods", seenMarker)
	require.Len(t, products, 1)
	assert.Equal(t, "Puffer Vest", products[0].Title)
	assert.Equal(t, domain.UnknownPrice, products[0].Price)
}

func TestEmbeddedAdapter_UpstreamError(t *testing.T) {
	_, err := NewEmbeddedAdapter(&stubFetcher{status: http.StatusNotFound}, zap.NewNop()).
		Search(context.Background(), embeddedStoreFor("https://us.shein.com"), "top")

	assert.ErrorIs(t, err, domain.ErrUpstreamStatus)
}

func TestMarkerPattern_CompiledOncePerMarker(t *testing.T) {
	first := markerPattern("searchResults")
	second := markerPattern("searchResults")
	other := markerPattern("hits")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)

	for i := 0; i < 3; i++ {
		got, ok := ExtractEmbeddedArray(`var s = {searchResults: [1, 2]};`, "searchResults")
		require.True(t, ok)
		assert.Equal(t, "[1, 2]", got)
	}
}
