package storedir

import "github.com/closetscout/backend/internal/domain"

// suggestEndpoint is the storefront-platform search-suggest endpoint shared by tier 1 stores
func suggestEndpoint(baseURL string) domain.Endpoint {
	return domain.Endpoint{
		BaseURL:    baseURL,
		SearchPath: "/search/suggest.json",
		QueryParam: "q",
		Params: map[string]string{
			"resources[type]":                        "product",
			"resources[options][unavailable_products]": "last",
		},
		LimitParam:  "resources[limit]",
		ResultsPath: "resources.results.products",
	}
}

func suggestStore(id, name, baseURL string) domain.Store {
	return domain.Store{
		ID:       domain.StoreID(id),
		Name:     name,
		Tier:     domain.TierSuggest,
		Kind:     domain.KindSuggest,
		Endpoint: suggestEndpoint(baseURL),
	}
}

// Builtin returns the thirteen stores the service knows about, in display order.
func Builtin() []domain.Store {
	return []domain.Store{
		suggestStore("allbirds", "Allbirds", "https://www.allbirds.com"),
		suggestStore("fashionnova", "Fashion Nova", "https://www.fashionnova.com"),
		suggestStore("kith", "Kith", "https://kith.com"),
		suggestStore("princesspolly", "Princess Polly", "https://us.princesspolly.com"),
		suggestStore("outdoorvoices", "Outdoor Voices", "https://www.outdoorvoices.com"),
		suggestStore("tentree", "tentree", "https://www.tentree.com"),
		suggestStore("taylorstitch", "Taylor Stitch", "https://www.taylorstitch.com"),
		suggestStore("bombas", "Bombas", "https://bombas.com"),
		{
			ID:   "asos",
			Name: "ASOS",
			Tier: domain.TierBespoke,
			Kind: domain.KindJSONAPI,
			Endpoint: domain.Endpoint{
				BaseURL:    "https://www.asos.com",
				SearchPath: "/api/product/search/v2/",
				QueryParam: "q",
				Params: map[string]string{
					"offset":     "0",
					"store":      "US",
					"lang":       "en-US",
					"currency":   "USD",
					"country":    "US",
					"sizeSchema": "US",
				},
				LimitParam:  "limit",
				ResultsPath: "products",
				Fields: domain.FieldMap{
					Title: domain.Field{{"name"}, {"brandName", "description"}},
					Price: domain.Field{{"price.current.text"}, {"price.current.value"}, {"price"}},
					Image: domain.Field{{"imageUrl"}, {"images.0.url"}},
					Link:  domain.Field{{"url"}},
				},
			},
		},
		{
			ID:   "hm",
			Name: "H&M",
			Tier: domain.TierBespoke,
			Kind: domain.KindEmbedded,
			Endpoint: domain.Endpoint{
				BaseURL:    "https://www2.hm.com",
				SearchPath: "/en_us/search-results.html",
				QueryParam: "q",
				Marker:     "hits",
				Fields: domain.FieldMap{
					Title: domain.Field{{"title"}, {"productName"}, {"brandName", "title"}},
					Price: domain.Field{{"regularPrice"}, {"price"}, {"prices.0.formattedPrice"}},
					Image: domain.Field{{"imageProductSrc"}, {"image"}, {"images.0.url"}},
					Link:  domain.Field{{"pdpUrl"}, {"url"}},
				},
			},
		},
		{
			ID:   "zara",
			Name: "Zara",
			Tier: domain.TierBespoke,
			Kind: domain.KindEmbedded,
			Endpoint: domain.Endpoint{
				BaseURL:    "https://www.zara.com",
				SearchPath: "/us/en/search",
				QueryParam: "searchTerm",
				Marker:     "productGroups",
				Fields: domain.FieldMap{
					Title: domain.Field{{"name"}, {"detail.name"}},
					Price: domain.Field{{"price"}, {"detail.price"}},
					Image: domain.Field{{"xmedia.0.url"}, {"image"}},
					Link:  domain.Field{{"seo.keyword"}, {"url"}},
				},
			},
		},
		{
			ID:   "shein",
			Name: "SHEIN",
			Tier: domain.TierBespoke,
			Kind: domain.KindEmbedded,
			Endpoint: domain.Endpoint{
				BaseURL:    "https://us.shein.com",
				SearchPath: "/pdsearch/{query}/",
				Marker:     "goods",
				Fields: domain.FieldMap{
					Title: domain.Field{{"goods_name"}, {"title"}},
					Price: domain.Field{{"salePrice.amountWithSymbol"}, {"retailPrice.amountWithSymbol"}, {"price"}},
					Image: domain.Field{{"goods_img"}, {"image"}},
					Link:  domain.Field{{"goods_url"}, {"url"}},
				},
			},
		},
		{
			ID:   "uniqlo",
			Name: "UNIQLO",
			Tier: domain.TierBespoke,
			Kind: domain.KindDOM,
			Endpoint: domain.Endpoint{
				BaseURL:    "https://www.uniqlo.com",
				SearchPath: "/us/en/search",
				QueryParam: "q",
				Selectors: domain.CardSelectors{
					Cards: []string{
						"[data-testid='productTile']",
						".fr-ec-product-tile",
						"article.product-tile",
						"li.product",
					},
					Title: domain.SelectorChain{
						{CSS: ".fr-ec-title"},
						{CSS: "[data-testid='productName']"},
						{CSS: "a", Attr: "title"},
						{CSS: "img", Attr: "alt"},
					},
					Price: domain.SelectorChain{
						{CSS: ".fr-ec-price-text"},
						{CSS: "[data-testid='price']"},
						{CSS: ".price"},
					},
					Image: domain.SelectorChain{
						{CSS: "img", Attr: "src"},
						{CSS: "img", Attr: "data-src"},
					},
					Link: domain.SelectorChain{
						{CSS: "a", Attr: "href"},
						{Attr: "href"},
					},
				},
			},
		},
	}
}
