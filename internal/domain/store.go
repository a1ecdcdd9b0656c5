package domain

// StoreID identifies one upstream retailer.
type StoreID string

// Tier classifies a store by integration style.
type Tier int

const (
	// TierSuggest stores expose a storefront-platform search-suggest JSON endpoint.
	TierSuggest Tier = 1
	// TierBespoke stores need a retailer-specific adapter.
	TierBespoke Tier = 2
)

// AdapterKind selects the adapter implementation used for a store.
type AdapterKind string

const (
	KindSuggest  AdapterKind = "suggest"
	KindJSONAPI  AdapterKind = "jsonapi"
	KindEmbedded AdapterKind = "embedded"
	KindDOM      AdapterKind = "dom"
)

// Accessor reads one or more dotted JSON paths from an item. When several
// paths are given their non-empty values are joined with a single space.
type Accessor []string

// Field is an ordered list of accessor attempts; the first non-empty value wins.
type Field []Accessor

// FieldMap holds the fallback chain for every candidate attribute.
type FieldMap struct {
	Title Field
	Price Field
	Image Field
	Link  Field
}

// Selector addresses a node inside an HTML product card. An empty Attr means
// the node's text content.
type Selector struct {
	CSS  string
	Attr string
}

// SelectorChain is tried in order until one selector yields a non-empty value.
type SelectorChain []Selector

// CardSelectors configures DOM scraping for one store.
type CardSelectors struct {
	// Cards is a prioritized list of product container selectors; the first
	// one with matches is used exclusively.
	Cards []string
	Title SelectorChain
	Price SelectorChain
	Image SelectorChain
	Link  SelectorChain
}

// Endpoint describes how to reach and read one store's search results.
type Endpoint struct {
	BaseURL    string
	SearchPath string
	QueryParam string
	// Params are sent with every search request.
	Params map[string]string
	// LimitParam, when set, carries the result-count cap.
	LimitParam string
	// ResultsPath locates the product array inside a JSON response.
	ResultsPath string
	// Marker is the key of the embedded product array inside a script block.
	Marker    string
	Fields    FieldMap
	Selectors CardSelectors
}

// Store is one entry of the store directory.
type Store struct {
	ID         StoreID
	Name       string
	Tier       Tier
	Kind       AdapterKind
	MaxResults int
	Endpoint   Endpoint
}
