package domain

import "time"

// Sentinel values written into a Product when normalization fails.
const (
	UnknownTitle = "Unknown Product"
	UnknownPrice = "See price"
	MissingLink  = "#"
)

// CandidateRecord is what a source adapter pulled out of one upstream item,
// before any normalization. Price is already stringified by the adapter.
type CandidateRecord struct {
	Title string
	Price string
	Image string
	Link  string
}

// Empty reports whether the record carries neither a title nor a link.
func (c CandidateRecord) Empty() bool {
	return c.Title == "" && c.Link == ""
}

// Product represents a normalized, display-ready search result
type Product struct {
	ID        string  `json:"id"`
	Store     StoreID `json:"store"`
	StoreName string  `json:"storeName"`
	Title     string  `json:"title"`
	Price     string  `json:"price"`
	Image     string  `json:"image"`
	Link      string  `json:"link"`
}

// StoreResult is the per-store outcome of one search
type StoreResult struct {
	ID      StoreID   `json:"id"`
	Name    string    `json:"name"`
	Results []Product `json:"results"`
	Error   *string   `json:"error"`
	Count   int       `json:"count"`
}

// SearchResponse is the multi-store envelope returned for one query
type SearchResponse struct {
	Query     string        `json:"query"`
	Category  string        `json:"category,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Stores    []StoreResult `json:"stores"`
}

// SearchRequest represents an inbound search request
type SearchRequest struct {
	Query    string   `json:"query" binding:"required"`
	Stores   []string `json:"stores" binding:"required,min=1"`
	Category string   `json:"category,omitempty"`
}
