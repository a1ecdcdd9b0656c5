package normalizer

import (
	"strconv"
	"strings"

	"github.com/closetscout/backend/internal/domain"
	"github.com/google/uuid"
)

// productNamespace scopes name-based product ids
var productNamespace = uuid.MustParse("6f1c2a8e-4b0d-4c53-9d6e-3a9b7c1e5f20")

// productID derives a stable id from the store and link so the same listing
// keeps its id across searches. occurrence counts earlier products in the same
// result list sharing the link; it salts the hash so variants stay distinct.
// Records without a link get a random id.
func productID(storeID domain.StoreID, link string, occurrence int) string {
	if link == domain.MissingLink {
		return uuid.NewString()
	}
	name := string(storeID) + "\x00" + link
	if occurrence > 0 {
		name += "\x00" + strconv.Itoa(occurrence)
	}
	return uuid.NewSHA1(productNamespace, []byte(name)).String()
}

// FormatProduct normalizes a candidate record into a Product.
// Returns false when the record has neither a title nor a link.
func FormatProduct(record domain.CandidateRecord, storeName string, storeID domain.StoreID) (domain.Product, bool) {
	record.Title = strings.TrimSpace(record.Title)
	record.Link = strings.TrimSpace(record.Link)
	if record.Empty() {
		return domain.Product{}, false
	}

	price, ok := NormalizePrice(record.Price)
	if !ok {
		price = strings.TrimSpace(record.Price)
		if price == "" {
			price = domain.UnknownPrice
		}
	}

	image, ok := NormalizeImageURL(record.Image)
	if !ok {
		image = PlaceholderImage
	}

	link := record.Link
	if link == "" {
		link = domain.MissingLink
	}

	return domain.Product{
		ID:        productID(storeID, link, 0),
		Store:     storeID,
		StoreName: storeName,
		Title:     NormalizeTitle(record.Title),
		Price:     price,
		Image:     image,
		Link:      link,
	}, true
}

// IsValid reports whether a formatted product is good enough to show.
func IsValid(p domain.Product) bool {
	return p.Title != domain.UnknownTitle && p.Link != domain.MissingLink
}

// FilterValid drops products whose title or link fell back to a sentinel.
func FilterValid(products []domain.Product) []domain.Product {
	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if IsValid(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// BuildProducts formats and filters candidates for a store, keeping upstream
// order and at most store.MaxResults products (no cap when MaxResults <= 0).
// Ids are unique within the returned list.
func BuildProducts(records []domain.CandidateRecord, store domain.Store) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, record := range records {
		product, ok := FormatProduct(record, store.Name, store.ID)
		if !ok || !IsValid(product) {
			continue
		}
		if n := seen[product.Link]; n > 0 {
			product.ID = productID(store.ID, product.Link, n)
		}
		seen[product.Link]++
		products = append(products, product)
		if store.MaxResults > 0 && len(products) == store.MaxResults {
			break
		}
	}
	return products
}
