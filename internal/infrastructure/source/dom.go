package source

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/closetscout/backend/internal/domain"
	"github.com/closetscout/backend/internal/infrastructure/fetch"
	"github.com/closetscout/backend/internal/normalizer"
	"go.uber.org/zap"
)

// DOMAdapter scrapes product cards out of a server-rendered results page.
type DOMAdapter struct {
	fetcher domain.Fetcher
	logger  *zap.Logger
}

// NewDOMAdapter creates a new DOM-scraping adapter
func NewDOMAdapter(fetcher domain.Fetcher, logger *zap.Logger) *DOMAdapter {
	return &DOMAdapter{fetcher: fetcher, logger: logger}
}

// Search implements domain.SourceAdapter
func (a *DOMAdapter) Search(ctx context.Context, store domain.Store, query string) ([]domain.Product, error) {
	body, err := fetchSearchPage(ctx, a.fetcher, store, query, fetch.AcceptHTML)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		a.logger.Debug("search page is not parseable HTML", zap.String("store", string(store.ID)), zap.Error(err))
		return []domain.Product{}, nil
	}

	selectors := store.Endpoint.Selectors
	cards := firstMatching(doc, selectors.Cards)
	if cards == nil {
		a.logger.Debug("no product card selector matched", zap.String("store", string(store.ID)))
		return []domain.Product{}, nil
	}

	base := store.Endpoint.BaseURL
	records := make([]domain.CandidateRecord, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		records = append(records, domain.CandidateRecord{
			Title: selectValue(card, selectors.Title),
			Price: selectValue(card, selectors.Price),
			Image: absoluteImageURL(base, selectValue(card, selectors.Image)),
			Link:  absoluteURL(base, selectValue(card, selectors.Link)),
		})
	})

	return normalizer.BuildProducts(records, store), nil
}

// firstMatching returns the matches of the first selector that finds any
func firstMatching(doc *goquery.Document, candidates []string) *goquery.Selection {
	for _, css := range candidates {
		if sel := doc.Find(css); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// selectValue tries each selector inside the card until one yields a value.
// An empty CSS addresses the card itself.
func selectValue(card *goquery.Selection, chain domain.SelectorChain) string {
	for _, selector := range chain {
		node := card
		if selector.CSS != "" {
			node = card.Find(selector.CSS).First()
		}
		if node.Length() == 0 {
			continue
		}

		var value string
		if selector.Attr == "" {
			value = node.Text()
		} else {
			value, _ = node.Attr(selector.Attr)
		}

		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
