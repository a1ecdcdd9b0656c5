package cmd

import (
	"fmt"
	"io"

	"github.com/closetscout/backend/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
)

const minTitleWidth = 8

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// fitWidth cuts s to at most width terminal cells
func fitWidth(s string, width int) string {
	if width < minTitleWidth {
		width = minTitleWidth
	}
	return runewidth.Truncate(s, width, "...")
}

func renderResults(w io.Writer, resp *domain.SearchResponse, width int) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("%q", resp.Query))
	t.AppendHeader(table.Row{"Store", "Title", "Price", "Link"})

	total := 0
	for _, store := range resp.Stores {
		if store.Error != nil {
			t.AppendRow(table.Row{store.Name, "error: " + fitWidth(*store.Error, width), "", ""})
			continue
		}
		if store.Count == 0 {
			t.AppendRow(table.Row{store.Name, "no results", "", ""})
			continue
		}
		for _, p := range store.Results {
			t.AppendRow(table.Row{store.Name, fitWidth(p.Title, width), p.Price, p.Link})
		}
		total += store.Count
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d results", total), "", ""})
	t.Render()
}

func renderStores(w io.Writer, stores []domain.Store) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Tier", "Kind", "Base URL"})
	for _, s := range stores {
		t.AppendRow(table.Row{s.ID, s.Name, s.Tier, s.Kind, s.Endpoint.BaseURL})
	}
	t.Render()
}
