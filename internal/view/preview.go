package view

import (
	"strings"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// PreviewView generates one result or bookmark row. It has no mount point
// of its own: list views compose its markup.
type PreviewView struct {
	rec *Reconciler[domain.Preview]
}

type previewData struct {
	domain.Preview
	Active bool
}

// NewPreviewView marks the row whose id is the current location hash as
// active.
func NewPreviewView(doc *dom.Document, log *logger.Logger) *PreviewView {
	generate := func(p domain.Preview) (string, error) {
		return exec("preview", previewData{Preview: p, Active: p.ID == doc.Window().Hash()})
	}
	return &PreviewView{rec: NewReconciler(nil, generate, Messages{}, log)}
}

// Markup returns the rows for previews, concatenated.
func (v *PreviewView) Markup(previews []domain.Preview) (string, error) {
	var sb strings.Builder
	for _, p := range previews {
		m, err := v.rec.Markup(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(m)
	}
	return sb.String(), nil
}

// ResultsView lists the current page of search results.
type ResultsView struct {
	rec *Reconciler[[]domain.Preview]
}

// NewResultsView mounts on ".results".
func NewResultsView(doc *dom.Document, preview *PreviewView, log *logger.Logger) *ResultsView {
	return &ResultsView{
		rec: NewReconciler(doc.Find(".results"), preview.Markup, Messages{
			Error: "No recipes found for your query! Please try again ;)",
		}, log),
	}
}

// Render replaces the list with one page of results. An empty page shows
// the "no recipes found" message.
func (v *ResultsView) Render(p []domain.Preview) error { return v.rec.Render(p) }

// Update patches the list in place, so only the active marker moves.
func (v *ResultsView) Update(p []domain.Preview) error { return v.rec.Update(p) }

// RenderSpinner shows the loading spinner while a search runs.
func (v *ResultsView) RenderSpinner() { v.rec.RenderSpinner() }

// RenderError shows msg, or the default message when msg is empty.
func (v *ResultsView) RenderError(msg string) { v.rec.RenderError(msg) }

// BookmarksView lists the bookmarked recipes.
type BookmarksView struct {
	doc *dom.Document
	rec *Reconciler[[]domain.Recipe]
}

// NewBookmarksView mounts on ".bookmarks__list".
func NewBookmarksView(doc *dom.Document, preview *PreviewView, log *logger.Logger) *BookmarksView {
	generate := func(rs []domain.Recipe) (string, error) {
		previews := make([]domain.Preview, len(rs))
		for i := range rs {
			previews[i] = rs[i].Preview()
		}
		return preview.Markup(previews)
	}
	return &BookmarksView{
		doc: doc,
		rec: NewReconciler(doc.Find(".bookmarks__list"), generate, Messages{
			Error: "No bookmarks yet. Find a nice recipe and bookmark it ;)",
		}, log),
	}
}

// Render replaces the bookmark list. No bookmarks shows the empty message.
func (v *BookmarksView) Render(rs []domain.Recipe) error { return v.rec.Render(rs) }

// Update patches the bookmark list in place.
func (v *BookmarksView) Update(rs []domain.Recipe) error { return v.rec.Update(rs) }

// AddHandlerRender runs h on page load.
func (v *BookmarksView) AddHandlerRender(h func()) {
	v.doc.Window().AddEventListener("load", func(*dom.Event) { h() })
}

// AddHandlerClear runs h when the clear control is clicked.
func (v *BookmarksView) AddHandlerClear(h func()) {
	v.doc.AddEventListener(v.doc.Find(".btn--clear-bookmarks"), "click", func(*dom.Event) { h() })
}
