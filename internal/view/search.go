package view

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/hammamikhairi/forkify/internal/dom"
)

// SearchView is the search form in the header.
type SearchView struct {
	doc  *dom.Document
	form *goquery.Selection
}

// NewSearchView mounts on the ".search" form.
func NewSearchView(doc *dom.Document) *SearchView {
	return &SearchView{doc: doc, form: doc.Find(".search")}
}

// Query returns the typed query and clears the field.
func (v *SearchView) Query() string {
	field := v.form.Find(".search__field")
	q := dom.Value(field)
	dom.SetValue(field, "")
	return q
}

// AddHandlerSearch runs h when the form is submitted.
func (v *SearchView) AddHandlerSearch(h func()) {
	v.doc.AddEventListener(v.form, "submit", func(e *dom.Event) {
		e.PreventDefault()
		h()
	})
}
