package view

import (
	"strconv"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// PaginationView shows prev/next controls for the search results.
type PaginationView struct {
	doc *dom.Document
	rec *Reconciler[domain.Search]
}

type paginationData struct {
	Page, Pages int
	Prev, Next  int // 0 when there is no such page
}

// NewPaginationView mounts on ".pagination".
func NewPaginationView(doc *dom.Document, log *logger.Logger) *PaginationView {
	return &PaginationView{
		doc: doc,
		rec: NewReconciler(doc.Find(".pagination"), generatePagination, Messages{}, log),
	}
}

func generatePagination(s domain.Search) (string, error) {
	pages := s.NumPages()
	// Nothing to page through, or a page past the end with no valid target.
	if pages <= 1 || s.Page > pages {
		return "", nil
	}
	d := paginationData{Page: s.Page, Pages: pages}
	if s.Page > 1 {
		d.Prev = s.Page - 1
	}
	if s.Page < pages {
		d.Next = s.Page + 1
	}
	return exec("pagination", d)
}

// Render replaces the controls for s.
func (v *PaginationView) Render(s domain.Search) error { return v.rec.Render(s) }

// AddHandlerClick passes the target page of a clicked control to h.
func (v *PaginationView) AddHandlerClick(h func(page int)) {
	v.doc.AddEventListener(v.rec.Mount(), "click", func(e *dom.Event) {
		btn := e.Target.Closest(".btn--inline")
		if btn.Length() == 0 {
			return
		}
		page, err := strconv.Atoi(btn.AttrOr("data-goto", ""))
		if err != nil {
			return
		}
		h(page)
	})
}
