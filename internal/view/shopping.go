package view

import (
	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// ShoppingListView shows the shopping list in its own window.
type ShoppingListView struct {
	doc    *dom.Document
	rec    *Reconciler[[]domain.ShoppingItem]
	window string
}

// NewShoppingListView mounts on ".shopping-list-content" and wires the
// window's open and close buttons.
func NewShoppingListView(doc *dom.Document, log *logger.Logger) *ShoppingListView {
	generate := func(items []domain.ShoppingItem) (string, error) {
		return exec("shopping", items)
	}
	v := &ShoppingListView{
		doc: doc,
		rec: NewReconciler(doc.Find(".shopping-list-content"), generate, Messages{
			Success: "Your shopping list is empty. Add the ingredients of a recipe to get started.",
		}, log),
		window: ".shopping-list-window",
	}
	doc.AddEventListener(doc.Find(".nav__btn--shopping-list"), "click", func(*dom.Event) { v.ToggleWindow() })
	doc.AddEventListener(doc.Find(".btn--close-shopping-list"), "click", func(*dom.Event) { v.CloseWindow() })
	return v
}

// Render lists items, or the empty-state message when there are none.
func (v *ShoppingListView) Render(items []domain.ShoppingItem) error {
	if len(items) == 0 {
		v.rec.RenderMessage("")
		return nil
	}
	return v.rec.Render(items)
}

// OpenWindow shows the shopping list window.
func (v *ShoppingListView) OpenWindow() { v.doc.Find(v.window).RemoveClass("hidden") }

// CloseWindow hides it.
func (v *ShoppingListView) CloseWindow() { v.doc.Find(v.window).AddClass("hidden") }

// ToggleWindow flips between open and closed.
func (v *ShoppingListView) ToggleWindow() { v.doc.Find(v.window).ToggleClass("hidden") }

// IsOpen reports whether the window is visible.
func (v *ShoppingListView) IsOpen() bool { return !v.doc.Find(v.window).HasClass("hidden") }

// AddHandlerRender runs h on page load.
func (v *ShoppingListView) AddHandlerRender(h func()) {
	v.doc.Window().AddEventListener("load", func(*dom.Event) { h() })
}

// AddHandlerDelete passes the id of a clicked item's delete control to h.
func (v *ShoppingListView) AddHandlerDelete(h func(id string)) {
	v.doc.AddEventListener(v.rec.Mount(), "click", func(e *dom.Event) {
		btn := e.Target.Closest(".shopping-list__delete")
		if id := btn.AttrOr("data-id", ""); id != "" {
			h(id)
		}
	})
}

// AddHandlerClear runs h when the clear control is clicked.
func (v *ShoppingListView) AddHandlerClear(h func()) {
	v.doc.AddEventListener(v.doc.Find(".btn--clear-shopping-list"), "click", func(*dom.Event) { h() })
}
