package view

import (
	"strconv"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// RecipeView shows the current recipe.
type RecipeView struct {
	doc *dom.Document
	rec *Reconciler[*domain.Recipe]
}

// NewRecipeView mounts on ".recipe".
func NewRecipeView(doc *dom.Document, log *logger.Logger) *RecipeView {
	return &RecipeView{
		doc: doc,
		rec: NewReconciler(doc.Find(".recipe"), generateRecipe, Messages{
			Error: "We could not find that recipe. Please try another one!",
		}, log),
	}
}

func generateRecipe(r *domain.Recipe) (string, error) {
	return exec("recipe", r)
}

// Render replaces the recipe panel with r.
func (v *RecipeView) Render(r *domain.Recipe) error { return v.rec.Render(r) }

// Update patches the panel after a servings or bookmark change.
func (v *RecipeView) Update(r *domain.Recipe) error { return v.rec.Update(r) }

// RenderSpinner shows the spinner while a recipe loads.
func (v *RecipeView) RenderSpinner() { v.rec.RenderSpinner() }

// RenderError shows msg, or the default message when msg is empty.
func (v *RecipeView) RenderError(msg string) { v.rec.RenderError(msg) }

// AddHandlerRender runs h on page load and on every hash change.
func (v *RecipeView) AddHandlerRender(h func()) {
	for _, typ := range []string{"hashchange", "load"} {
		v.doc.Window().AddEventListener(typ, func(*dom.Event) { h() })
	}
}

// AddHandlerUpdateServings passes the target servings of a clicked
// servings button to h, unless it would drop below 1.
func (v *RecipeView) AddHandlerUpdateServings(h func(servings int)) {
	v.doc.AddEventListener(v.rec.Mount(), "click", func(e *dom.Event) {
		btn := e.Target.Closest(".btn--update-servings")
		if btn.Length() == 0 {
			return
		}
		to, err := strconv.Atoi(btn.AttrOr("data-update-to", ""))
		if err != nil || to <= 0 {
			return
		}
		h(to)
	})
}

// AddHandlerBookmark runs h when the bookmark button is clicked.
func (v *RecipeView) AddHandlerBookmark(h func()) {
	v.onClick(".btn--bookmark", h)
}

// AddHandlerAddToShoppingList runs h when the add-to-list button is clicked.
func (v *RecipeView) AddHandlerAddToShoppingList(h func()) {
	v.onClick(".recipe__btn--add-to-shopping-list", h)
}

func (v *RecipeView) onClick(selector string, h func()) {
	v.doc.AddEventListener(v.rec.Mount(), "click", func(e *dom.Event) {
		if e.Target.Closest(selector).Length() > 0 {
			h()
		}
	})
}
