package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// AddRecipeView is the add-recipe modal and its form.
type AddRecipeView struct {
	doc    *dom.Document
	rec    *Reconciler[int] // payload: number of ingredient rows
	modal  *ErrorModal
	policy *bluemonday.Policy
	log    *logger.Logger
}

// NewAddRecipeView mounts on ".upload", renders a pristine form and wires
// the open, close and add-ingredient controls.
func NewAddRecipeView(doc *dom.Document, modal *ErrorModal, log *logger.Logger) *AddRecipeView {
	generate := func(rows int) (string, error) {
		return exec("upload", make([]struct{}, max(rows, 1)))
	}
	v := &AddRecipeView{
		doc: doc,
		rec: NewReconciler(doc.Find(".upload"), generate, Messages{
			Success: "Recipe was successfully uploaded :)",
		}, log),
		modal:  modal,
		policy: bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true),
		log:    log,
	}
	v.restoreForm()

	doc.AddEventListener(doc.Find(".nav__btn--add-recipe"), "click", func(*dom.Event) {
		v.restoreForm()
		v.ToggleWindow()
	})
	doc.AddEventListener(doc.Find(".btn--close-modal, .overlay"), "click", func(*dom.Event) { v.ToggleWindow() })
	doc.AddEventListener(v.rec.Mount(), "click", func(e *dom.Event) {
		if e.Target.Closest(".upload__btn--add-ingredient").Length() > 0 {
			v.AddIngredientRow()
		}
	})
	return v
}

// RenderSpinner replaces the form with a spinner during the upload.
func (v *AddRecipeView) RenderSpinner() { v.rec.RenderSpinner() }

// RenderError replaces the form with msg.
func (v *AddRecipeView) RenderError(msg string) { v.rec.RenderError(msg) }

// RenderMessage replaces the form with the success message.
func (v *AddRecipeView) RenderMessage(msg string) { v.rec.RenderMessage(msg) }

// AddIngredientRow appends an empty ingredient row. There is no limit.
func (v *AddRecipeView) AddIngredientRow() {
	row := mustExec("ingredient-row", nil)
	v.rec.Mount().Find(".upload__ingredient-list").AppendHtml(row)
}

// CloseWindow hides the modal. Unlike ToggleWindow it never reopens it.
func (v *AddRecipeView) CloseWindow() {
	v.doc.Find(".overlay, .add-recipe-window").AddClass("hidden")
}

// ToggleWindow opens the modal if it is closed and closes it otherwise.
func (v *AddRecipeView) ToggleWindow() {
	v.doc.Find(".overlay, .add-recipe-window").ToggleClass("hidden")
}

// IsOpen reports whether the modal is visible.
func (v *AddRecipeView) IsOpen() bool {
	return !v.doc.Find(".add-recipe-window").HasClass("hidden")
}

// AddHandlerUpload validates submissions and passes the valid ones to h.
// Invalid ones are reported in the error modal.
func (v *AddRecipeView) AddHandlerUpload(h func(*domain.NewRecipe)) {
	v.doc.AddEventListener(v.rec.Mount(), "submit", func(e *dom.Event) {
		e.PreventDefault()
		form, err := v.scrape()
		if err != nil {
			v.log.Warn("recipe form rejected: %v", err)
			v.modal.Show(formMessage(err))
			return
		}
		h(form)
	})
}

func (v *AddRecipeView) restoreForm() {
	if err := v.rec.Render(1); err != nil {
		v.log.Error("rendering recipe form: %v", err)
	}
}

// scrape reads the form. Fully empty ingredient rows are dropped.
func (v *AddRecipeView) scrape() (*domain.NewRecipe, error) {
	fields := make(map[string]string)
	for _, f := range dom.FormData(v.rec.Mount().Find(".upload__column").First()) {
		fields[f.Name] = v.clean(f.Value)
	}

	cookingTime, err := strconv.Atoi(fields["cookingTime"])
	if err != nil || cookingTime < 0 {
		return nil, &domain.ValidationError{Field: "cookingTime", Reason: "Prep time must be a whole number of minutes."}
	}
	servings, err := strconv.Atoi(fields["servings"])
	if err != nil || servings <= 0 {
		return nil, &domain.ValidationError{Field: "servings", Reason: "Servings must be a positive whole number.", Err: domain.ErrInvalidServings}
	}

	form := &domain.NewRecipe{
		Title:       fields["title"],
		SourceURL:   fields["sourceUrl"],
		Image:       fields["image"],
		Publisher:   fields["publisher"],
		CookingTime: cookingTime,
		Servings:    servings,
	}

	var rowErr error
	v.rec.Mount().Find(".upload__ingredient").EachWithBreak(func(i int, row *goquery.Selection) bool {
		in := domain.IngredientInput{
			Quantity:    v.clean(dom.Value(row.Find(`[name="quantity"]`))),
			Unit:        v.clean(dom.Value(row.Find(`[name="unit"]`))),
			Description: v.clean(dom.Value(row.Find(`[name="description"]`))),
		}
		if in.Quantity == "" && in.Unit == "" && in.Description == "" {
			return true
		}
		if rowErr = checkIngredient(i, in); rowErr != nil {
			return false
		}
		form.Ingredients = append(form.Ingredients, in)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(form.Ingredients) == 0 {
		return nil, &domain.ValidationError{Field: "ingredients", Reason: "Please add at least one ingredient.", Err: domain.ErrInvalidIngredient}
	}
	return form, nil
}

func checkIngredient(i int, in domain.IngredientInput) error {
	field := fmt.Sprintf("ingredients[%d]", i)
	q, err := domain.ParseQuantity(in.Quantity)
	if err != nil {
		return &domain.ValidationError{Field: field + ".quantity", Reason: fmt.Sprintf("%q is not a valid quantity.", in.Quantity), Err: domain.ErrInvalidIngredient}
	}
	if in.Unit != "" && (q == nil || *q <= 0) {
		return &domain.ValidationError{Field: field + ".unit", Reason: fmt.Sprintf("A unit (%s) needs a positive quantity.", in.Unit), Err: domain.ErrInvalidIngredient}
	}
	if in.Description == "" {
		return &domain.ValidationError{Field: field + ".description", Reason: "Wrong ingredient format! Please make sure to provide a description for each ingredient.", Err: domain.ErrInvalidIngredient}
	}
	return nil
}

// clean strips markup from user text and collapses whitespace.
func (v *AddRecipeView) clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(v.policy.Sanitize(s))), " ")
}

// formMessage is the user-facing text of a validation error.
func formMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}
