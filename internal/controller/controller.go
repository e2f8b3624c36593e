// Package controller binds view events to the recipe service and pushes the
// resulting state back into the views.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/model"
	"github.com/hammamikhairi/forkify/internal/view"
)

// DefaultModalClose is how long the upload confirmation stays visible.
const DefaultModalClose = 2500 * time.Millisecond

// Deps are the controller's collaborators.
type Deps struct {
	Service    *model.Service
	Document   *dom.Document
	Loop       *dom.Loop
	Log        *logger.Logger
	ModalClose time.Duration
}

// Controller owns the views of one page. Handlers run on the event loop;
// network calls run on their own goroutines and post their completion back
// to the loop.
type Controller struct {
	ctx  context.Context
	svc  *model.Service
	doc  *dom.Document
	loop *dom.Loop
	log  *logger.Logger

	recipe     *view.RecipeView
	search     *view.SearchView
	results    *view.ResultsView
	pagination *view.PaginationView
	bookmarks  *view.BookmarksView
	shopping   *view.ShoppingListView
	upload     *view.AddRecipeView
	modal      *view.ErrorModal

	modalClose time.Duration

	// Only touched on the loop.
	cancelRecipe context.CancelFunc
	cancelSearch context.CancelFunc

	inflight sync.WaitGroup
}

// New builds the views over d.Document. ctx bounds every request the
// controller starts.
func New(ctx context.Context, d Deps) *Controller {
	if d.ModalClose <= 0 {
		d.ModalClose = DefaultModalClose
	}
	doc, log := d.Document, d.Log
	preview := view.NewPreviewView(doc, log)
	modal := view.NewErrorModal(doc)
	return &Controller{
		ctx:        ctx,
		svc:        d.Service,
		doc:        doc,
		loop:       d.Loop,
		log:        log,
		recipe:     view.NewRecipeView(doc, log),
		search:     view.NewSearchView(doc),
		results:    view.NewResultsView(doc, preview, log),
		pagination: view.NewPaginationView(doc, log),
		bookmarks:  view.NewBookmarksView(doc, preview, log),
		shopping:   view.NewShoppingListView(doc, log),
		upload:     view.NewAddRecipeView(doc, modal, log),
		modal:      modal,
		modalClose: d.ModalClose,
	}
}

// Init registers every handler. Call it once, on the loop, before the
// window's load event.
func (c *Controller) Init() {
	c.bookmarks.AddHandlerRender(c.controlBookmarks)
	c.shopping.AddHandlerRender(c.controlShoppingList)
	c.recipe.AddHandlerRender(c.controlRecipes)
	c.recipe.AddHandlerUpdateServings(c.controlServings)
	c.recipe.AddHandlerBookmark(c.controlAddBookmark)
	c.recipe.AddHandlerAddToShoppingList(c.controlAddToShoppingList)
	c.bookmarks.AddHandlerClear(c.controlClearBookmarks)
	c.search.AddHandlerSearch(c.controlSearchResults)
	c.pagination.AddHandlerClick(c.controlPagination)
	c.upload.AddHandlerUpload(c.controlAddRecipe)
	c.shopping.AddHandlerDelete(c.controlDeleteShoppingItem)
	c.shopping.AddHandlerClear(c.controlClearShoppingList)
	c.log.Debug("controller handlers registered")
}

// Wait blocks until every request started so far has posted its
// completion to the loop.
func (c *Controller) Wait() { c.inflight.Wait() }

// Service returns the service the controller drives.
func (c *Controller) Service() *model.Service { return c.svc }

// Document returns the page.
func (c *Controller) Document() *dom.Document { return c.doc }

// ErrorModal returns the page's error modal.
func (c *Controller) ErrorModal() *view.ErrorModal { return c.modal }

// ShoppingList returns the shopping list view.
func (c *Controller) ShoppingList() *view.ShoppingListView { return c.shopping }

// ── Handlers ─────────────────────────────────────────────────────

func (c *Controller) controlRecipes() {
	id := c.doc.Window().Hash()
	if id == "" {
		return
	}
	c.recipe.RenderSpinner()

	// Mark the selected row.
	if len(c.svc.Search().Results) > 0 {
		c.must(c.results.Update(c.svc.SearchResultsPage(0)))
	}
	c.must(c.bookmarks.Update(c.svc.Bookmarks()))

	c.async(&c.cancelRecipe, func(ctx context.Context) error {
		return c.svc.LoadRecipe(ctx, id)
	}, func(err error) {
		if superseded(err) {
			return
		}
		if err != nil {
			c.recipe.RenderError(userMessage(err))
			return
		}
		c.must(c.recipe.Render(c.svc.Recipe()))
		c.must(c.bookmarks.Update(c.svc.Bookmarks()))
	})
}

func (c *Controller) controlSearchResults() {
	query := strings.TrimSpace(c.search.Query())
	if query == "" {
		return
	}
	c.results.RenderSpinner()

	c.async(&c.cancelSearch, func(ctx context.Context) error {
		return c.svc.LoadSearchResults(ctx, query)
	}, func(err error) {
		if superseded(err) {
			return
		}
		if err != nil {
			c.results.RenderError(userMessage(err))
			return
		}
		c.must(c.results.Render(c.svc.SearchResultsPage(0)))
		c.must(c.pagination.Render(c.svc.Search()))
	})
}

func (c *Controller) controlPagination(page int) {
	c.must(c.results.Render(c.svc.SearchResultsPage(page)))
	c.must(c.pagination.Render(c.svc.Search()))
}

func (c *Controller) controlServings(servings int) {
	if err := c.svc.UpdateServings(servings); err != nil {
		c.log.Warn("servings: %v", err)
		return
	}
	c.must(c.recipe.Update(c.svc.Recipe()))
}

func (c *Controller) controlAddBookmark() {
	if err := c.svc.ToggleBookmark(); err != nil {
		c.report(err)
	}
	c.must(c.recipe.Update(c.svc.Recipe()))
	c.must(c.bookmarks.Render(c.svc.Bookmarks()))
}

func (c *Controller) controlBookmarks() {
	c.must(c.bookmarks.Render(c.svc.Bookmarks()))
}

func (c *Controller) controlClearBookmarks() {
	if err := c.svc.ClearBookmarks(); err != nil {
		c.report(err)
	}
	c.must(c.bookmarks.Update(c.svc.Bookmarks()))
	if r := c.svc.Recipe(); r != nil {
		c.must(c.recipe.Update(r))
	}
}

func (c *Controller) controlAddRecipe(form *domain.NewRecipe) {
	c.upload.RenderSpinner()

	c.async(nil, func(ctx context.Context) error {
		return c.svc.UploadRecipe(ctx, form)
	}, func(err error) {
		// A storage error means the upload went through but its bookmark
		// was not saved.
		if err != nil && !errors.Is(err, domain.ErrStorage) {
			c.upload.RenderError(userMessage(err))
			return
		}
		if err != nil {
			c.report(err)
		}

		r := c.svc.Recipe()
		c.must(c.recipe.Render(r))
		c.upload.RenderMessage("")
		c.must(c.bookmarks.Render(c.svc.Bookmarks()))
		c.doc.Window().PushState(r.ID)
		c.loop.SetTimeout(c.modalClose, c.upload.CloseWindow)
	})
}

func (c *Controller) controlShoppingList() {
	c.must(c.shopping.Render(c.svc.ShoppingList()))
}

func (c *Controller) controlAddToShoppingList() {
	if err := c.svc.AddToShoppingList(); err != nil {
		c.report(err)
		return
	}
	c.must(c.shopping.Render(c.svc.ShoppingList()))
	c.shopping.OpenWindow()
}

func (c *Controller) controlDeleteShoppingItem(id string) {
	if err := c.svc.DeleteShoppingListItem(id); err != nil {
		c.report(err)
	}
	c.must(c.shopping.Render(c.svc.ShoppingList()))
}

func (c *Controller) controlClearShoppingList() {
	if err := c.svc.ClearShoppingList(); err != nil {
		c.report(err)
	}
	c.must(c.shopping.Render(c.svc.ShoppingList()))
}

// ── Helpers ──────────────────────────────────────────────────────

// async runs fn off the loop and posts done back to it. A non-nil slot
// holds the cancel func of the previous request of the same kind, which is
// cancelled first.
func (c *Controller) async(slot *context.CancelFunc, fn func(context.Context) error, done func(error)) {
	if slot != nil && *slot != nil {
		(*slot)()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	if slot != nil {
		*slot = cancel
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		err := fn(ctx)
		c.loop.Post(func() {
			cancel()
			done(err)
		})
	}()
}

// report shows a failed synchronous operation in the error modal.
func (c *Controller) report(err error) {
	c.log.Error("%v", err)
	c.modal.Show(userMessage(err))
}

func (c *Controller) must(err error) {
	if err != nil {
		c.log.Error("rendering: %v", err)
	}
}

// superseded reports whether a newer request took over.
func superseded(err error) bool {
	return errors.Is(err, domain.ErrStale) || errors.Is(err, context.Canceled)
}

// userMessage turns an error into placeholder text. An empty result means
// the view's default message.
func userMessage(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Reason
	case errors.Is(err, domain.ErrNotFound):
		return ""
	case errors.Is(err, domain.ErrTimeout):
		return "The request took too long. Please check your connection and try again."
	case errors.Is(err, domain.ErrStorage):
		return "Your changes could not be saved. Please free up some storage and try again."
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s (%d)", apiErr.Message, apiErr.Status)
	}
	return err.Error()
}
