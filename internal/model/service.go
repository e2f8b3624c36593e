package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Option configures the service.
type Option func(*Service)

// WithResultsPerPage sets the search page size.
func WithResultsPerPage(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.state.Search.ResultsPerPage = n
		}
	}
}

// WithIDGenerator overrides how shopping item ids are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// Service owns the application state and orchestrates the recipe API and
// persistence around it. It depends only on interfaces and is fully
// testable with fakes.
//
// Network operations run without holding the lock. A response that arrives
// after a newer request of the same kind was started is discarded with
// domain.ErrStale.
type Service struct {
	mu      sync.Mutex
	state   *State
	api     domain.RecipeAPI
	persist *Persistence
	log     *logger.Logger
	newID   func() string

	recipeGen uint64
	searchGen uint64
}

// New creates the service and loads the persisted bookmarks and shopping
// list from store.
func New(api domain.RecipeAPI, store domain.KeyValueStore, log *logger.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		state:   NewState(DefaultResultsPerPage),
		api:     api,
		persist: NewPersistence(store),
		log:     log,
		newID:   generateID,
	}
	for _, opt := range opts {
		opt(s)
	}

	bookmarks, list, err := s.persist.Load()
	if err != nil {
		return nil, fmt.Errorf("loading persisted state: %w", err)
	}
	s.state.Bookmarks = bookmarks
	s.state.ShoppingList = list
	s.log.Debug("restored %d bookmarks and %d shopping items", len(bookmarks), len(list))
	return s, nil
}

// ── Reads ────────────────────────────────────────────────────────

// Recipe returns a copy of the current recipe, or nil before the first load.
func (s *Service) Recipe() *domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Recipe.Clone()
}

// Search returns a copy of the search state.
func (s *Service) Search() domain.Search {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.Search
	out.Results = slices.Clone(out.Results)
	return out
}

// Bookmarks returns copies of the bookmarked recipes in insertion order.
func (s *Service) Bookmarks() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Recipe, 0, len(s.state.Bookmarks))
	for i := range s.state.Bookmarks {
		b := s.state.Bookmarks[i].Clone()
		b.Bookmarked = true
		out = append(out, *b)
	}
	return out
}

// IsBookmarked reports whether id is bookmarked.
func (s *Service) IsBookmarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HasBookmark(id)
}

// ShoppingList returns a copy of the shopping list.
func (s *Service) ShoppingList() []domain.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.state.ShoppingList)
	for i := range out {
		out[i].Ingredient = domain.CloneIngredients([]domain.Ingredient{out[i].Ingredient})[0]
	}
	return out
}

// ── Network operations ───────────────────────────────────────────

// LoadRecipe fetches a recipe and makes it current. The state is only
// changed on success.
func (s *Service) LoadRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	s.recipeGen++
	gen := s.recipeGen
	s.mu.Unlock()

	r, err := s.api.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A superseded request is discarded whether it succeeded or not.
	if gen != s.recipeGen {
		s.log.Debug("discarding stale recipe %s (request %d, latest %d)", id, gen, s.recipeGen)
		return domain.ErrStale
	}
	if err != nil {
		s.log.Error("loading recipe %s: %v", id, err)
		return fmt.Errorf("loading recipe %s: %w", id, err)
	}
	s.state.Recipe = r
	s.state.syncBookmarked()
	s.log.Info("loaded recipe %q (%d servings)", r.Title, r.Servings)
	return nil
}

// LoadSearchResults runs a search and resets the page to 1. Blank queries
// fail with domain.ErrEmptyQuery without any I/O.
func (s *Service) LoadSearchResults(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ErrEmptyQuery
	}

	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.mu.Unlock()

	results, err := s.api.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.searchGen {
		s.log.Debug("discarding stale search %q", query)
		return domain.ErrStale
	}
	if err != nil {
		s.log.Error("searching %q: %v", query, err)
		return fmt.Errorf("searching %q: %w", query, err)
	}
	s.state.Search.Query = query
	s.state.Search.Results = results
	s.state.Search.Page = 1
	s.log.Info("search %q: %d results", query, len(results))
	return nil
}

// UploadRecipe validates the form, posts it and, on success, makes the
// server's copy the current recipe and bookmarks it.
func (s *Service) UploadRecipe(ctx context.Context, form *domain.NewRecipe) error {
	upload, err := BuildUpload(form)
	if err != nil {
		s.log.Warn("rejected recipe upload: %v", err)
		return err
	}

	r, err := s.api.Upload(ctx, upload)
	if err != nil {
		s.log.Error("uploading recipe %q: %v", form.Title, err)
		return fmt.Errorf("uploading recipe: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Any load still in flight is older than this recipe.
	s.recipeGen++
	r.Bookmarked = false
	s.state.Recipe = r
	if err := s.addBookmarkLocked(r); err != nil {
		return fmt.Errorf("bookmarking uploaded recipe: %w", err)
	}
	s.log.Info("uploaded recipe %q as %s", r.Title, r.ID)
	return nil
}

// ── Pure operations ──────────────────────────────────────────────

// SearchResultsPage sets the current page and returns its results. page <= 0
// means the current page.
func (s *Service) SearchResultsPage(page int) []domain.Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SearchResultsPage(page)
}

// UpdateServings rescales the current recipe.
func (s *Service) UpdateServings(servings int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.UpdateServings(servings); err != nil {
		return fmt.Errorf("updating servings to %d: %w", servings, err)
	}
	s.log.Debug("servings updated to %d", servings)
	return nil
}

// AddBookmark bookmarks r. Already bookmarked ids are not added twice.
func (s *Service) AddBookmark(r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBookmarkLocked(r)
}

// DeleteBookmark removes the bookmark with id. Unknown ids are a no-op.
func (s *Service) DeleteBookmark(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteBookmarkLocked(id)
}

// ToggleBookmark bookmarks the current recipe, or removes its bookmark if
// it already has one.
func (s *Service) ToggleBookmark() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Recipe == nil {
		return domain.ErrNoRecipe
	}
	if s.state.Recipe.Bookmarked {
		return s.deleteBookmarkLocked(s.state.Recipe.ID)
	}
	return s.addBookmarkLocked(s.state.Recipe)
}

// ClearBookmarks removes every bookmark and the persisted entry, and
// unflags the current recipe.
func (s *Service) ClearBookmarks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.bookmarkSnapshot()
	s.state.ClearBookmarks()
	if err := s.persist.ClearBookmarks(); err != nil {
		s.restoreBookmarks(snap)
		s.log.Error("clearing bookmarks: %v", err)
		return err
	}
	s.log.Info("bookmarks cleared")
	return nil
}

// AddToShoppingList copies the current recipe's ingredients into the
// shopping list. No recipe or no ingredients is a no-op.
func (s *Service) AddToShoppingList() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.ShoppingList
	n := s.state.AddToShoppingList(s.newID)
	if n == 0 {
		return nil
	}
	if err := s.persist.SaveShoppingList(s.state.ShoppingList); err != nil {
		s.state.ShoppingList = prev
		s.log.Error("saving shopping list: %v", err)
		return err
	}
	s.log.Info("added %d items to the shopping list", n)
	return nil
}

// DeleteShoppingListItem removes one item. Unknown ids are a no-op.
func (s *Service) DeleteShoppingListItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.ShoppingList
	if !s.state.DeleteShoppingListItem(id) {
		return nil
	}
	if err := s.persist.SaveShoppingList(s.state.ShoppingList); err != nil {
		s.state.ShoppingList = prev
		s.log.Error("saving shopping list: %v", err)
		return err
	}
	return nil
}

// ClearShoppingList empties the list and removes the persisted entry.
func (s *Service) ClearShoppingList() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.ShoppingList
	s.state.ShoppingList = nil
	if err := s.persist.ClearShoppingList(); err != nil {
		s.state.ShoppingList = prev
		return err
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────

type bookmarkSnap struct {
	list    []domain.Recipe
	flagged bool
}

func (s *Service) bookmarkSnapshot() bookmarkSnap {
	snap := bookmarkSnap{list: slices.Clone(s.state.Bookmarks)}
	if s.state.Recipe != nil {
		snap.flagged = s.state.Recipe.Bookmarked
	}
	return snap
}

func (s *Service) restoreBookmarks(snap bookmarkSnap) {
	s.state.Bookmarks = snap.list
	if s.state.Recipe != nil {
		s.state.Recipe.Bookmarked = snap.flagged
	}
}

func (s *Service) addBookmarkLocked(r *domain.Recipe) error {
	snap := s.bookmarkSnapshot()
	if !s.state.AddBookmark(r) {
		return nil
	}
	if err := s.persist.SaveBookmarks(s.state.Bookmarks); err != nil {
		s.restoreBookmarks(snap)
		s.log.Error("saving bookmarks: %v", err)
		return err
	}
	s.log.Debug("bookmarked %s", r.ID)
	return nil
}

func (s *Service) deleteBookmarkLocked(id string) error {
	snap := s.bookmarkSnapshot()
	if !s.state.DeleteBookmark(id) {
		return nil
	}
	if err := s.persist.SaveBookmarks(s.state.Bookmarks); err != nil {
		s.restoreBookmarks(snap)
		s.log.Error("saving bookmarks: %v", err)
		return err
	}
	s.log.Debug("removed bookmark %s", id)
	return nil
}

// BuildUpload validates a submitted form and converts it to the upload
// payload: quantities become numbers (empty means unspecified) and units
// default to "".
func BuildUpload(form *domain.NewRecipe) (*domain.Upload, error) {
	if form == nil {
		return nil, &domain.ValidationError{Reason: "no recipe submitted"}
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if form.Servings <= 0 {
		return nil, &domain.ValidationError{Field: "servings", Reason: "must be at least 1", Err: domain.ErrInvalidServings}
	}
	if form.CookingTime < 0 {
		return nil, &domain.ValidationError{Field: "cookingTime", Reason: "cannot be negative"}
	}
	if len(form.Ingredients) == 0 {
		return nil, &domain.ValidationError{Field: "ingredients", Reason: "add at least one ingredient", Err: domain.ErrInvalidIngredient}
	}

	up := &domain.Upload{
		Title:       strings.TrimSpace(form.Title),
		SourceURL:   strings.TrimSpace(form.SourceURL),
		Image:       strings.TrimSpace(form.Image),
		Publisher:   strings.TrimSpace(form.Publisher),
		CookingTime: form.CookingTime,
		Servings:    form.Servings,
	}
	for i, in := range form.Ingredients {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("ingredients[%d].description", i),
				Reason: "Wrong ingredient format! Please make sure to provide a description for each ingredient.",
				Err:    domain.ErrInvalidIngredient,
			}
		}
		qty, err := domain.ParseQuantity(in.Quantity)
		if err != nil {
			return nil, &domain.ValidationError{
				Field:  fmt.Sprintf("ingredients[%d].quantity", i),
				Reason: err.Error(),
				Err:    domain.ErrInvalidIngredient,
			}
		}
		up.Ingredients = append(up.Ingredients, domain.Ingredient{
			Quantity:    qty,
			Unit:        strings.TrimSpace(in.Unit),
			Description: desc,
		})
	}
	return up, nil
}
