// Package model holds the application state and the recipe service that
// mutates it.
package model

import (
	"slices"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// DefaultResultsPerPage is the page size used when none is configured.
const DefaultResultsPerPage = 10

// State is the single application state object. Its methods are the pure
// state transitions: none of them perform I/O.
type State struct {
	Recipe       *domain.Recipe // nil until the first successful load
	Search       domain.Search
	Bookmarks    []domain.Recipe
	ShoppingList []domain.ShoppingItem
}

// NewState returns an empty state with the given page size.
func NewState(resultsPerPage int) *State {
	if resultsPerPage <= 0 {
		resultsPerPage = DefaultResultsPerPage
	}
	return &State{
		Search: domain.Search{ResultsPerPage: resultsPerPage, Page: 1},
	}
}

// SearchResultsPage sets the current page and returns its slice of the
// results. page <= 0 means the current page. Pages past the end yield an
// empty slice.
func (s *State) SearchResultsPage(page int) []domain.Preview {
	if page <= 0 {
		page = s.Search.Page
	}
	s.Search.Page = page

	per := s.Search.ResultsPerPage
	start := (page - 1) * per
	end := min(page*per, len(s.Search.Results))
	if start >= len(s.Search.Results) {
		return []domain.Preview{}
	}
	return slices.Clone(s.Search.Results[start:end])
}

// UpdateServings rescales every ingredient linearly and stores the new
// servings count.
func (s *State) UpdateServings(servings int) error {
	if servings <= 0 {
		return domain.ErrInvalidServings
	}
	if s.Recipe == nil {
		return domain.ErrNoRecipe
	}
	if s.Recipe.Servings <= 0 {
		return domain.ErrInvalidServings
	}

	for i := range s.Recipe.Ingredients {
		ing := &s.Recipe.Ingredients[i]
		if ing.Quantity == nil {
			continue
		}
		q := *ing.Quantity * float64(servings) / float64(s.Recipe.Servings)
		ing.Quantity = &q
	}
	s.Recipe.Servings = servings
	return nil
}

// HasBookmark reports whether a recipe with id is bookmarked.
func (s *State) HasBookmark(id string) bool {
	return slices.ContainsFunc(s.Bookmarks, func(r domain.Recipe) bool { return r.ID == id })
}

// AddBookmark appends a copy of r unless its id is already bookmarked, and
// syncs the current recipe's flag. It reports whether the list changed.
func (s *State) AddBookmark(r *domain.Recipe) bool {
	if s.HasBookmark(r.ID) {
		s.syncBookmarked()
		return false
	}
	b := r.Clone()
	b.Bookmarked = false
	s.Bookmarks = append(s.Bookmarks, *b)
	s.syncBookmarked()
	return true
}

// DeleteBookmark removes the first bookmark with id. It reports whether
// anything was removed.
func (s *State) DeleteBookmark(id string) bool {
	i := slices.IndexFunc(s.Bookmarks, func(r domain.Recipe) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	s.Bookmarks = slices.Delete(slices.Clone(s.Bookmarks), i, i+1)
	s.syncBookmarked()
	return true
}

// ClearBookmarks empties the bookmarks and unflags the current recipe.
func (s *State) ClearBookmarks() {
	s.Bookmarks = nil
	s.syncBookmarked()
}

// AddToShoppingList copies the current recipe's ingredients into the list,
// naming each copy with newID. It returns the number of items added.
func (s *State) AddToShoppingList(newID func() string) int {
	if s.Recipe == nil || len(s.Recipe.Ingredients) == 0 {
		return 0
	}
	items := make([]domain.ShoppingItem, 0, len(s.Recipe.Ingredients))
	for _, ing := range domain.CloneIngredients(s.Recipe.Ingredients) {
		items = append(items, domain.ShoppingItem{ID: newID(), Ingredient: ing})
	}
	s.ShoppingList = append(slices.Clip(s.ShoppingList), items...)
	return len(items)
}

// DeleteShoppingListItem removes the item with id. It reports whether
// anything was removed.
func (s *State) DeleteShoppingListItem(id string) bool {
	i := slices.IndexFunc(s.ShoppingList, func(it domain.ShoppingItem) bool { return it.ID == id })
	if i < 0 {
		return false
	}
	s.ShoppingList = slices.Delete(slices.Clone(s.ShoppingList), i, i+1)
	return true
}

// syncBookmarked recomputes the current recipe's flag from the bookmarks.
func (s *State) syncBookmarked() {
	if s.Recipe != nil {
		s.Recipe.Bookmarked = s.HasBookmark(s.Recipe.ID)
	}
}
