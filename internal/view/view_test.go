package view

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var quiet = logger.New(logger.LevelOff, nil)

func testRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bcd09",
		Title:       "Homemade Pizza Dough",
		Publisher:   "Closet Cooking",
		SourceURL:   "http://www.closetcooking.com/pizza-dough.html",
		Image:       "https://example.com/dough.jpg",
		Servings:    4,
		CookingTime: 75,
		Ingredients: []domain.Ingredient{
			{Quantity: domain.Quantity(1.5), Unit: "cups", Description: "warm water"},
			{Description: "Salt to taste"},
		},
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, ""},
		{domain.Quantity(2), "2"},
		{domain.Quantity(0.5), "1/2"},
		{domain.Quantity(0.25), "1/4"},
		{domain.Quantity(1.5), "1 1/2"},
		{domain.Quantity(1.0 / 3), "1/3"},
		{domain.Quantity(2.75), "2 3/4"},
		{domain.Quantity(0.999999999), "1"},
		{domain.Quantity(0.123), "0.12"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatQuantity(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPaginationScenario(t *testing.T) {
	doc := newPage(t)
	v := NewPaginationView(doc, quiet)
	search := domain.Search{Query: "pizza", ResultsPerPage: 10, Page: 1}
	for i := range 23 {
		search.Results = append(search.Results, domain.Preview{ID: fmt.Sprint(i)})
	}

	tests := []struct {
		page     int
		prev     bool
		next     bool
		info     string
		nextGoto string
	}{
		{1, false, true, "Page 1/3", "2"},
		{2, true, true, "Page 2/3", "3"},
		{3, true, false, "Page 3/3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			search.Page = tt.page
			if err := v.Render(search); err != nil {
				t.Fatal(err)
			}
			prev := doc.Find(".pagination .pagination__btn--prev").Length() == 1
			next := doc.Find(".pagination .pagination__btn--next")
			if prev != tt.prev || (next.Length() == 1) != tt.next {
				t.Fatalf("prev=%v next=%v, want prev=%v next=%v", prev, next.Length() == 1, tt.prev, tt.next)
			}
			if got := doc.Find(".pagination__info").Text(); got != tt.info {
				t.Fatalf("expected %q, got %q", tt.info, got)
			}
			if tt.next && next.AttrOr("data-goto", "") != tt.nextGoto {
				t.Fatalf("next goes to %q", next.AttrOr("data-goto", ""))
			}
		})
	}

	search.Results = search.Results[:7]
	search.Page = 1
	if err := v.Render(search); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(doc.Find(".pagination").Text()) != "" {
		t.Fatal("a single page should render no pagination")
	}
}

func TestPaginationPastLastPage(t *testing.T) {
	doc := newPage(t)
	v := NewPaginationView(doc, quiet)
	search := domain.Search{ResultsPerPage: 10, Page: 5, Results: make([]domain.Preview, 23)}
	if err := v.Render(search); err != nil {
		t.Fatal(err)
	}
	if n := doc.Find(".pagination .btn--inline").Length(); n != 0 {
		t.Fatalf("expected no controls past the last page, got %d", n)
	}
	if got := strings.TrimSpace(doc.Find(".pagination").Text()); got != "" {
		t.Fatalf("expected empty pagination, got %q", got)
	}
}

func TestPaginationClick(t *testing.T) {
	doc := newPage(t)
	v := NewPaginationView(doc, quiet)
	got := 0
	v.AddHandlerClick(func(p int) { got = p })
	search := domain.Search{ResultsPerPage: 10, Page: 2, Results: make([]domain.Preview, 25)}
	if err := v.Render(search); err != nil {
		t.Fatal(err)
	}
	if err := doc.Click(".pagination__btn--prev span"); err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("expected page 1, got %d", got)
	}
}

func TestRecipeView(t *testing.T) {
	doc := newPage(t)
	v := NewRecipeView(doc, quiet)
	var servings []int
	bookmarks := 0
	v.AddHandlerUpdateServings(func(n int) { servings = append(servings, n) })
	v.AddHandlerBookmark(func() { bookmarks++ })

	r := testRecipe()
	r.Servings = 1
	if err := v.Render(r); err != nil {
		t.Fatal(err)
	}
	if got := doc.Find(".recipe__title span").Text(); got != r.Title {
		t.Fatalf("title %q", got)
	}
	if got := doc.Find(".recipe__quantity").First().Text(); got != "1 1/2" {
		t.Fatalf("quantity %q", got)
	}
	if !doc.Find(".recipe__user-generated").HasClass("hidden") {
		t.Fatal("catalog recipe should hide the user badge")
	}
	if !doc.Find(".btn--decrease-servings").HasClass("btn--disabled") {
		t.Fatal("decrease should be disabled at 1 serving")
	}

	doc.Click(".btn--decrease-servings svg")
	doc.Click(".btn--increase-servings svg")
	if diff := cmp.Diff([]int{2}, servings); diff != "" {
		t.Fatalf("servings clicks mismatch (-want +got):\n%s", diff)
	}

	doc.Click(".btn--bookmark")
	if bookmarks != 1 {
		t.Fatalf("expected 1 bookmark click, got %d", bookmarks)
	}
}

func TestRecipeViewUpdate(t *testing.T) {
	doc := newPage(t)
	v := NewRecipeView(doc, quiet)
	r := testRecipe()
	if err := v.Render(r); err != nil {
		t.Fatal(err)
	}
	img := doc.Find(".recipe__img").Get(0)

	r.Servings = 8
	*r.Ingredients[0].Quantity = 3
	r.Bookmarked = true
	if err := v.Update(r); err != nil {
		t.Fatal(err)
	}
	if doc.Find(".recipe__img").Get(0) != img {
		t.Fatal("unchanged nodes should survive an update")
	}
	if got := doc.Find(".recipe__info-data--people").Text(); got != "8" {
		t.Fatalf("servings %q", got)
	}
	if got := doc.Find(".recipe__quantity").First().Text(); got != "3" {
		t.Fatalf("quantity %q", got)
	}
	if got := doc.Find(".btn--increase-servings").AttrOr("data-update-to", ""); got != "9" {
		t.Fatalf("increase goes to %q", got)
	}
	if href := doc.Find(".btn--bookmark use").AttrOr("href", ""); !strings.HasSuffix(href, "#icon-bookmark-fill") {
		t.Fatalf("bookmark icon %q", href)
	}
}

func TestResultsAndBookmarks(t *testing.T) {
	doc := newPage(t)
	preview := NewPreviewView(doc, quiet)
	results := NewResultsView(doc, preview, quiet)
	bookmarks := NewBookmarksView(doc, preview, quiet)

	doc.Window().PushState("b")
	ps := []domain.Preview{{ID: "a", Title: "A"}, {ID: "b", Title: "B", Key: "k"}}
	if err := results.Render(ps); err != nil {
		t.Fatal(err)
	}
	links := doc.Find(".results .preview__link")
	if links.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", links.Length())
	}
	if links.Eq(0).HasClass("preview__link--active") || !links.Eq(1).HasClass("preview__link--active") {
		t.Fatal("only the open recipe should be active")
	}
	if doc.Find(".results .preview__user-generated").Eq(1).HasClass("hidden") {
		t.Fatal("user recipe should show its badge")
	}

	// Navigating moves the active marker through an update.
	doc.Window().PushState("a")
	if err := results.Update(ps); err != nil {
		t.Fatal(err)
	}
	if !doc.Find(".results .preview__link").Eq(0).HasClass("preview__link--active") {
		t.Fatal("active marker not moved")
	}

	if err := results.Render(nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(doc.Find(".results .error p").Text()); got != "No recipes found for your query! Please try again ;)" {
		t.Fatalf("results error %q", got)
	}
	if err := bookmarks.Render(nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(doc.Find(".bookmarks__list .error p").Text()); got != "No bookmarks yet. Find a nice recipe and bookmark it ;)" {
		t.Fatalf("bookmarks error %q", got)
	}
	if err := bookmarks.Render([]domain.Recipe{*testRecipe()}); err != nil {
		t.Fatal(err)
	}
	if got := doc.Find(".bookmarks__list .preview__title").Text(); got != "Homemade Pizza Dough" {
		t.Fatalf("bookmark row %q", got)
	}
}

func TestPreviewLinkNavigates(t *testing.T) {
	doc := newPage(t)
	results := NewResultsView(doc, NewPreviewView(doc, quiet), quiet)
	if err := results.Render([]domain.Preview{{ID: "xyz", Title: "X"}}); err != nil {
		t.Fatal(err)
	}
	doc.Click(".preview__title")
	if doc.Window().Hash() != "xyz" {
		t.Fatalf("expected hash xyz, got %q", doc.Window().Hash())
	}
}

func TestShoppingListView(t *testing.T) {
	doc := newPage(t)
	v := NewShoppingListView(doc, quiet)
	var deleted string
	v.AddHandlerDelete(func(id string) { deleted = id })

	if err := v.Render(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Find(".shopping-list-content .message").Text(), "shopping list is empty") {
		t.Fatal("empty state missing")
	}

	items := []domain.ShoppingItem{
		{ID: "i1", Ingredient: domain.Ingredient{Quantity: domain.Quantity(0.5), Unit: "cup", Description: "sugar"}},
		{ID: "i2", Ingredient: domain.Ingredient{Description: "salt"}},
	}
	if err := v.Render(items); err != nil {
		t.Fatal(err)
	}
	if got := doc.Find(".shopping-list__quantity").First().Text(); got != "1/2" {
		t.Fatalf("quantity %q", got)
	}
	doc.Click(`.shopping-list__delete[data-id="i2"] svg`)
	if deleted != "i2" {
		t.Fatalf("expected i2 deleted, got %q", deleted)
	}

	if v.IsOpen() {
		t.Fatal("window starts closed")
	}
	doc.Click(".nav__btn--shopping-list")
	if !v.IsOpen() {
		t.Fatal("nav button should open the window")
	}
	doc.Click(".btn--close-shopping-list")
	if v.IsOpen() {
		t.Fatal("close button should close the window")
	}
}

func TestSearchViewQuery(t *testing.T) {
	doc := newPage(t)
	v := NewSearchView(doc)
	submitted := 0
	v.AddHandlerSearch(func() { submitted++ })

	if err := doc.Fill(".search", "query", "pizza"); err != nil {
		t.Fatal(err)
	}
	doc.Click(".search__btn span")
	if submitted != 1 {
		t.Fatalf("expected 1 submit, got %d", submitted)
	}
	if q := v.Query(); q != "pizza" {
		t.Fatalf("expected pizza, got %q", q)
	}
	if q := v.Query(); q != "" {
		t.Fatalf("field should be cleared, got %q", q)
	}
}

func fillUpload(t *testing.T, v *AddRecipeView, fields map[string]string, rows [][3]string) {
	t.Helper()
	for len(rows) > v.rec.Mount().Find(".upload__ingredient").Length() {
		v.AddIngredientRow()
	}
	for name, val := range fields {
		if err := v.doc.Fill(".upload", name, val); err != nil {
			t.Fatal(err)
		}
	}
	for i, r := range rows {
		row := v.rec.Mount().Find(".upload__ingredient").Eq(i)
		row.Find(`[name="quantity"]`).SetAttr("value", r[0])
		row.Find(`[name="unit"]`).SetAttr("value", r[1])
		row.Find(`[name="description"]`).SetAttr("value", r[2])
	}
}

var validFields = map[string]string{
	"title":       "Soup <b>deluxe</b>",
	"sourceUrl":   "https://example.com/soup",
	"image":       "https://example.com/soup.jpg",
	"publisher":   "Me & You",
	"cookingTime": "20",
	"servings":    "2",
}

func TestAddRecipeSubmit(t *testing.T) {
	doc := newPage(t)
	modal := NewErrorModal(doc)
	v := NewAddRecipeView(doc, modal, quiet)
	var got *domain.NewRecipe
	v.AddHandlerUpload(func(r *domain.NewRecipe) { got = r })

	doc.Click(".nav__btn--add-recipe")
	if !v.IsOpen() {
		t.Fatal("modal should open")
	}

	rows := [][3]string{
		{"1 1/2", "cups", "water"},
		{"", "", ""},
		{"", "", "salt"},
		{"3", "", "carrots"},
		{"", "", ""},
		{"2", "", "onions"},
		{"1", "tsp", "pepper"},
	}
	fillUpload(t, v, validFields, rows)
	if n := doc.Find(".upload__ingredient").Length(); n != 7 {
		t.Fatalf("expected 7 rows, got %d", n)
	}
	doc.Click(".upload__btn span")

	if modal.Visible() {
		t.Fatalf("unexpected error: %s", modal.Message())
	}
	if got == nil {
		t.Fatal("handler not called")
	}
	want := &domain.NewRecipe{
		Title:       "Soup deluxe",
		SourceURL:   "https://example.com/soup",
		Image:       "https://example.com/soup.jpg",
		Publisher:   "Me & You",
		CookingTime: 20,
		Servings:    2,
		Ingredients: []domain.IngredientInput{
			{Quantity: "1 1/2", Unit: "cups", Description: "water"},
			{Description: "salt"},
			{Quantity: "3", Description: "carrots"},
			{Quantity: "2", Description: "onions"},
			{Quantity: "1", Unit: "tsp", Description: "pepper"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRecipeValidation(t *testing.T) {
	tests := []struct {
		name string
		rows [][3]string
		want string
	}{
		{"no ingredients", [][3]string{{"", "", ""}}, "Please add at least one ingredient."},
		{"unit without quantity", [][3]string{{"", "cup", "flour"}}, "A unit (cup) needs a positive quantity."},
		{"quantity without description", [][3]string{{"2", "", ""}}, "Wrong ingredient format!"},
		{"bad quantity", [][3]string{{"lots", "", "flour"}}, "is not a valid quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newPage(t)
			modal := NewErrorModal(doc)
			v := NewAddRecipeView(doc, modal, quiet)
			called := false
			v.AddHandlerUpload(func(*domain.NewRecipe) { called = true })

			fillUpload(t, v, validFields, tt.rows)
			doc.Submit(".upload")

			if called {
				t.Fatal("invalid form reached the handler")
			}
			if !modal.Visible() || !strings.Contains(modal.Message(), tt.want) {
				t.Fatalf("expected modal with %q, got visible=%v %q", tt.want, modal.Visible(), modal.Message())
			}
			doc.Click(".btn--close-error-modal")
			if modal.Visible() {
				t.Fatal("modal should close")
			}
		})
	}
}

func TestScrapeRejectsBadServings(t *testing.T) {
	doc := newPage(t)
	v := NewAddRecipeView(doc, NewErrorModal(doc), quiet)
	fields := map[string]string{"title": "x", "cookingTime": "5", "servings": "0"}
	fillUpload(t, v, fields, [][3]string{{"1", "", "a"}})
	_, err := v.scrape()
	if !errors.Is(err, domain.ErrInvalidServings) {
		t.Fatalf("expected ErrInvalidServings, got %v", err)
	}
}

func TestAddRecipeWindow(t *testing.T) {
	doc := newPage(t)
	v := NewAddRecipeView(doc, NewErrorModal(doc), quiet)

	doc.Click(".nav__btn--add-recipe")
	v.RenderMessage("")
	if !strings.Contains(doc.Find(".upload .message").Text(), "successfully uploaded") {
		t.Fatal("success message missing")
	}
	doc.Click(".overlay")
	if v.IsOpen() {
		t.Fatal("overlay click should close")
	}
	doc.Click(".nav__btn--add-recipe")
	if doc.Find(".upload .upload__column").Length() != 2 {
		t.Fatal("opening should restore the pristine form")
	}
	v.CloseWindow()
	v.CloseWindow()
	if v.IsOpen() {
		t.Fatal("close must never reopen")
	}
}
