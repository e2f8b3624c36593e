package display

import (
	"strings"
	"testing"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/view"
)

var quiet = logger.New(logger.LevelOff, nil)

func newPage(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(view.IndexHTML(), quiet)
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

func qty(v float64) *float64 { return &v }

func mustContain(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Fatalf("expected %q in:\n%s", w, got)
		}
	}
}

func TestResultsSnapshot(t *testing.T) {
	doc := newPage(t)
	mustContain(t, Results(doc), "Search for a recipe")

	doc.Window().SetHash("b")
	results := view.NewResultsView(doc, view.NewPreviewView(doc, quiet), quiet)
	previews := []domain.Preview{
		{ID: "a", Title: "Pizza dough", Publisher: "Kitchen"},
		{ID: "b", Title: "Margherita", Publisher: "Napoli", Key: "k"},
	}
	if err := results.Render(previews); err != nil {
		t.Fatal(err)
	}
	all := make([]domain.Preview, 23)
	if err := view.NewPaginationView(doc, quiet).Render(domain.Search{Results: all, ResultsPerPage: 10, Page: 2}); err != nil {
		t.Fatal(err)
	}

	got := Results(doc)
	mustContain(t, got, "1. Pizza dough", "Kitchen", "▸", "2. Margherita", "yours", "Page 2/3")
	if strings.Count(got, "▸") != 1 {
		t.Fatalf("exactly one row should be active:\n%s", got)
	}
}

func TestResultsPlaceholders(t *testing.T) {
	doc := newPage(t)
	results := view.NewResultsView(doc, view.NewPreviewView(doc, quiet), quiet)

	results.RenderSpinner()
	mustContain(t, Results(doc), "loading...")

	results.RenderError("")
	mustContain(t, Results(doc), "No recipes found for your query!")
}

func TestRecipeSnapshot(t *testing.T) {
	doc := newPage(t)
	mustContain(t, Recipe(doc), "Start by searching")

	r := &domain.Recipe{
		ID: "x", Title: "Garlic bread", Publisher: "Bakery", SourceURL: "http://example.com/bread",
		Servings: 4, CookingTime: 20, Key: "k", Bookmarked: true,
		Ingredients: []domain.Ingredient{
			{Quantity: qty(1.5), Unit: "cups", Description: "flour"},
			{Description: "salt"},
		},
	}
	if err := view.NewRecipeView(doc, quiet).Render(r); err != nil {
		t.Fatal(err)
	}
	mustContain(t, Recipe(doc),
		"Garlic bread", "★ bookmarked", "(yours)", "20 minutes · 4 servings",
		"• 1 1/2 cups flour", "• salt", "by Bakery", "directions: http://example.com/bread")
}

func TestRecipeSnapshotNotBookmarked(t *testing.T) {
	doc := newPage(t)
	if err := view.NewRecipeView(doc, quiet).Render(&domain.Recipe{ID: "x", Title: "Soup", Servings: 2}); err != nil {
		t.Fatal(err)
	}
	got := Recipe(doc)
	if strings.Contains(got, "bookmarked") || strings.Contains(got, "yours") {
		t.Fatalf("unexpected badges:\n%s", got)
	}
}

func TestShoppingListSnapshot(t *testing.T) {
	doc := newPage(t)
	v := view.NewShoppingListView(doc, quiet)

	if err := v.Render(nil); err != nil {
		t.Fatal(err)
	}
	mustContain(t, ShoppingList(doc), "Your shopping list is empty.")

	items := []domain.ShoppingItem{
		{ID: "1", Ingredient: domain.Ingredient{Quantity: qty(0.5), Unit: "kg", Description: "tomatoes"}},
		{ID: "2", Ingredient: domain.Ingredient{Description: "basil"}},
	}
	if err := v.Render(items); err != nil {
		t.Fatal(err)
	}
	mustContain(t, ShoppingList(doc), " 1. 1/2 kg tomatoes", " 2. basil")
}

func TestModalAndUpload(t *testing.T) {
	doc := newPage(t)
	modal := view.NewErrorModal(doc)
	if _, ok := Modal(doc); ok {
		t.Fatal("modal should start hidden")
	}
	modal.Show("Storage is full")
	if msg, ok := Modal(doc); !ok || msg != "Storage is full" {
		t.Fatalf("got %q, %v", msg, ok)
	}

	upload := view.NewAddRecipeView(doc, modal, quiet)
	if got := Upload(doc); got != "" {
		t.Fatalf("form only, expected no status, got %q", got)
	}
	upload.RenderMessage("")
	mustContain(t, Upload(doc), "Recipe was successfully uploaded")
}

func TestRenderBar(t *testing.T) {
	got := renderBar(Status{
		Recipe: "Pizza", Servings: 4, Bookmarked: true,
		Bookmarks: 2, Shopping: 5, Query: "pizza", Page: 2, Pages: 3,
	}, 200)
	mustContain(t, got, "★ Pizza", "serves", "2/3", "bookmarks", "shopping")

	bare := renderBar(Status{}, 200)
	if strings.Contains(bare, "recipe") || strings.Contains(bare, "page") {
		t.Fatalf("empty status should only show counters: %q", bare)
	}
}

func TestRenderHelp(t *testing.T) {
	got := RenderHelp([][2]string{{"next", "next page"}, {"quit", ""}})
	mustContain(t, got, "next", "next page", "quit")
	if n := strings.Count(got, "\n"); n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
}
