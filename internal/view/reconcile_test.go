package view

import (
	"strings"
	"testing"

	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

func newPage(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(IndexHTML(), logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("parsing page: %v", err)
	}
	return doc
}

type counter struct {
	Label string
	N     int
	Class string
}

func counterMarkup(c *counter) (string, error) {
	return `<div class="box ` + c.Class + `"><span class="label">` + c.Label +
		`</span><b class="n">` + strings.Repeat("i", c.N) + `</b><i class="icon"></i></div>`, nil
}

func newCounter(t *testing.T) (*Reconciler[*counter], *dom.Document) {
	t.Helper()
	doc := newPage(t)
	rec := NewReconciler(doc.Find(".recipe"), counterMarkup, Messages{Error: "nothing here", Success: "done"}, logger.New(logger.LevelOff, nil))
	return rec, doc
}

func TestRenderReplacesContent(t *testing.T) {
	rec, doc := newCounter(t)
	if err := rec.Render(&counter{Label: "a", N: 1}); err != nil {
		t.Fatal(err)
	}
	if doc.Find(".recipe .message").Length() != 0 {
		t.Fatal("old content should be cleared")
	}
	if got := doc.Find(".recipe .label").Text(); got != "a" {
		t.Fatalf("expected label a, got %q", got)
	}
	if rec.Data().Label != "a" {
		t.Fatal("data not stored")
	}
}

func TestRenderAbsentShowsError(t *testing.T) {
	rec, doc := newCounter(t)
	if err := rec.Render(nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(doc.Find(".recipe .error p").Text()); got != "nothing here" {
		t.Fatalf("expected default error message, got %q", got)
	}
	rec.RenderError("custom")
	if got := strings.TrimSpace(doc.Find(".recipe .error p").Text()); got != "custom" {
		t.Fatalf("expected custom error message, got %q", got)
	}
}

func TestMarkupDoesNotTouchDOM(t *testing.T) {
	rec, doc := newCounter(t)
	m, err := rec.Markup(&counter{Label: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m, `<span class="label">x</span>`) {
		t.Fatalf("unexpected markup %q", m)
	}
	if doc.Find(".recipe .message").Length() != 1 {
		t.Fatal("markup should not touch the page")
	}
}

func TestUpdatePatchesInPlace(t *testing.T) {
	rec, doc := newCounter(t)
	if err := rec.Render(&counter{Label: "a", N: 1, Class: "off"}); err != nil {
		t.Fatal(err)
	}
	icon := doc.Find(".recipe .icon").Get(0)
	label := doc.Find(".recipe .label").Get(0)

	if err := rec.Update(&counter{Label: "b", N: 3, Class: "on"}); err != nil {
		t.Fatal(err)
	}

	if doc.Find(".recipe .icon").Get(0) != icon || doc.Find(".recipe .label").Get(0) != label {
		t.Fatal("update should keep the existing nodes")
	}
	if got := doc.Find(".recipe .label").Text(); got != "b" {
		t.Fatalf("expected label b, got %q", got)
	}
	if got := doc.Find(".recipe .n").Text(); got != "iii" {
		t.Fatalf("expected iii, got %q", got)
	}
	if !doc.Find(".recipe .box").HasClass("on") {
		t.Fatal("class attribute not patched")
	}
}

func TestUpdateIgnoresUnpairedElements(t *testing.T) {
	doc := newPage(t)
	gen := func(items []string) (string, error) {
		var sb strings.Builder
		for _, it := range items {
			sb.WriteString(`<li class="row">` + it + `</li>`)
		}
		return sb.String(), nil
	}
	rec := NewReconciler(doc.Find(".results"), gen, Messages{}, logger.New(logger.LevelOff, nil))
	if err := rec.Render([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Update([]string{"a", "c", "d"}); err != nil {
		t.Fatal(err)
	}
	rows := doc.Find(".results .row")
	if rows.Length() != 2 {
		t.Fatalf("positional update must not insert rows, got %d", rows.Length())
	}
	if rows.Eq(1).Text() != "c" {
		t.Fatalf("second row should be patched to c, got %q", rows.Eq(1).Text())
	}
}

func TestUpdateAbsentShowsError(t *testing.T) {
	doc := newPage(t)
	gen := func(items []domain.Preview) (string, error) { return "<li></li>", nil }
	rec := NewReconciler(doc.Find(".results"), gen, Messages{Error: "empty"}, logger.New(logger.LevelOff, nil))
	if err := rec.Update([]domain.Preview{}); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(doc.Find(".results .error p").Text()); got != "empty" {
		t.Fatalf("expected error placeholder, got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	rec, doc := newCounter(t)
	rec.RenderSpinner()
	if doc.Find(".recipe .spinner").Length() != 1 {
		t.Fatal("spinner missing")
	}
	rec.RenderMessage("")
	if got := strings.TrimSpace(doc.Find(".recipe .message p").Text()); got != "done" {
		t.Fatalf("expected default success message, got %q", got)
	}
	if doc.Find(".recipe .spinner").Length() != 0 {
		t.Fatal("spinner should be replaced")
	}
}
