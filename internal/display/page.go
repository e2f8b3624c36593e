package display

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hammamikhairi/forkify/internal/dom"
)

// The renderers below read the page, not the service, so the terminal
// shows exactly what the views produced. Call them on the event loop.

// Results renders the search results list and its pagination line.
func Results(doc *dom.Document) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Results") + "\n")

	mount := doc.Find(".results")
	if s, ok := placeholder(mount); ok {
		b.WriteString(s)
		return b.String()
	}
	rows := mount.Find(".preview")
	if rows.Length() == 0 {
		b.WriteString(secondaryStyle.Render("  Search for a recipe to get started.") + "\n")
		return b.String()
	}
	writePreviews(&b, rows)

	if info := text(doc.Find(".pagination .pagination__info")); info != "" {
		b.WriteString(secondaryStyle.Render("  "+info) + "\n")
	}
	return b.String()
}

// Bookmarks renders the bookmarks dropdown.
func Bookmarks(doc *dom.Document) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Bookmarks") + "\n")

	mount := doc.Find(".bookmarks__list")
	if s, ok := placeholder(mount); ok {
		b.WriteString(s)
		return b.String()
	}
	writePreviews(&b, mount.Find(".preview"))
	return b.String()
}

// Recipe renders the recipe panel, or whatever placeholder it holds.
func Recipe(doc *dom.Document) string {
	mount := doc.Find(".recipe")
	if s, ok := placeholder(mount); ok {
		return s
	}
	title := text(mount.Find(".recipe__title"))
	if title == "" {
		return ""
	}

	var b strings.Builder
	head := titleStyle.Render(title)
	if use, _ := mount.Find(".btn--bookmark use").Attr("href"); strings.HasSuffix(use, "-fill") {
		head += activeStyle.Render("  ★ bookmarked")
	}
	if !mount.Find(".recipe__user-generated").HasClass("hidden") {
		head += secondaryStyle.Render("  (yours)")
	}
	b.WriteString(head + "\n")
	b.WriteString(secondaryStyle.Render(fmt.Sprintf("  %s minutes · %s servings",
		text(mount.Find(".recipe__info-data--minutes")),
		text(mount.Find(".recipe__info-data--people")))) + "\n\n")

	b.WriteString(headingStyle.Render("Ingredients") + "\n")
	mount.Find(".recipe__ingredient").Each(func(_ int, li *goquery.Selection) {
		line := strings.TrimSpace(text(li.Find(".recipe__quantity")) + " " + text(li.Find(".recipe__description")))
		b.WriteString(primaryStyle.Render("  • "+line) + "\n")
	})

	if pub := text(mount.Find(".recipe__publisher")); pub != "" {
		b.WriteString("\n" + secondaryStyle.Render("  by "+pub) + "\n")
	}
	if href, _ := mount.Find(".recipe__btn").Attr("href"); href != "" {
		b.WriteString(secondaryStyle.Render("  directions: "+href) + "\n")
	}
	return b.String()
}

// ShoppingList renders the shopping list window's content, numbered from 1.
func ShoppingList(doc *dom.Document) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Shopping list") + "\n")

	mount := doc.Find(".shopping-list-content")
	if s, ok := placeholder(mount); ok {
		b.WriteString(s)
		return b.String()
	}
	mount.Find(".shopping-list__item").Each(func(i int, li *goquery.Selection) {
		line := strings.Join(strings.Fields(strings.Join([]string{
			text(li.Find(".shopping-list__quantity")),
			text(li.Find(".shopping-list__unit")),
			text(li.Find(".shopping-list__description")),
		}, " ")), " ")
		b.WriteString(primaryStyle.Render(fmt.Sprintf("  %2d. %s", i+1, line)) + "\n")
	})
	return b.String()
}

// Upload renders the add-recipe window's status, or "" while the window
// only holds the form.
func Upload(doc *dom.Document) string {
	s, _ := placeholder(doc.Find(".upload"))
	return s
}

// Modal returns the error modal's message when it is visible.
func Modal(doc *dom.Document) (string, bool) {
	if doc.Find(".error-modal").HasClass("hidden") {
		return "", false
	}
	return text(doc.Find(".error-modal__message")), true
}

// ── Helpers ──────────────────────────────────────────────────────

func writePreviews(b *strings.Builder, rows *goquery.Selection) {
	rows.Each(func(i int, li *goquery.Selection) {
		link := li.Find(".preview__link")
		title := text(li.Find(".preview__title"))
		line := fmt.Sprintf("%2d. %s", i+1, title)
		if link.HasClass("preview__link--active") {
			line = activeStyle.Render("▸" + line)
		} else {
			line = " " + primaryStyle.Render(line)
		}
		meta := text(li.Find(".preview__publisher"))
		if !li.Find(".preview__user-generated").HasClass("hidden") {
			meta += " · yours"
		}
		b.WriteString(" " + line + secondaryStyle.Render("  "+meta) + "\n")
	})
}

// placeholder renders a spinner, error or message the reconciler put in
// mount.
func placeholder(mount *goquery.Selection) (string, bool) {
	switch {
	case mount.ChildrenFiltered(".spinner").Length() > 0:
		return secondaryStyle.Render("  loading...") + "\n", true
	case mount.ChildrenFiltered(".error").Length() > 0:
		return urgentOutputStyle.Render("  ⚠ "+text(mount.Find(".error p"))) + "\n", true
	case mount.ChildrenFiltered(".message").Length() > 0:
		return successStyle.Render("  "+text(mount.Find(".message p"))) + "\n", true
	}
	return "", false
}

// text returns the selection's text with whitespace collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
