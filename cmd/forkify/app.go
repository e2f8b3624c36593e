package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/forkify/internal/command"
	"github.com/hammamikhairi/forkify/internal/display"
	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/export"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// printer is the subset of display.UI the shell writes to.
type printer interface {
	PrintBlock(text string)
	PrintInfo(text string)
	PrintSuccess(text string)
	PrintHint(text string)
	PrintUrgent(text string)
}

var _ printer = (*display.UI)(nil)

// maxSteps bounds the clicks one servings or page command may issue.
const maxSteps = 200

type cliApp struct {
	page   *page
	parser *command.Parser
	out    printer
	log    *logger.Logger
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.out.PrintBlock(a.page.render(ctx, display.Recipe))
	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-input:
			if !ok {
				return
			}
			line = l
		}

		cmd := a.parser.Parse(line)
		a.log.Debug("command: %s (arg=%q)", cmd.Kind, cmd.Arg)
		if cmd.Kind == command.Quit {
			a.out.PrintHint("Bye!")
			return
		}
		a.handle(ctx, cmd)
	}
}

func (a *cliApp) handle(ctx context.Context, cmd command.Command) {
	var err error
	switch cmd.Kind {
	case command.Help:
		a.out.PrintBlock(display.RenderHelp(command.Usage))
	case command.Search:
		err = a.search(ctx, cmd.Arg)
	case command.Open:
		err = a.open(ctx, cmd.Arg)
	case command.Next:
		err = a.turnPage(ctx, ".pagination__btn--next", "This is the last page.")
	case command.Prev:
		err = a.turnPage(ctx, ".pagination__btn--prev", "This is the first page.")
	case command.Page:
		err = a.goToPage(ctx, cmd.Arg)
	case command.Servings:
		err = a.servings(ctx, cmd.Arg)
	case command.Bookmark:
		err = a.recipeAction(ctx, ".btn--bookmark")
	case command.Bookmarks:
		a.out.PrintBlock(a.page.render(ctx, display.Bookmarks))
	case command.ClearBookmarks:
		err = a.clickAndShow(ctx, ".btn--clear-bookmarks", display.Bookmarks)
	case command.Shop:
		a.out.PrintBlock(a.page.render(ctx, display.ShoppingList))
	case command.ShopAdd:
		err = a.addToShoppingList(ctx)
	case command.ShopRemove:
		err = a.removeShoppingItem(ctx, cmd.Arg)
	case command.ShopClear:
		err = a.clickAndShow(ctx, ".btn--clear-shopping-list", display.ShoppingList)
	case command.Export:
		err = a.export(cmd.Arg)
	case command.Upload:
		err = a.upload(ctx, cmd.Arg)
	case command.Show:
		a.out.PrintBlock(a.page.render(ctx, display.Recipe))
	default:
		a.out.PrintHint(fmt.Sprintf("Unknown command %q. Type 'help' for the list.", cmd.Arg))
	}
	if err != nil {
		a.log.Warn("%s: %v", cmd.Kind, err)
		a.out.PrintUrgent(err.Error())
	}
	a.flushModal(ctx)
}

// ── Commands ─────────────────────────────────────────────────────

func (a *cliApp) search(ctx context.Context, query string) error {
	err := a.page.do(ctx, func(doc *dom.Document) error {
		if err := doc.Fill(".search", "query", query); err != nil {
			return err
		}
		return doc.Submit(".search")
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.Results))
	return nil
}

// open follows result n of the current page, or navigates to a recipe id.
func (a *cliApp) open(ctx context.Context, arg string) error {
	err := a.page.do(ctx, func(doc *dom.Document) error {
		if n, err := strconv.Atoi(arg); err == nil && len(arg) <= 2 {
			if !clickNth(doc, ".results .preview__link", n-1) {
				return fmt.Errorf("there is no result %d on this page", n)
			}
			return nil
		}
		doc.Window().SetHash(arg)
		return nil
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.Recipe))
	return nil
}

func (a *cliApp) turnPage(ctx context.Context, button, edge string) error {
	err := a.page.do(ctx, func(doc *dom.Document) error {
		if doc.Find(button).Length() == 0 {
			return fmt.Errorf("%s", edge)
		}
		return doc.Click(button)
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.Results))
	return nil
}

// goToPage walks the pagination buttons until page n is shown.
func (a *cliApp) goToPage(ctx context.Context, arg string) error {
	n, _ := strconv.Atoi(arg)
	search := a.page.svc().Search()
	if pages := pageCount(search); n < 1 || n > pages {
		return fmt.Errorf("page %d is out of range (1-%d)", n, pages)
	}
	err := a.page.do(ctx, func(doc *dom.Document) error {
		for i := 0; i < maxSteps; i++ {
			cur := a.page.svc().Search().Page
			switch {
			case cur < n:
				if err := doc.Click(".pagination__btn--next"); err != nil {
					return err
				}
			case cur > n:
				if err := doc.Click(".pagination__btn--prev"); err != nil {
					return err
				}
			default:
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.Results))
	return nil
}

// servings clicks the servings buttons: once for "+" or "-", or until the
// recipe serves n.
func (a *cliApp) servings(ctx context.Context, arg string) error {
	r := a.page.svc().Recipe()
	if r == nil {
		return fmt.Errorf("open a recipe first")
	}
	target := r.Servings
	switch arg {
	case "+":
		target++
	case "-":
		target--
	default:
		target, _ = strconv.Atoi(arg)
	}
	if target < 1 {
		return fmt.Errorf("a recipe needs at least one serving")
	}
	if d := target - r.Servings; d > maxSteps || -d > maxSteps {
		return fmt.Errorf("servings can change by at most %d at a time", maxSteps)
	}

	err := a.page.do(ctx, func(doc *dom.Document) error {
		for i := 0; i <= maxSteps; i++ {
			cur := a.page.svc().Recipe().Servings
			switch {
			case cur < target:
				if err := doc.Click(".btn--increase-servings"); err != nil {
					return err
				}
			case cur > target:
				if err := doc.Click(".btn--decrease-servings"); err != nil {
					return err
				}
			default:
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.Recipe))
	return nil
}

// recipeAction clicks a control of the open recipe and shows the result.
func (a *cliApp) recipeAction(ctx context.Context, button string) error {
	if a.page.svc().Recipe() == nil {
		return fmt.Errorf("open a recipe first")
	}
	return a.clickAndShow(ctx, button, display.Recipe)
}

func (a *cliApp) addToShoppingList(ctx context.Context) error {
	if a.page.svc().Recipe() == nil {
		return fmt.Errorf("open a recipe first")
	}
	return a.clickAndShow(ctx, ".recipe__btn--add-to-shopping-list", display.ShoppingList)
}

func (a *cliApp) removeShoppingItem(ctx context.Context, arg string) error {
	n, _ := strconv.Atoi(arg)
	err := a.page.do(ctx, func(doc *dom.Document) error {
		if !clickNth(doc, ".shopping-list__delete", n-1) {
			return fmt.Errorf("there is no item %d on the shopping list", n)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, display.ShoppingList))
	return nil
}

func (a *cliApp) clickAndShow(ctx context.Context, selector string, show func(*dom.Document) string) error {
	if err := a.page.do(ctx, func(doc *dom.Document) error { return doc.Click(selector) }); err != nil {
		return err
	}
	a.out.PrintBlock(a.page.render(ctx, show))
	return nil
}

func (a *cliApp) export(path string) error {
	items := a.page.svc().ShoppingList()
	if len(items) == 0 {
		return fmt.Errorf("the shopping list is empty")
	}
	if err := export.ToFile(path, items); err != nil {
		return err
	}
	a.out.PrintSuccess(fmt.Sprintf("Wrote %d items to %s", len(items), path))
	return nil
}

// upload fills the add-recipe form from a YAML file and submits it.
func (a *cliApp) upload(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f recipeFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if err := a.page.do(ctx, f.submit); err != nil {
		return err
	}
	if s := a.page.render(ctx, display.Upload); s != "" {
		a.out.PrintBlock(s)
	}
	a.out.PrintBlock(a.page.render(ctx, display.Recipe))
	return nil
}

// flushModal prints and dismisses the error modal if a command opened it.
func (a *cliApp) flushModal(ctx context.Context) {
	var msg string
	var shown bool
	err := a.page.loop.Do(ctx, func() {
		if msg, shown = display.Modal(a.page.doc()); shown {
			a.page.doc().Click(".btn--close-error-modal")
		}
	})
	if err == nil && shown {
		a.out.PrintUrgent(strings.TrimSpace(msg))
	}
}
