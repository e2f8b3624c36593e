package main

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/forkify/internal/config"
	"github.com/hammamikhairi/forkify/internal/controller"
	"github.com/hammamikhairi/forkify/internal/display"
	"github.com/hammamikhairi/forkify/internal/dom"
	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
	"github.com/hammamikhairi/forkify/internal/model"
	"github.com/hammamikhairi/forkify/internal/recipe"
	"github.com/hammamikhairi/forkify/internal/storage"
	"github.com/hammamikhairi/forkify/internal/view"
)

// memoryDB selects the in-memory store instead of a database file.
const memoryDB = ":memory:"

// page is one loaded copy of the app: the document, its event loop and
// the controller driving it. Everything touching the document goes
// through the loop.
type page struct {
	loop *dom.Loop
	ctl  *controller.Controller
	log  *logger.Logger

	cancel     context.CancelFunc
	loopDone   chan struct{}
	closeStore func() error
}

// openPage builds the store and API the configuration asks for and loads a
// page over them.
func openPage(ctx context.Context, cfg config.Config, log *logger.Logger) (*page, error) {
	var (
		store      domain.KeyValueStore
		closeStore = func() error { return nil }
	)
	if cfg.DBPath == "" || cfg.DBPath == memoryDB {
		store = storage.NewMemoryStore(log)
	} else {
		bolt, err := storage.OpenBolt(cfg.DBPath, cfg.Origin, log)
		if err != nil {
			return nil, err
		}
		store, closeStore = bolt, bolt.Close
	}

	var api domain.RecipeAPI
	if cfg.Offline {
		api = recipe.NewMemorySource(cfg.APIKey, log)
		log.Info("offline: serving the built-in catalog")
	} else {
		api = recipe.NewClient(cfg.APIURL, cfg.APIKey, log, recipe.WithTimeout(cfg.Timeout))
	}

	p, err := newPage(ctx, api, store, cfg, log)
	if err != nil {
		closeStore()
		return nil, err
	}
	p.closeStore = closeStore
	return p, nil
}

// newPage wires the service, document, loop and controller, starts the
// loop and fires the window's load event.
func newPage(ctx context.Context, api domain.RecipeAPI, store domain.KeyValueStore, cfg config.Config, log *logger.Logger) (*page, error) {
	svc, err := model.New(api, store, log, model.WithResultsPerPage(cfg.ResultsPerPage))
	if err != nil {
		return nil, err
	}
	doc, err := dom.NewDocument(view.IndexHTML(), log)
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	loop := dom.NewLoop(log)
	p := &page{
		loop: loop,
		ctl: controller.New(ctx, controller.Deps{
			Service:    svc,
			Document:   doc,
			Loop:       loop,
			Log:        log,
			ModalClose: cfg.ModalClose,
		}),
		log:        log,
		cancel:     cancel,
		loopDone:   make(chan struct{}),
		closeStore: func() error { return nil },
	}

	go func() {
		defer close(p.loopDone)
		loop.Run(ctx)
	}()

	err = p.do(ctx, func(*dom.Document) error {
		p.ctl.Init()
		doc.Window().Load()
		return nil
	})
	if err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *page) svc() *model.Service { return p.ctl.Service() }

// doc is only safe to touch from the loop.
func (p *page) doc() *dom.Document { return p.ctl.Document() }

// do runs fn on the loop, then waits for the requests it started to land.
func (p *page) do(ctx context.Context, fn func(*dom.Document) error) error {
	var ferr error
	if err := p.loop.Do(ctx, func() { ferr = fn(p.doc()) }); err != nil {
		return err
	}
	if err := p.settle(ctx); err != nil {
		return err
	}
	return ferr
}

// settle waits for in-flight requests, then for the completions they
// posted to run.
func (p *page) settle(ctx context.Context) error {
	p.ctl.Wait()
	return p.loop.Do(ctx, func() {})
}

// render reads the page on the loop.
func (p *page) render(ctx context.Context, fn func(*dom.Document) string) string {
	var out string
	if err := p.loop.Do(ctx, func() { out = fn(p.doc()) }); err != nil {
		p.log.Warn("reading page: %v", err)
	}
	return out
}

// status summarizes the service state for the status bar. It does not
// touch the document, so any goroutine may call it.
func (p *page) status() display.Status {
	s := display.Status{
		Bookmarks: len(p.svc().Bookmarks()),
		Shopping:  len(p.svc().ShoppingList()),
	}
	if r := p.svc().Recipe(); r != nil {
		s.Recipe, s.Servings, s.Bookmarked = r.Title, r.Servings, r.Bookmarked
	}
	search := p.svc().Search()
	s.Query, s.Page, s.Pages = search.Query, search.Page, pageCount(search)
	return s
}

// Close stops the loop and releases the store.
func (p *page) Close() error {
	p.cancel()
	<-p.loopDone
	p.ctl.Wait()
	return p.closeStore()
}

func pageCount(s domain.Search) int {
	if s.ResultsPerPage <= 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}

// clickNth clicks the i-th (0-based) element matching selector.
func clickNth(doc *dom.Document, selector string, i int) bool {
	sel := doc.Find(selector)
	if i < 0 || i >= sel.Length() {
		return false
	}
	doc.Dispatch(sel.Get(i), "click")
	return true
}
