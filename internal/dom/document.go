// Package dom is a small in-process browser: an HTML document queried and
// mutated through goquery, a window with a location hash, event listeners
// with bubbling and default actions, and a single-threaded event loop.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Handler is an event listener.
type Handler func(*Event)

// Event is dispatched to listeners on the target and each of its ancestors,
// then to the window.
type Event struct {
	Type string

	// Target is the node the event was dispatched on. CurrentTarget is the
	// node whose listener is running.
	Target        *goquery.Selection
	CurrentTarget *goquery.Selection

	prevented bool
	stopped   bool
}

// PreventDefault cancels the default action (hash navigation for anchors,
// form submission for buttons).
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Document is a parsed HTML page plus its event listeners. It is not safe
// for concurrent use: all access happens on the event loop.
type Document struct {
	doc       *goquery.Document
	window    *Window
	listeners map[*html.Node]map[string][]Handler
	log       *logger.Logger
}

// NewDocument parses markup into a document with a fresh window.
func NewDocument(markup string, log *logger.Logger) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	d := &Document{
		doc:       doc,
		listeners: make(map[*html.Node]map[string][]Handler),
		log:       log,
	}
	d.window = newWindow(d, log)
	return d, nil
}

// Window returns the document's window.
func (d *Document) Window() *Window { return d.window }

// Find queries the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Wrap returns a selection holding n, which must belong to this document.
func (d *Document) Wrap(n *html.Node) *goquery.Selection {
	return d.doc.FindNodes(n)
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// AddEventListener attaches h to every node in sel.
func (d *Document) AddEventListener(sel *goquery.Selection, typ string, h Handler) {
	for _, n := range sel.Nodes {
		byType, ok := d.listeners[n]
		if !ok {
			byType = make(map[string][]Handler)
			d.listeners[n] = byType
		}
		byType[typ] = append(byType[typ], h)
	}
}

// Dispatch fires an event of typ at target, bubbles it up to the window and
// runs the default action unless a listener prevented it. It reports
// whether the default was left in place.
func (d *Document) Dispatch(target *html.Node, typ string) bool {
	ev := &Event{Type: typ, Target: d.Wrap(target)}

	for n := target; n != nil && !ev.stopped; n = n.Parent {
		hs := d.listeners[n][typ]
		if len(hs) == 0 {
			continue
		}
		ev.CurrentTarget = d.Wrap(n)
		for _, h := range hs {
			h(ev)
		}
	}
	if !ev.stopped {
		ev.CurrentTarget = nil
		d.window.fire(ev)
	}

	if ev.prevented {
		return false
	}
	d.defaultAction(ev)
	return true
}

// Click dispatches a click on the first element matching selector.
func (d *Document) Click(selector string) error {
	n, err := d.first(selector)
	if err != nil {
		return err
	}
	d.Dispatch(n, "click")
	return nil
}

// Submit dispatches a submit on the first form matching selector.
func (d *Document) Submit(selector string) error {
	n, err := d.first(selector)
	if err != nil {
		return err
	}
	d.Dispatch(n, "submit")
	return nil
}

func (d *Document) first(selector string) (*html.Node, error) {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return sel.Get(0), nil
}

func (d *Document) defaultAction(ev *Event) {
	switch ev.Type {
	case "click":
		if a := ev.Target.Closest(`a[href^="#"]`); a.Length() > 0 {
			href, _ := a.Attr("href")
			d.window.SetHash(href)
			return
		}
		btn := ev.Target.Closest("button")
		if btn.Length() == 0 {
			return
		}
		if typ, _ := btn.Attr("type"); typ == "button" {
			return
		}
		if form := btn.Closest("form"); form.Length() > 0 {
			d.Dispatch(form.Get(0), "submit")
		}
	case "submit":
		d.log.Debug("form submitted without a handler preventing navigation")
	}
}
