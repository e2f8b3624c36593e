// Package view renders application state into the page. Every region of the
// page is a component holding a Reconciler over its mount point.
package view

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Messages are the default placeholder texts of a component.
type Messages struct {
	Error   string
	Success string
}

// Reconciler renders data of type T into a mount point, either by
// replacing the mount's content or by patching it in place.
type Reconciler[T any] struct {
	mount    *goquery.Selection
	generate func(T) (string, error)
	msgs     Messages
	data     T
	log      *logger.Logger
}

// NewReconciler creates a reconciler over mount.
func NewReconciler[T any](mount *goquery.Selection, generate func(T) (string, error), msgs Messages, log *logger.Logger) *Reconciler[T] {
	return &Reconciler[T]{mount: mount, generate: generate, msgs: msgs, log: log}
}

// Mount returns the element the reconciler renders into.
func (r *Reconciler[T]) Mount() *goquery.Selection { return r.mount }

// Data returns the payload of the last render or update.
func (r *Reconciler[T]) Data() T { return r.data }

// Render replaces the mount's content with the markup for data. Absent data
// (nil, or an empty slice) renders the error placeholder instead.
func (r *Reconciler[T]) Render(data T) error {
	if absent(data) {
		r.RenderError("")
		return nil
	}
	markup, err := r.Markup(data)
	if err != nil {
		return err
	}
	r.mount.Empty()
	r.mount.AppendHtml(markup)
	return nil
}

// Markup stores data and returns its markup without touching the page.
func (r *Reconciler[T]) Markup(data T) (string, error) {
	r.data = data
	markup, err := r.generate(data)
	if err != nil {
		return "", fmt.Errorf("generating markup: %w", err)
	}
	return markup, nil
}

// Update patches the mount's current content towards the markup for data.
//
// Elements of the new markup and of the mount are paired by their position
// in document order. For every pair that differs, the text is replaced when
// the new element starts with a non-blank text node, and every attribute of
// the new element is copied over. Attributes are never removed, and
// elements without a partner are left alone. This is a best-effort patch: a
// change in structure (rows inserted or reordered) misaligns the pairing,
// so callers that change structure use Render.
func (r *Reconciler[T]) Update(data T) error {
	if absent(data) {
		r.RenderError("")
		return nil
	}
	markup, err := r.Markup(data)
	if err != nil {
		return err
	}
	if r.mount.Length() == 0 {
		return nil
	}

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	fragment, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return fmt.Errorf("parsing markup: %w", err)
	}

	var next []*html.Node
	for _, n := range fragment {
		next = appendElements(next, n)
	}
	var cur []*html.Node
	for c := r.mount.Get(0).FirstChild; c != nil; c = c.NextSibling {
		cur = appendElements(cur, c)
	}

	patched := 0
	for i, nn := range next {
		if i >= len(cur) {
			break
		}
		cn := cur[i]
		if equalNode(nn, cn) {
			continue
		}
		if txt := firstText(nn); txt != "" && strings.TrimSpace(textContent(cn)) != txt {
			setText(cn, txt)
		}
		for _, a := range nn.Attr {
			if v, ok := attr(cn, a.Key); !ok || v != a.Val {
				setAttr(cn, a.Key, a.Val)
			}
		}
		patched++
	}
	r.log.Debug("update patched %d of %d elements", patched, len(next))
	return nil
}

// RenderSpinner replaces the content with a loading indicator.
func (r *Reconciler[T]) RenderSpinner() {
	r.replace(mustExec("spinner", nil))
}

// RenderError replaces the content with an error placeholder. An empty
// message uses the component's default.
func (r *Reconciler[T]) RenderError(msg string) {
	if msg == "" {
		msg = r.msgs.Error
	}
	r.replace(mustExec("error", msg))
}

// RenderMessage replaces the content with a success placeholder. An empty
// message uses the component's default.
func (r *Reconciler[T]) RenderMessage(msg string) {
	if msg == "" {
		msg = r.msgs.Success
	}
	r.replace(mustExec("message", msg))
}

func (r *Reconciler[T]) replace(markup string) {
	r.mount.Empty()
	r.mount.AppendHtml(markup)
}

// absent reports whether v is nil or an empty slice.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice:
		return rv.Len() == 0
	}
	return false
}

// ── Node helpers ─────────────────────────────────────────────────

// appendElements appends n and its element descendants in document order.
func appendElements(out []*html.Node, n *html.Node) []*html.Node {
	if n.Type == html.ElementNode {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = appendElements(out, c)
	}
	return out
}

// equalNode reports whether two subtrees are structurally identical: same
// node types, names, attribute sets, text and children.
func equalNode(a, b *html.Node) bool {
	if a.Type != b.Type || a.Data != b.Data || len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, at := range a.Attr {
		if v, ok := attr(b, at.Key); !ok || v != at.Val {
			return false
		}
	}
	ac, bc := a.FirstChild, b.FirstChild
	for ac != nil && bc != nil {
		if !equalNode(ac, bc) {
			return false
		}
		ac, bc = ac.NextSibling, bc.NextSibling
	}
	return ac == nil && bc == nil
}

func firstText(n *html.Node) string {
	if n.FirstChild == nil || n.FirstChild.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(n.FirstChild.Data)
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
