package dom

import (
	"strings"

	"github.com/hammamikhairi/forkify/internal/logger"
)

// Window holds the location hash and window-level listeners.
type Window struct {
	doc       *Document
	hash      string
	history   []string
	listeners map[string][]Handler
	log       *logger.Logger
}

func newWindow(doc *Document, log *logger.Logger) *Window {
	return &Window{
		doc:       doc,
		listeners: make(map[string][]Handler),
		log:       log,
	}
}

// Hash returns the location fragment without the leading '#'.
func (w *Window) Hash() string { return w.hash }

// History returns the fragments navigated to so far, oldest first.
func (w *Window) History() []string {
	return append([]string(nil), w.history...)
}

// AddEventListener registers h for window events of typ ("load",
// "hashchange") and for events bubbling up from the document.
func (w *Window) AddEventListener(typ string, h Handler) {
	w.listeners[typ] = append(w.listeners[typ], h)
}

// SetHash navigates to a new fragment and fires "hashchange" when it
// differs from the current one.
func (w *Window) SetHash(hash string) {
	hash = strings.TrimPrefix(hash, "#")
	if hash == w.hash {
		return
	}
	w.hash = hash
	w.history = append(w.history, hash)
	w.log.Debug("navigate #%s", hash)
	w.fire(&Event{Type: "hashchange"})
}

// PushState records a new fragment without firing any event.
func (w *Window) PushState(hash string) {
	w.hash = strings.TrimPrefix(hash, "#")
	w.history = append(w.history, w.hash)
}

// Load fires "load".
func (w *Window) Load() {
	w.fire(&Event{Type: "load"})
}

func (w *Window) fire(ev *Event) {
	for _, h := range w.listeners[ev.Type] {
		if ev.stopped {
			return
		}
		h(ev)
	}
}
