package view

import (
	"github.com/hammamikhairi/forkify/internal/dom"
)

// ErrorModal reports form problems independently of the add-recipe window.
type ErrorModal struct {
	doc *dom.Document
}

// NewErrorModal wires the modal's close button.
func NewErrorModal(doc *dom.Document) *ErrorModal {
	m := &ErrorModal{doc: doc}
	doc.AddEventListener(doc.Find(".btn--close-error-modal"), "click", func(*dom.Event) { m.Hide() })
	return m
}

// Show displays msg.
func (m *ErrorModal) Show(msg string) {
	m.doc.Find(".error-modal__message").SetText(msg)
	m.doc.Find(".error-modal").RemoveClass("hidden")
}

// Hide closes the modal and keeps its last message.
func (m *ErrorModal) Hide() { m.doc.Find(".error-modal").AddClass("hidden") }

// Visible reports whether the modal is shown.
func (m *ErrorModal) Visible() bool { return !m.doc.Find(".error-modal").HasClass("hidden") }

// Message returns the text currently in the modal.
func (m *ErrorModal) Message() string { return m.doc.Find(".error-modal__message").Text() }
