package dom

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Field is one named control of a form.
type Field struct {
	Name  string
	Value string
}

// Value returns the current value of the first control in sel. Text
// areas hold their value as text content, everything else in the value
// attribute.
func Value(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	sel = sel.First()
	if goquery.NodeName(sel) == "textarea" {
		return sel.Text()
	}
	return sel.AttrOr("value", "")
}

// SetValue sets the value of every control in sel.
func SetValue(sel *goquery.Selection, v string) {
	sel.Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "textarea" {
			s.SetText(v)
			return
		}
		s.SetAttr("value", v)
	})
}

// FormData returns the named controls of form in document order, the way
// a browser would serialize it. Disabled controls are skipped.
func FormData(form *goquery.Selection) []Field {
	var out []Field
	form.Find("input[name], textarea[name], select[name]").Each(func(_ int, s *goquery.Selection) {
		if _, disabled := s.Attr("disabled"); disabled {
			return
		}
		name, _ := s.Attr("name")
		out = append(out, Field{Name: name, Value: Value(s)})
	})
	return out
}

// Fill sets the value of the control named name inside the first element
// matching formSelector.
func (d *Document) Fill(formSelector, name, value string) error {
	ctl := d.Find(formSelector).First().Find(fmt.Sprintf("[name=%q]", name))
	if ctl.Length() == 0 {
		return fmt.Errorf("no control %q in %s", name, formSelector)
	}
	SetValue(ctl.First(), value)
	return nil
}
