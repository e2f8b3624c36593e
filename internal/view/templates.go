package view

import (
	"bytes"
	"embed"
	"html/template"
)

// Icons is the sprite sheet referenced by every icon in the markup.
const Icons = "img/icons.svg"

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed index.html
var indexHTML string

// IndexHTML returns the page shell the views mount into.
func IndexHTML() string { return indexHTML }

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"icon": func(name string) string { return Icons + "#icon-" + name },
	"qty":  FormatQuantity,
	"add":  func(a, b int) int { return a + b },
}).ParseFS(templateFS, "templates/*.gohtml"))

func exec(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// mustExec is for the placeholder templates, which cannot fail on a string.
func mustExec(name string, data any) string {
	s, err := exec(name, data)
	if err != nil {
		panic(err)
	}
	return s
}
