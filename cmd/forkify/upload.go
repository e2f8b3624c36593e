package main

import (
	"github.com/hammamikhairi/forkify/internal/dom"
)

// recipeFile is the YAML layout accepted by the upload command. Values
// stay text: they go through the same form validation as typed input.
//
//	title: Tomato soup
//	source_url: https://example.com/soup
//	image: https://example.com/soup.jpg
//	publisher: Me
//	cooking_time: 30
//	servings: 4
//	ingredients:
//	  - {quantity: 1 1/2, unit: kg, description: tomatoes}
//	  - {description: salt}
type recipeFile struct {
	Title       string           `yaml:"title"`
	SourceURL   string           `yaml:"source_url"`
	Image       string           `yaml:"image"`
	Publisher   string           `yaml:"publisher"`
	CookingTime string           `yaml:"cooking_time"`
	Servings    string           `yaml:"servings"`
	Ingredients []ingredientLine `yaml:"ingredients"`
}

type ingredientLine struct {
	Quantity    string `yaml:"quantity"`
	Unit        string `yaml:"unit"`
	Description string `yaml:"description"`
}

// submit opens a fresh add-recipe form, fills it and submits it. Runs on
// the loop.
func (f *recipeFile) submit(doc *dom.Document) error {
	if !doc.Find(".add-recipe-window").HasClass("hidden") {
		if err := doc.Click(".btn--close-modal"); err != nil {
			return err
		}
	}
	if err := doc.Click(".nav__btn--add-recipe"); err != nil {
		return err
	}

	fields := []struct{ name, value string }{
		{"title", f.Title},
		{"sourceUrl", f.SourceURL},
		{"image", f.Image},
		{"publisher", f.Publisher},
		{"cookingTime", f.CookingTime},
		{"servings", f.Servings},
	}
	for _, fl := range fields {
		if err := doc.Fill(".upload", fl.name, fl.value); err != nil {
			return err
		}
	}

	for doc.Find(".upload__ingredient").Length() < len(f.Ingredients) {
		if err := doc.Click(".upload__btn--add-ingredient"); err != nil {
			return err
		}
	}
	rows := doc.Find(".upload__ingredient")
	for i, ing := range f.Ingredients {
		row := rows.Eq(i)
		dom.SetValue(row.Find(`[name="quantity"]`), ing.Quantity)
		dom.SetValue(row.Find(`[name="unit"]`), ing.Unit)
		dom.SetValue(row.Find(`[name="description"]`), ing.Description)
	}
	return doc.Submit(".upload")
}
