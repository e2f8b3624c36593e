// Package domain defines the core types and interfaces for the recipe client.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is a dish record with metadata and an ordered ingredient list.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Publisher   string       `json:"publisher"`
	SourceURL   string       `json:"sourceUrl"`
	Image       string       `json:"image"`
	Servings    int          `json:"servings"`
	CookingTime int          `json:"cookingTime"`
	Ingredients []Ingredient `json:"ingredients"`
	Key         string       `json:"key,omitempty"` // set only for user-submitted recipes

	// Bookmarked mirrors membership in the bookmarks collection and is
	// recomputed whenever either side changes. It is never persisted.
	Bookmarked bool `json:"-"`
}

// Preview returns the reduced projection used in list contexts.
func (r *Recipe) Preview() Preview {
	return Preview{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		Image:     r.Image,
		Key:       r.Key,
	}
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	out := *r
	out.Ingredients = CloneIngredients(r.Ingredients)
	return &out
}

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Quantity    *float64 `json:"quantity"` // nil when the amount is unspecified ("salt to taste")
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// CloneIngredients deep-copies a slice of ingredients, including quantities.
func CloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, len(in))
	for i, ing := range in {
		out[i] = ing
		if ing.Quantity != nil {
			q := *ing.Quantity
			out[i].Quantity = &q
		}
	}
	return out
}

// Quantity is a convenience constructor for an ingredient amount.
func Quantity(v float64) *float64 { return &v }

// Preview is the lightweight view of a recipe used for search result rows
// and bookmark rows.
type Preview struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Image     string `json:"image"`
	Key       string `json:"key,omitempty"`
}

// Search holds the current query, its results and the pagination cursor.
type Search struct {
	Query          string
	Results        []Preview
	ResultsPerPage int
	Page           int
}

// NumPages returns ceil(len(Results) / ResultsPerPage).
func (s Search) NumPages() int {
	if s.ResultsPerPage <= 0 {
		return 0
	}
	return (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
}

// ShoppingItem is an ingredient copied into the shopping list. Its ID is
// generated at insertion time and is independent of the source recipe.
type ShoppingItem struct {
	ID string `json:"id"`
	Ingredient
}

// NewRecipe is the normalized payload produced by the add-recipe form.
// Ingredient quantities are still raw text; the service converts them.
type NewRecipe struct {
	Title       string
	SourceURL   string
	Image       string
	Publisher   string
	CookingTime int
	Servings    int
	Ingredients []IngredientInput
}

// IngredientInput is one scraped ingredient row of the add-recipe form.
type IngredientInput struct {
	Quantity    string
	Unit        string
	Description string
}
