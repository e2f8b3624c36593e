// Package recipe provides recipe catalog implementations: an HTTP client
// for the hosted API and an in-memory catalog for offline use.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeAPI = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	userKey string
	log     *logger.Logger
}

// NewMemorySource creates a catalog preloaded with built-in recipes.
// Uploaded recipes are tagged with userKey.
func NewMemorySource(userKey string, log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[string]*domain.Recipe),
		userKey: userKey,
		log:     log,
	}
	src.seed()
	return src
}

// Get returns a copy of the recipe with the given id.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %s", id)
		return nil, &domain.APIError{Status: 404, Message: fmt.Sprintf("Invalid _id: %s", id)}
	}
	return r.Clone(), nil
}

// Search returns previews of recipes whose title, publisher or any
// ingredient contains the query, sorted by title.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.Preview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	out := []domain.Preview{}
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, r.Preview())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Upload stores a new recipe under a fresh id and returns it.
func (s *MemorySource) Upload(ctx context.Context, upload *domain.Upload) (*domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &domain.Recipe{
		ID:          strings.ReplaceAll(uuid.NewString(), "-", "")[:24],
		Title:       upload.Title,
		Publisher:   upload.Publisher,
		SourceURL:   upload.SourceURL,
		Image:       upload.Image,
		Servings:    upload.Servings,
		CookingTime: upload.CookingTime,
		Ingredients: domain.CloneIngredients(upload.Ingredients),
		Key:         s.userKey,
	}

	s.mu.Lock()
	s.recipes[r.ID] = r
	s.mu.Unlock()

	s.log.Info("recipe uploaded: %s (%s)", r.Title, r.ID)
	return r.Clone(), nil
}

func matches(r *domain.Recipe, query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Publisher), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Description), query) {
			return true
		}
	}
	return false
}

// seed populates the catalog with built-in recipes.
func (s *MemorySource) seed() {
	recipes := []*domain.Recipe{
		pizzaDough(),
		margherita(),
		spicyPizzaSauce(),
		chickenAlfredo(),
		vegetableStirFry(),
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(recipes))
}

var q = domain.Quantity

func pizzaDough() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bcd09",
		Title:       "Homemade Pizza Dough",
		Publisher:   "Closet Cooking",
		SourceURL:   "http://www.closetcooking.com/2011/08/homemade-pizza-dough.html",
		Image:       "https://forkify-api.herokuapp.com/images/pizza-dough.jpg",
		Servings:    4,
		CookingTime: 75,
		Ingredients: []domain.Ingredient{
			{Quantity: q(4), Unit: "cups", Description: "bread flour"},
			{Quantity: q(1.5), Unit: "cups", Description: "warm water"},
			{Quantity: q(0.25), Unit: "oz", Description: "active dry yeast"},
			{Quantity: q(2), Unit: "tbsps", Description: "olive oil"},
			{Quantity: q(1), Unit: "tsp", Description: "sugar"},
			{Quantity: nil, Unit: "", Description: "Salt to taste"},
		},
	}
}

func margherita() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bc886",
		Title:       "Pizza Margherita",
		Publisher:   "Simply Recipes",
		SourceURL:   "http://www.simplyrecipes.com/recipes/pizza_margherita/",
		Image:       "https://forkify-api.herokuapp.com/images/margherita.jpg",
		Servings:    2,
		CookingTime: 45,
		Ingredients: []domain.Ingredient{
			{Quantity: nil, Unit: "", Description: "Pizza dough for one pizza"},
			{Quantity: q(0.5), Unit: "cup", Description: "tomato sauce"},
			{Quantity: q(4), Unit: "oz", Description: "fresh mozzarella"},
			{Quantity: q(6), Unit: "", Description: "basil leaves"},
			{Quantity: q(1), Unit: "tbsp", Description: "olive oil"},
		},
	}
}

func spicyPizzaSauce() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bca3b",
		Title:       "Spicy Pizza Sauce",
		Publisher:   "Two Peas and Their Pod",
		SourceURL:   "http://www.twopeasandtheirpod.com/spicy-pizza-sauce/",
		Image:       "https://forkify-api.herokuapp.com/images/pizza-sauce.jpg",
		Servings:    6,
		CookingTime: 30,
		Ingredients: []domain.Ingredient{
			{Quantity: q(28), Unit: "oz", Description: "crushed tomatoes"},
			{Quantity: q(3), Unit: "", Description: "garlic cloves, minced"},
			{Quantity: q(0.5), Unit: "tsp", Description: "red pepper flakes"},
			{Quantity: q(1), Unit: "tsp", Description: "dried oregano"},
		},
	}
}

func chickenAlfredo() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bc9a0",
		Title:       "Chicken Alfredo",
		Publisher:   "Forkify Kitchen",
		SourceURL:   "https://example.com/chicken-alfredo",
		Image:       "https://forkify-api.herokuapp.com/images/alfredo.jpg",
		Servings:    2,
		CookingTime: 35,
		Ingredients: []domain.Ingredient{
			{Quantity: q(250), Unit: "g", Description: "spaghetti"},
			{Quantity: q(2), Unit: "", Description: "chicken breasts"},
			{Quantity: q(1), Unit: "cup", Description: "creme fraiche"},
			{Quantity: q(1), Unit: "cup", Description: "grated gruyere cheese"},
			{Quantity: q(3), Unit: "tbsps", Description: "margarine"},
			{Quantity: q(4), Unit: "", Description: "garlic cloves"},
			{Quantity: nil, Unit: "", Description: "Salt and black pepper to taste"},
		},
	}
}

func vegetableStirFry() *domain.Recipe {
	return &domain.Recipe{
		ID:          "5ed6604591c37cdc054bc7f1",
		Title:       "Vegetable Stir Fry",
		Publisher:   "Forkify Kitchen",
		SourceURL:   "https://example.com/vegetable-stir-fry",
		Image:       "https://forkify-api.herokuapp.com/images/stir-fry.jpg",
		Servings:    2,
		CookingTime: 20,
		Ingredients: []domain.Ingredient{
			{Quantity: q(1), Unit: "", Description: "large bell pepper"},
			{Quantity: q(2), Unit: "cups", Description: "broccoli florets"},
			{Quantity: q(1), Unit: "cup", Description: "snap peas"},
			{Quantity: q(1), Unit: "tbsp", Description: "grated fresh ginger"},
			{Quantity: q(2), Unit: "tbsps", Description: "soy sauce"},
			{Quantity: q(1), Unit: "tbsp", Description: "sesame oil"},
		},
	}
}
