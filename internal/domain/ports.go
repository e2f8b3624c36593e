package domain

import "context"

// RecipeAPI is the remote recipe catalog. Implementations can talk HTTP to
// the hosted API or serve an in-memory catalog.
type RecipeAPI interface {
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]Preview, error)
	Upload(ctx context.Context, upload *Upload) (*Recipe, error)
}

// Upload is the validated recipe sent to RecipeAPI.Upload.
type Upload struct {
	Title       string
	SourceURL   string
	Image       string
	Publisher   string
	CookingTime int
	Servings    int
	Ingredients []Ingredient
}

// KeyValueStore is durable storage for JSON blobs scoped to one origin.
// Get reports ok=false when the key has never been written or was removed.
type KeyValueStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}
