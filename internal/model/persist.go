package model

import (
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/forkify/internal/domain"
)

// Storage keys.
const (
	KeyBookmarks    = "bookmarks"
	KeyShoppingList = "shoppingList"
)

// Persistence stores the bookmarks and the shopping list as JSON arrays in
// a key/value store. Every save rewrites the whole collection.
type Persistence struct {
	kv domain.KeyValueStore
}

// NewPersistence wraps kv.
func NewPersistence(kv domain.KeyValueStore) *Persistence {
	return &Persistence{kv: kv}
}

// Load reads both collections. Missing keys yield empty collections.
func (p *Persistence) Load() ([]domain.Recipe, []domain.ShoppingItem, error) {
	var bookmarks []domain.Recipe
	if err := p.read(KeyBookmarks, &bookmarks); err != nil {
		return nil, nil, err
	}
	var list []domain.ShoppingItem
	if err := p.read(KeyShoppingList, &list); err != nil {
		return nil, nil, err
	}
	return bookmarks, list, nil
}

// SaveBookmarks rewrites the bookmarks entry.
func (p *Persistence) SaveBookmarks(bookmarks []domain.Recipe) error {
	return p.write(KeyBookmarks, bookmarks)
}

// ClearBookmarks removes the bookmarks entry entirely.
func (p *Persistence) ClearBookmarks() error {
	return p.remove(KeyBookmarks)
}

// SaveShoppingList rewrites the shopping list entry.
func (p *Persistence) SaveShoppingList(items []domain.ShoppingItem) error {
	return p.write(KeyShoppingList, items)
}

// ClearShoppingList removes the shopping list entry entirely.
func (p *Persistence) ClearShoppingList() error {
	return p.remove(KeyShoppingList)
}

func (p *Persistence) read(key string, out any) error {
	b, ok, err := p.kv.Get(key)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrStorage, key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

func (p *Persistence) write(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, key, err)
	}
	if err := p.kv.Set(key, b); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}

func (p *Persistence) remove(key string) error {
	if err := p.kv.Remove(key); err != nil {
		return fmt.Errorf("%w: remove %s: %v", domain.ErrStorage, key, err)
	}
	return nil
}
