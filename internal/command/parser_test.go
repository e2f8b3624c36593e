package command

import (
	"testing"

	"github.com/hammamikhairi/forkify/internal/logger"
)

func TestParser(t *testing.T) {
	parser := NewParser(logger.New(logger.LevelOff, nil))

	tests := []struct {
		input    string
		wantKind Kind
		wantArg  string
	}{
		// Search
		{"search pizza", Search, "pizza"},
		{"s  garlic bread ", Search, "garlic bread"},
		{"FIND pasta", Search, "pasta"},

		// Open
		{"open 3", Open, "3"},
		{"pick 5ed6604591c37cdc054bc886", Open, "5ed6604591c37cdc054bc886"},
		{"2", Open, "2"},

		// Paging
		{"next", Next, ""},
		{"n", Next, ""},
		{"prev", Prev, ""},
		{"previous", Prev, ""},
		{"page 3", Page, "3"},

		// Servings
		{"servings 8", Servings, "8"},
		{"serve +", Servings, "+"},
		{"servings -", Servings, "-"},

		// Bookmarks
		{"bookmark", Bookmark, ""},
		{"fav", Bookmark, ""},
		{"bookmarks", Bookmarks, ""},
		{"bookmarks clear", ClearBookmarks, ""},

		// Shopping list
		{"shop", Shop, ""},
		{"shop add", ShopAdd, ""},
		{"list rm 2", ShopRemove, "2"},
		{"shop clear", ShopClear, ""},

		// Files
		{"export list.xlsx", Export, "list.xlsx"},
		{"upload soup.yaml", Upload, "soup.yaml"},

		// Misc
		{"show", Show, ""},
		{"?", Help, ""},
		{"exit", Quit, ""},

		// Unknown
		{"", Unknown, ""},
		{"servings lots", Unknown, "servings lots"},
		{"page", Unknown, "page"},
		{"123", Unknown, "123"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parser.Parse(tt.input)
			if got.Kind != tt.wantKind {
				t.Fatalf("Parse(%q) kind = %s, want %s", tt.input, got.Kind, tt.wantKind)
			}
			if got.Arg != tt.wantArg {
				t.Fatalf("Parse(%q) arg = %q, want %q", tt.input, got.Arg, tt.wantArg)
			}
		})
	}
}
