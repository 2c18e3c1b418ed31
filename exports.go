package books

import "github.com/craftbooks/books/types"

// Re-export common types for convenience so users don't have to import types package.

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Entity constructor
var NewEntity = types.NewEntity

// Re-export display helpers
var (
	Display      = types.Display
	DisplayMajor = types.DisplayMajor
)
