package extension

import (
	books "github.com/craftbooks/books"
	"github.com/craftbooks/books/hook"
	"github.com/craftbooks/books/store"
)

// Option configures the Books Forge extension.
type Option func(*Extension)

// WithStore sets the store for the books engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithBooksOption passes a books.Option through to the underlying engine.
func WithBooksOption(opt books.Option) Option {
	return func(e *Extension) {
		e.bookOpts = append(e.bookOpts, opt)
	}
}

// WithHook registers a books hook.
func WithHook(h hook.Hook) Option {
	return func(e *Extension) {
		e.bookOpts = append(e.bookOpts, books.WithHook(h))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration and seeding on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithDataFile sets the path of the JSON data file.
func WithDataFile(path string) Option {
	return func(e *Extension) { e.config.DataFile = path }
}

// WithUndoDepth sets how many undo points are retained.
func WithUndoDepth(depth int) Option {
	return func(e *Extension) { e.config.UndoDepth = depth }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
