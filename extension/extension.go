// Package extension provides the Forge extension adapter for Books.
//
// It implements the forge.Extension interface to integrate Books
// into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.books" or "books" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	books "github.com/craftbooks/books"
	"github.com/craftbooks/books/store"
	"github.com/craftbooks/books/store/jsonfile"
	"github.com/craftbooks/books/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "books"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Small-business bookkeeping engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Books as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config   Config
	engine   *books.Books
	store    store.Store
	bookOpts []books.Option
}

// New creates a new Books Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Books instance.
// This is nil until Register is called.
func (e *Extension) Engine() *books.Books { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the books engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Pick a store: programmatic store wins, then the configured data
	// file, then memory.
	if e.store == nil {
		if e.config.DataFile != "" {
			st, err := jsonfile.Open(e.config.DataFile)
			if err != nil {
				return err
			}
			e.store = st
		} else {
			e.store = memory.New()
		}
	}

	opts := e.buildBookOpts()

	eng := books.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*books.Books, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("books: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("books: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildBookOpts constructs books.Option values from the resolved config.
func (e *Extension) buildBookOpts() []books.Option {
	opts := make([]books.Option, 0, len(e.bookOpts)+1)

	if e.config.UndoDepth > 0 {
		opts = append(opts, books.WithUndoDepth(e.config.UndoDepth))
	}

	// Append any pass-through books options.
	opts = append(opts, e.bookOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("books: configuration is required but not found in config files; " +
				"ensure 'extensions.books' or 'books' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("books: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("data_file", e.config.DataFile),
		forge.F("undo_depth", e.config.UndoDepth),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.books" first (namespaced pattern).
	if cm.IsSet("extensions.books") {
		if err := cm.Bind("extensions.books", &cfg); err == nil {
			e.Logger().Debug("books: loaded config from file",
				forge.F("key", "extensions.books"),
			)
			return cfg, true
		}
		e.Logger().Warn("books: failed to bind extensions.books config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "books" key.
	if cm.IsSet("books") {
		if err := cm.Bind("books", &cfg); err == nil {
			e.Logger().Debug("books: loaded config from file",
				forge.F("key", "books"),
			)
			return cfg, true
		}
		e.Logger().Warn("books: failed to bind books config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.UndoDepth == 0 {
		cfg.UndoDepth = defaults.UndoDepth
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.DataFile == "" && programmaticConfig.DataFile != "" {
		yamlConfig.DataFile = programmaticConfig.DataFile
	}

	// Int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.UndoDepth == 0 && programmaticConfig.UndoDepth != 0 {
		yamlConfig.UndoDepth = programmaticConfig.UndoDepth
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
