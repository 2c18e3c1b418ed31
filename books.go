package books

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/hook"
	"github.com/craftbooks/books/settings"
	"github.com/craftbooks/books/store"
)

// defaultUndoDepth is how many mutations can be rolled back.
const defaultUndoDepth = 5

// Books is the main bookkeeping engine.
type Books struct {
	store  store.Store
	hooks  *hook.Registry
	logger *slog.Logger
	clock  func() time.Time

	// seqMu serializes document number allocation so that a derived
	// next-number is applied against the same data it was derived from.
	seqMu sync.Mutex

	// Undo ring
	histMu    sync.Mutex
	history   []*store.Snapshot
	undoDepth int
}

// New creates a new Books instance.
func New(s store.Store, opts ...Option) *Books {
	b := &Books{
		store:     s,
		hooks:     hook.NewRegistry(),
		logger:    slog.Default(),
		clock:     time.Now,
		undoDepth: defaultUndoDepth,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Option configures a Books instance.
type Option func(*Books)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Books) {
		b.logger = logger
		b.hooks.WithLogger(logger)
	}
}

// WithHook registers a hook.
func WithHook(h hook.Hook) Option {
	return func(b *Books) {
		_ = b.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// WithClock sets the time source. Tests use a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(b *Books) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithUndoDepth sets how many mutations are kept for Undo.
func WithUndoDepth(depth int) Option {
	return func(b *Books) {
		if depth > 0 {
			b.undoDepth = depth
		}
	}
}

// Start migrates the store and seeds defaults for a fresh set of books.
func (b *Books) Start(ctx context.Context) error {
	if err := b.store.Migrate(ctx); err != nil {
		return err
	}

	// Seed the chart of accounts and settings on first run.
	codes, err := b.store.ListAccountCodes(ctx)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		if err := b.store.SaveAccountCodes(ctx, document.DefaultAccountCodes()); err != nil {
			return err
		}
	}
	if _, err := b.store.GetState(ctx); IsNotFound(err) {
		st := settings.Default()
		if err := b.store.SaveState(ctx, &st); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	b.hooks.EmitInit(ctx, b)

	b.logger.Info("books started",
		"hooks", b.hooks.Count(),
		"undo_depth", b.undoDepth,
	)

	return nil
}

// Stop shuts down Books.
func (b *Books) Stop() error {
	ctx := context.Background()
	b.hooks.EmitShutdown(ctx)

	return b.store.Close()
}

// Hooks returns the hook registry for late registration.
func (b *Books) Hooks() *hook.Registry { return b.hooks }

// withUndo snapshots the current state, runs the mutation, and keeps
// the snapshot for Undo if the mutation succeeded.
func (b *Books) withUndo(ctx context.Context, fn func() error) error {
	snap, err := b.store.Dump(ctx)
	if err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	b.pushHistory(snap)
	return nil
}

func (b *Books) pushHistory(snap *store.Snapshot) {
	b.histMu.Lock()
	defer b.histMu.Unlock()

	b.history = append(b.history, snap)
	if len(b.history) > b.undoDepth {
		b.history = b.history[len(b.history)-b.undoDepth:]
	}
}

// Undo rolls the books back to the state before the most recent
// mutation. Each successful mutation is one undo step, up to the
// configured depth.
func (b *Books) Undo(ctx context.Context) error {
	b.histMu.Lock()
	n := len(b.history)
	if n == 0 {
		b.histMu.Unlock()
		return ErrNothingToUndo
	}
	snap := b.history[n-1]
	b.history = b.history[:n-1]
	b.histMu.Unlock()

	if err := b.store.Restore(ctx, snap); err != nil {
		return err
	}

	b.hooks.EmitStateRestored(ctx, "undo")
	b.logger.Info("state rolled back", "remaining_undo_steps", n-1)
	return nil
}

// UndoDepth reports how many undo steps are currently available.
func (b *Books) UndoDepth() int {
	b.histMu.Lock()
	defer b.histMu.Unlock()
	return len(b.history)
}
