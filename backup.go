package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/craftbooks/books/store"
)

// backupMaxAge is how long a backup stays fresh before the books
// report that a new one is due.
const backupMaxAge = 7 * 24 * time.Hour

// ──────────────────────────────────────────────────
// Backup and Restore
// ──────────────────────────────────────────────────

// Backup writes a full snapshot of the books as indented JSON and
// stamps the settings with the backup time.
func (b *Books) Backup(ctx context.Context, w io.Writer) error {
	snap, err := b.store.Dump(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	state, err := b.store.GetState(ctx)
	if err != nil {
		if !IsNotFound(err) {
			return err
		}
		return nil
	}
	state.LastBackup = b.clock()
	if err := b.store.SaveState(ctx, state); err != nil {
		return err
	}

	b.logger.Info("backup written", "invoices", len(snap.Invoices), "orders", len(snap.Orders))
	return nil
}

// RestoreBackup replaces the entire books with the contents of a
// previously written backup. The current state is pushed onto the undo
// history first.
func (b *Books) RestoreBackup(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBackup, err)
	}
	if snap.Version != 0 && snap.Version != store.SnapshotVersion {
		return fmt.Errorf("%w: got version %d, want %d", ErrBackupVersion, snap.Version, store.SnapshotVersion)
	}

	if err := b.withUndo(ctx, func() error {
		return b.store.Restore(ctx, &snap)
	}); err != nil {
		return err
	}

	b.hooks.EmitStateRestored(ctx, "backup-restore")
	b.logger.Info("backup restored", "invoices", len(snap.Invoices), "orders", len(snap.Orders))
	return nil
}

// NeedsBackup reports whether no backup has been taken yet or the last
// one is older than a week.
func (b *Books) NeedsBackup(ctx context.Context) (bool, error) {
	state, err := b.store.GetState(ctx)
	if err != nil {
		if IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	if state.LastBackup.IsZero() {
		return true, nil
	}
	return b.clock().Sub(state.LastBackup) > backupMaxAge, nil
}
