package books

import (
	"context"
	"strings"

	"github.com/craftbooks/books/document"
	"github.com/craftbooks/books/settings"
)

// ──────────────────────────────────────────────────
// Settings and Account Codes
// ──────────────────────────────────────────────────

// AccountCodes returns the configured chart of account codes.
func (b *Books) AccountCodes(ctx context.Context) ([]document.AccountCode, error) {
	return b.store.ListAccountCodes(ctx)
}

// SaveAccountCodes replaces the chart of account codes. Codes must be
// non-empty and unique.
func (b *Books) SaveAccountCodes(ctx context.Context, codes []document.AccountCode) error {
	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		code := strings.TrimSpace(c.Code)
		if code == "" {
			return ValidationError{Field: "code", Message: "account code is required"}
		}
		if seen[code] {
			return ValidationError{Field: "code", Message: "duplicate account code " + code}
		}
		seen[code] = true
	}

	return b.withUndo(ctx, func() error {
		return b.store.SaveAccountCodes(ctx, codes)
	})
}

// ResetAccountCodes restores the built-in chart of account codes.
func (b *Books) ResetAccountCodes(ctx context.Context) error {
	return b.withUndo(ctx, func() error {
		return b.store.SaveAccountCodes(ctx, document.DefaultAccountCodes())
	})
}

// State returns the application settings and branding.
func (b *Books) State(ctx context.Context) (*settings.State, error) {
	return b.store.GetState(ctx)
}

// UpdateSettings replaces the locale and currency preferences.
func (b *Books) UpdateSettings(ctx context.Context, s settings.Settings) error {
	state, err := b.store.GetState(ctx)
	if err != nil {
		return err
	}
	state.Settings = s

	return b.withUndo(ctx, func() error {
		return b.store.SaveState(ctx, state)
	})
}

// UpdateBranding replaces the document branding configuration.
func (b *Books) UpdateBranding(ctx context.Context, br settings.Branding) error {
	state, err := b.store.GetState(ctx)
	if err != nil {
		return err
	}
	state.Branding = br

	return b.withUndo(ctx, func() error {
		return b.store.SaveState(ctx, state)
	})
}
