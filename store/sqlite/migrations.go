package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Books store (SQLite).
var Migrations = migrate.NewGroup("books")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_books_invoices",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_invoices (
    id               TEXT PRIMARY KEY,
    seq              INTEGER NOT NULL DEFAULT 0,
    customer_id      TEXT NOT NULL DEFAULT '',
    manual_customer  TEXT,
    created          TEXT NOT NULL DEFAULT (datetime('now')),
    due              TEXT NOT NULL DEFAULT (datetime('now')),
    items            TEXT NOT NULL DEFAULT '[]',
    meta             TEXT NOT NULL DEFAULT '{}',
    direct_materials REAL NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_invoices_customer ON books_invoices (customer_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_books_invoices_seq ON books_invoices (seq);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_invoices`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_orders",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_orders (
    id               TEXT PRIMARY KEY,
    seq              INTEGER NOT NULL DEFAULT 0,
    customer_id      TEXT NOT NULL DEFAULT '',
    manual_customer  TEXT,
    status           TEXT NOT NULL DEFAULT 'Pending',
    created          TEXT NOT NULL DEFAULT (datetime('now')),
    items            TEXT NOT NULL DEFAULT '[]',
    meta             TEXT NOT NULL DEFAULT '{}',
    direct_materials REAL NOT NULL DEFAULT 0,
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_orders_customer ON books_orders (customer_id);
CREATE INDEX IF NOT EXISTS idx_books_orders_status ON books_orders (status);
CREATE UNIQUE INDEX IF NOT EXISTS idx_books_orders_seq ON books_orders (seq);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_orders`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_customers",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_customers (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    phone      TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_customers_name ON books_customers (name);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_customers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_payments",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_payments (
    id         TEXT PRIMARY KEY,
    invoice_id TEXT NOT NULL DEFAULT '',
    amount     REAL NOT NULL DEFAULT 0,
    method     TEXT NOT NULL DEFAULT '',
    date       TEXT NOT NULL DEFAULT (datetime('now')),
    note       TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_payments_invoice ON books_payments (invoice_id);
CREATE INDEX IF NOT EXISTS idx_books_payments_date ON books_payments (date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_payments`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_expenses",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_expenses (
    id         TEXT PRIMARY KEY,
    category   TEXT NOT NULL DEFAULT '',
    amount     REAL NOT NULL DEFAULT 0,
    date       TEXT NOT NULL DEFAULT (datetime('now')),
    vendor     TEXT NOT NULL DEFAULT '',
    note       TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_expenses_category ON books_expenses (category);
CREATE INDEX IF NOT EXISTS idx_books_expenses_date ON books_expenses (date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_expenses`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_account_codes",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_account_codes (
    code     TEXT PRIMARY KEY,
    name     TEXT NOT NULL DEFAULT '',
    rate     REAL,
    type     TEXT NOT NULL DEFAULT 'credit',
    position INTEGER NOT NULL DEFAULT 0
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_account_codes`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_books_state",
			Version: "20250101000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS books_state (
    id          INTEGER PRIMARY KEY CHECK (id = 1),
    settings    TEXT NOT NULL DEFAULT '{}',
    branding    TEXT NOT NULL DEFAULT '{}',
    last_backup TEXT
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS books_state`)
				return err
			},
		},
	)
}
