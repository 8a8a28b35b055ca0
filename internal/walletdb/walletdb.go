package walletdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Wallet is one row of the wallets table. The store is read-only from this
// package's perspective; rows are only ever consumed in ascending id order.
type Wallet struct {
	ID         int64
	Address    string
	PrivateKey string
}

type Store struct {
	db *sql.DB
}

// Open opens an existing wallets database. A missing file is an error so a
// typo'd path cannot silently start a pass over an empty store.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("wallet database not found: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open wallet database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Count returns the total number of wallets in the store.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wallets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count wallets: %w", err)
	}
	return n, nil
}

// Cursor pages through the wallets table in ascending id order. Each cursor
// is single-reader; re-running a fresh cursor yields the same sequence as
// long as the table is not mutated.
type Cursor struct {
	db     *sql.DB
	lastID int64
}

func (s *Store) Cursor() *Cursor {
	return &Cursor{db: s.db}
}

// NextPage returns up to limit wallets with id greater than the last page's
// highest id. An empty slice means the store is exhausted.
func (c *Cursor) NextPage(ctx context.Context, limit int) ([]Wallet, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("page limit must be positive, got %d", limit)
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, address, private_key FROM wallets WHERE id > ? ORDER BY id LIMIT ?`,
		c.lastID, limit)
	if err != nil {
		return nil, fmt.Errorf("query wallet page: %w", err)
	}
	defer rows.Close()

	var page []Wallet
	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.ID, &w.Address, &w.PrivateKey); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		page = append(page, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	if n := len(page); n > 0 {
		c.lastID = page[n-1].ID
	}
	return page, nil
}
