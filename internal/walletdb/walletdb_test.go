package walletdb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, n int) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE wallets (
		id INTEGER PRIMARY KEY,
		address TEXT UNIQUE NOT NULL,
		private_key TEXT NOT NULL,
		created_at TIMESTAMP
	)`)
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		_, err = db.Exec(`INSERT INTO wallets (id, address, private_key) VALUES (?, ?, ?)`,
			i, fmt.Sprintf("0x%040x", i), fmt.Sprintf("%064x", i))
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
}

func TestCount(t *testing.T) {
	st := newTestStore(t, 7)
	n, err := st.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
}

func TestCursorPagesInOrder(t *testing.T) {
	st := newTestStore(t, 3)
	cur := st.Cursor()

	page1, err := cur.NextPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.Equal(t, int64(1), page1[0].ID)
	require.Equal(t, int64(2), page1[1].ID)

	page2, err := cur.NextPage(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	require.Equal(t, int64(3), page2[0].ID)

	page3, err := cur.NextPage(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, page3)
}

func TestCursorRestartYieldsSameSequence(t *testing.T) {
	st := newTestStore(t, 5)

	read := func() []int64 {
		cur := st.Cursor()
		var ids []int64
		for {
			page, err := cur.NextPage(context.Background(), 2)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			for _, w := range page {
				ids = append(ids, w.ID)
			}
		}
		return ids
	}

	first := read()
	second := read()
	require.Equal(t, []int64{1, 2, 3, 4, 5}, first)
	require.Equal(t, first, second)
}

func TestNextPageRejectsBadLimit(t *testing.T) {
	st := newTestStore(t, 1)
	_, err := st.Cursor().NextPage(context.Background(), 0)
	require.Error(t, err)
}
