package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	d, err := sql.Open("sqlite", "file::memory:?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)

	_, err = d.Exec(`
		CREATE TABLE documents (
			id         TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT (datetime('now')),
			updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
		);
	`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDocumentStoreCreate(t *testing.T) {
	docs := NewDocumentStore(openTestDB(t))
	ctx := context.Background()

	doc, err := docs.Create(ctx, []byte(`[]`))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, []byte(`[]`), doc.Body)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestDocumentStoreGetMissing(t *testing.T) {
	docs := NewDocumentStore(openTestDB(t))

	doc, err := docs.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDocumentStorePutOverwritesWholesale(t *testing.T) {
	docs := NewDocumentStore(openTestDB(t))
	ctx := context.Background()

	doc, err := docs.Create(ctx, []byte(`[{"id":"p1"}]`))
	require.NoError(t, err)

	require.NoError(t, docs.Put(ctx, doc.ID, []byte(`[{"id":"p2"}]`)))

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"p2"}]`), got.Body)
}

func TestDocumentStorePutMissing(t *testing.T) {
	docs := NewDocumentStore(openTestDB(t))

	err := docs.Put(context.Background(), "nope", []byte(`[]`))
	assert.ErrorContains(t, err, "not found")
}

func TestDocumentStoreDelete(t *testing.T) {
	docs := NewDocumentStore(openTestDB(t))
	ctx := context.Background()

	doc, err := docs.Create(ctx, []byte(`[]`))
	require.NoError(t, err)

	require.NoError(t, docs.Delete(ctx, doc.ID))

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
