package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/store"
)

func setupTestCatalog(t *testing.T) *store.CatalogStore {
	t.Helper()
	catalog, err := store.OpenCatalog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func TestCatalogStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	catalog := setupTestCatalog(t)
	ctx := context.Background()
	published := time.Date(1999, 3, 14, 0, 0, 0, 0, time.UTC)

	doc := &model.Document{
		ID:               "doc-1",
		Title:            "Pedro Páramo",
		Author:           "Juan Rulfo",
		PublishedDate:    &published,
		Filename:         "doc-1.pdf",
		OriginalFilename: "paramo.pdf",
		FileType:         model.FileTypePDF,
		NumPages:         124,
	}
	require.NoError(t, catalog.Create(ctx, doc))
	assert.False(t, doc.AddedDate.IsZero(), "AddedDate should be set")

	got, err := catalog.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.Author, got.Author)
	assert.Equal(t, model.FileTypePDF, got.FileType)
	assert.Equal(t, 124, got.NumPages)
	assert.Equal(t, "paramo.pdf", got.OriginalFilename)
	require.NotNil(t, got.PublishedDate)
	assert.True(t, published.Equal(*got.PublishedDate))
	assert.True(t, doc.AddedDate.Equal(got.AddedDate))
}

func TestCatalogStore_GetNotFound(t *testing.T) {
	t.Parallel()

	catalog := setupTestCatalog(t)

	_, err := catalog.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestCatalogStore_CreateRejects(t *testing.T) {
	t.Parallel()

	catalog := setupTestCatalog(t)
	ctx := context.Background()

	err := catalog.Create(ctx, &model.Document{ID: "../escape"})
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

	require.NoError(t, catalog.Create(ctx, &model.Document{ID: "dup"}))
	assert.Error(t, catalog.Create(ctx, &model.Document{ID: "dup"}))
}

func TestCatalogStore_ListOrder(t *testing.T) {
	t.Parallel()

	catalog := setupTestCatalog(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, doc := range []*model.Document{
		{ID: "c", AddedDate: base.Add(2 * time.Hour)},
		{ID: "b", AddedDate: base},
		{ID: "a", AddedDate: base},
		{ID: "d", AddedDate: base.Add(500 * time.Millisecond)},
	} {
		require.NoError(t, catalog.Create(ctx, doc))
	}

	docs, err := catalog.List(ctx)
	require.NoError(t, err)

	var ids []string
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids)
}

func TestCatalogStore_ListEmpty(t *testing.T) {
	t.Parallel()

	docs, err := setupTestCatalog(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestCatalogStore_Delete(t *testing.T) {
	t.Parallel()

	catalog := setupTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, catalog.Create(ctx, &model.Document{ID: "doc"}))

	require.NoError(t, catalog.Delete(ctx, "doc"))
	_, err := catalog.Get(ctx, "doc")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))

	err = catalog.Delete(ctx, "doc")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestCatalogStore_PersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	catalog, err := store.OpenCatalog(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Create(ctx, &model.Document{ID: "kept", Title: "Kept"}))
	require.NoError(t, catalog.Close())

	reopened, err := store.OpenCatalog(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.Get(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)
}
