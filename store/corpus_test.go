package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/persistence"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/store"
)

func TestCorpusStore_SaveLoad(t *testing.T) {
	t.Parallel()

	corpora := store.NewCorpusStore(filepath.Join(t.TempDir(), "texts"))
	corpus := model.NewPageCorpus("doc", []string{"first page", "second page"})

	require.NoError(t, corpora.Save(corpus))
	assert.Equal(t, store.Checksum(corpus.Pages), corpus.Checksum)

	loaded, err := corpora.Load("doc")
	require.NoError(t, err)
	assert.Equal(t, corpus, loaded)

	ids, err := corpora.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, ids)
}

func TestCorpusStore_LoadMissing(t *testing.T) {
	t.Parallel()

	corpora := store.NewCorpusStore(t.TempDir())

	_, err := corpora.Load("missing")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))

	err = corpora.Delete("missing")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestCorpusStore_DetectsCorruption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(t *testing.T, path string)
	}{
		{
			name: "tampered text",
			write: func(t *testing.T, path string) {
				corpus := model.NewPageCorpus("doc", []string{"tampered"})
				corpus.Checksum = 42
				require.NoError(t, persistence.SaveGob(path, corpus))
			},
		},
		{
			name: "wrong document",
			write: func(t *testing.T, path string) {
				corpus := model.NewPageCorpus("other", []string{"text"})
				corpus.Checksum = store.Checksum(corpus.Pages)
				require.NoError(t, persistence.SaveGob(path, corpus))
			},
		},
		{
			name: "garbage bytes",
			write: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("not a gob"), 0600))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.write(t, filepath.Join(dir, "doc.gob"))

			_, err := store.NewCorpusStore(dir).Load("doc")
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalErrors.ErrCorruptCorpus), "got %v", err)
		})
	}
}

func TestCorpusStore_Delete(t *testing.T) {
	t.Parallel()

	corpora := store.NewCorpusStore(t.TempDir())
	require.NoError(t, corpora.Save(model.NewPageCorpus("doc", []string{"text"})))

	require.NoError(t, corpora.Delete("doc"))
	_, err := corpora.Load("doc")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestCorpusStore_RejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	corpora := store.NewCorpusStore(t.TempDir())
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		_, err := corpora.Load(id)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput), "id %q", id)
	}
}

func TestCorpusStore_IDsOfMissingDirectory(t *testing.T) {
	t.Parallel()

	ids, err := store.NewCorpusStore(filepath.Join(t.TempDir(), "absent")).IDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestChecksum(t *testing.T) {
	a := model.NewPageCorpus("doc", []string{"ab", "c"})
	b := model.NewPageCorpus("doc", []string{"a", "bc"})
	assert.NotEqual(t, store.Checksum(a.Pages), store.Checksum(b.Pages))
	assert.Equal(t, store.Checksum(a.Pages), store.Checksum(a.Pages))
}
