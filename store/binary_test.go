package store_test

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/store"
)

func TestBinaryStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	binaries := store.NewBinaryStore(dir)

	n, err := binaries.Save("doc.pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)

	r, err := binaries.Open("doc.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "%PDF-1.4 body", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, binaries.Delete("doc.pdf"))
	require.NoError(t, binaries.Delete("doc.pdf"))

	_, err = binaries.Open("doc.pdf")
	assert.True(t, errors.Is(err, internalErrors.ErrDocumentNotFound))
}

func TestBinaryStore_PathStaysInDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	binaries := store.NewBinaryStore(dir)
	assert.Equal(t, binaries.Path("evil.pdf"), binaries.Path("../../evil.pdf"))
}
