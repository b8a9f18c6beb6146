package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/persistence"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

const corpusExt = ".gob"

var _ services.CorpusStore = (*CorpusStore)(nil)

// CorpusStore keeps one gob file of page texts per document.
type CorpusStore struct {
	mu  sync.RWMutex
	dir string
}

// NewCorpusStore returns a store rooted at dir. The directory is created on first save.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{dir: dir}
}

func (s *CorpusStore) path(documentID string) string {
	return filepath.Join(s.dir, documentID+corpusExt)
}

// Checksum hashes the page numbers and texts of pages.
func Checksum(pages []model.PageText) uint64 {
	h := xxhash.New()
	for _, page := range pages {
		_, _ = h.WriteString(strconv.Itoa(page.PageNumber))
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(page.Text)
		_, _ = h.WriteString("\x00")
	}
	return h.Sum64()
}

// Save writes corpus, replacing any previous corpus for the same document.
// It sets corpus.Checksum.
func (s *CorpusStore) Save(corpus *model.PageCorpus) error {
	if err := validateID(corpus.DocumentID); err != nil {
		return err
	}
	corpus.Checksum = Checksum(corpus.Pages)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := persistence.SaveGob(s.path(corpus.DocumentID), corpus); err != nil {
		return fmt.Errorf("failed to save corpus for %s: %w", corpus.DocumentID, err)
	}
	return nil
}

// Load reads and verifies a document's corpus. A missing corpus is a
// DocumentNotFoundError; one that fails to decode or verify is a CorruptCorpusError.
func (s *CorpusStore) Load(documentID string) (*model.PageCorpus, error) {
	if err := validateID(documentID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var corpus model.PageCorpus
	if err := persistence.LoadGob(s.path(documentID), &corpus); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, internalErrors.NewDocumentNotFoundError(documentID, "content")
		}
		return nil, internalErrors.NewCorruptCorpusError(documentID, err)
	}
	if corpus.DocumentID != documentID {
		return nil, internalErrors.NewCorruptCorpusError(documentID, fmt.Errorf("corpus belongs to document %q", corpus.DocumentID))
	}
	if sum := Checksum(corpus.Pages); sum != corpus.Checksum {
		return nil, internalErrors.NewCorruptCorpusError(documentID, fmt.Errorf("checksum mismatch: stored %x, computed %x", corpus.Checksum, sum))
	}
	return &corpus, nil
}

// Delete removes a document's corpus.
func (s *CorpusStore) Delete(documentID string) error {
	if err := validateID(documentID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(documentID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return internalErrors.NewDocumentNotFoundError(documentID, "content")
		}
		return fmt.Errorf("failed to delete corpus for %s: %w", documentID, err)
	}
	return nil
}

// IDs lists the documents that have a stored corpus, sorted.
func (s *CorpusStore) IDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, corpusExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, corpusExt))
	}
	sort.Strings(ids)
	return ids, nil
}
