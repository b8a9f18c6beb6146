package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

// Timestamps are stored with a fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ services.CatalogStore = (*CatalogStore)(nil)

// CatalogStore keeps document metadata in SQLite.
type CatalogStore struct {
	db   *sql.DB
	path string
}

// OpenCatalog opens the catalog database at path and creates the schema if needed.
// Use ":memory:" for an in-memory catalog.
func OpenCatalog(path string) (*CatalogStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite only supports one writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to catalog: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	s := &CatalogStore{db: conn, path: path}
	if err := s.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return s, nil
}

func (s *CatalogStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			published_date TEXT,
			added_date TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			original_filename TEXT NOT NULL DEFAULT '',
			file_type TEXT NOT NULL DEFAULT 'UNKNOWN',
			num_pages INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_documents_added_date ON documents(added_date, id);
	`)
	return err
}

// Close closes the database connection.
func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create inserts doc. AddedDate is set to now when zero.
func (s *CatalogStore) Create(ctx context.Context, doc *model.Document) error {
	if err := validateID(doc.ID); err != nil {
		return err
	}
	if doc.AddedDate.IsZero() {
		doc.AddedDate = time.Now()
	}
	doc.AddedDate = doc.AddedDate.UTC()

	var published sql.NullString
	if doc.PublishedDate != nil {
		published = sql.NullString{String: doc.PublishedDate.UTC().Format(timeLayout), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, author, published_date, added_date, filename, original_filename, file_type, num_pages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.Author, published, doc.AddedDate.Format(timeLayout),
		doc.Filename, doc.OriginalFilename, string(doc.FileType), doc.NumPages)
	if err != nil {
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}
	return nil
}

const selectDocument = `
	SELECT id, title, author, published_date, added_date, filename, original_filename, file_type, num_pages
	FROM documents`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		doc       model.Document
		published sql.NullString
		added     string
		fileType  string
	)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Author, &published, &added,
		&doc.Filename, &doc.OriginalFilename, &fileType, &doc.NumPages); err != nil {
		return nil, err
	}

	addedDate, err := time.Parse(timeLayout, added)
	if err != nil {
		return nil, fmt.Errorf("failed to parse added_date of %s: %w", doc.ID, err)
	}
	doc.AddedDate = addedDate
	if published.Valid {
		publishedDate, err := time.Parse(timeLayout, published.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published_date of %s: %w", doc.ID, err)
		}
		doc.PublishedDate = &publishedDate
	}
	doc.FileType = model.FileType(fileType)
	return &doc, nil
}

// Get retrieves a document by ID.
func (s *CatalogStore) Get(ctx context.Context, documentID string) (*model.Document, error) {
	doc, err := scanDocument(s.db.QueryRowContext(ctx, selectDocument+` WHERE id = ?`, documentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internalErrors.NewDocumentNotFoundError(documentID)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns every document ordered by added date, then ID.
func (s *CatalogStore) List(ctx context.Context) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx, selectDocument+` ORDER BY added_date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []*model.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete removes a document's catalog entry.
func (s *CatalogStore) Delete(ctx context.Context, documentID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internalErrors.NewDocumentNotFoundError(documentID)
	}
	return nil
}
