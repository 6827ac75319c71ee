package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/cdpsupport"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cdpsupport.DocumentStore = (*Store)(nil)

// Store implements cdpsupport.DocumentStore using SQLite.
//
// A row in platforms marks that a crawl was persisted, so a platform whose
// crawl produced no documents still counts as cached.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// LoadDocuments returns a platform's documents in crawl order.
func (s *Store) LoadDocuments(ctx context.Context, platform cdpsupport.PlatformID) ([]*cdpsupport.Document, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT document_count FROM platforms WHERE id = ?`, string(platform)).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cdpsupport.Errorf(cdpsupport.ENOTFOUND, "no cached documents for %s", platform)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, content, content_hash, synthetic
		FROM documents
		WHERE platform_id = ?
		ORDER BY position
	`, string(platform))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*cdpsupport.Document, 0, count)
	for rows.Next() {
		doc := &cdpsupport.Document{Platform: platform}
		var hash string
		var synthetic int
		if err := rows.Scan(&doc.URL, &doc.Title, &doc.Content, &hash, &synthetic); err != nil {
			return nil, err
		}
		if hash != hashContent(doc.Content) {
			return nil, cdpsupport.Errorf(cdpsupport.EINTERNAL, "corrupt cache: content hash mismatch for %s", doc.URL)
		}
		doc.Synthetic = synthetic != 0
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveDocuments replaces a platform's documents in a single transaction.
func (s *Store) SaveDocuments(ctx context.Context, platform cdpsupport.PlatformID, docs []*cdpsupport.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE platform_id = ?`, string(platform)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO platforms (id, document_count, crawled_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document_count = excluded.document_count, crawled_at = excluded.crawled_at
	`, string(platform), len(docs), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, platform_id, url, title, content, content_hash, synthetic, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, doc := range docs {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), string(platform), doc.URL, doc.Title,
			doc.Content, hashContent(doc.Content), boolToInt(doc.Synthetic), i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CrawledAt returns when a platform's documents were last saved.
func (s *Store) CrawledAt(ctx context.Context, platform cdpsupport.PlatformID) (time.Time, error) {
	var crawledAt string
	err := s.db.QueryRowContext(ctx, `SELECT crawled_at FROM platforms WHERE id = ?`, string(platform)).Scan(&crawledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, cdpsupport.Errorf(cdpsupport.ENOTFOUND, "platform %s has not been crawled", platform)
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseRFC3339(crawledAt, "crawled_at")
}
