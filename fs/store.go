// Package fs provides the file-based documentation cache.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/cdpsupport"
)

// DefaultCacheDir is the cache directory used when none is configured.
const DefaultCacheDir = "./cdp_cache"

// Ensure Store implements cdpsupport.DocumentStore at compile time.
var _ cdpsupport.DocumentStore = (*Store)(nil)

// Store keeps one JSON file per platform, named <platform>_docs.json.
// Files are written to a temporary file first and renamed into place, so a
// reader never observes a partially written cache.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultCacheDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the cache file path for a platform.
func (s *Store) Path(platform cdpsupport.PlatformID) string {
	return filepath.Join(s.dir, string(platform)+"_docs.json")
}

// LoadDocuments reads the cached documents for a platform.
// Returns ENOTFOUND when the platform has never been cached.
func (s *Store) LoadDocuments(ctx context.Context, platform cdpsupport.PlatformID) ([]*cdpsupport.Document, error) {
	data, err := os.ReadFile(s.Path(platform))
	if errors.Is(err, os.ErrNotExist) {
		return nil, cdpsupport.Errorf(cdpsupport.ENOTFOUND, "no cached documents for %s", platform)
	} else if err != nil {
		return nil, err
	}

	var records []cachedDocument
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, cdpsupport.Errorf(cdpsupport.EINTERNAL, "corrupt cache file %s: %v", s.Path(platform), err)
	}
	docs := make([]*cdpsupport.Document, 0, len(records))
	for _, r := range records {
		doc := r.Document
		if doc.Platform == "" {
			doc.Platform = r.CDP
		}
		if doc.Platform == "" {
			doc.Platform = platform
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}

// cachedDocument accepts the older "cdp" key in place of "platform".
type cachedDocument struct {
	cdpsupport.Document
	CDP cdpsupport.PlatformID `json:"cdp"`
}

// SaveDocuments writes the documents for a platform as an indented JSON array.
func (s *Store) SaveDocuments(ctx context.Context, platform cdpsupport.PlatformID, docs []*cdpsupport.Document) error {
	if docs == nil {
		docs = []*cdpsupport.Document{}
	}
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, string(platform)+"_docs.*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.Path(platform)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
