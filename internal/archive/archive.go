// Package archive keeps a local history of converted documents.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/mithrel/notion2md/pkg/api"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Record is one archived conversion. ID is the document content hash, so
// converting the same content twice updates a single record.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Markdown  string    `json:"markdown"`
	Blocks    int       `json:"blocks"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord builds the record for a rendered document.
func NewRecord(doc api.Document, source, markdown string, now time.Time) Record {
	return Record{
		ID:        doc.Hash(),
		Title:     doc.Title(),
		Source:    source,
		Markdown:  markdown,
		Blocks:    doc.Count(),
		CreatedAt: now.UTC(),
	}
}

// Store persists records.
type Store interface {
	// Put inserts r or replaces the record with the same ID.
	Put(ctx context.Context, r Record) error
	// Get looks a record up by full ID or unique ID prefix.
	Get(ctx context.Context, id string) (Record, error)
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
