package ui

import (
	"fmt"
	"time"

	"github.com/mithrel/notion2md/internal/archive"
)

// FormatRecord returns a human-readable detail view of an archived
// conversion, matching the `archive show` output.
func FormatRecord(r archive.Record) string {
	return fmt.Sprintf(
		"ID: %s\nCreated: %s\nTitle: %s\nSource: %s\nBlocks: %d\n---\n%s",
		r.ID,
		r.CreatedAt.Local().Format(time.RFC3339),
		r.Title,
		r.Source,
		r.Blocks,
		r.Markdown,
	)
}
