package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/notion2md/internal/archive"
)

// TSV columns: id, title, source, blocks, created
var headerLine = "id\ttitle\tsource\tblocks\tcreated\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// ShortID trims archive IDs for display.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}

// WritePlainRecords writes one aligned line per archive record.
func WritePlainRecords(w io.Writer, records []archive.Record, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, r := range records {
		line := fmt.Sprintf("%s\t%s\t%s\t%d\t%s\n",
			ShortID(r.ID), esc(r.Title), esc(r.Source), r.Blocks, r.CreatedAt.Local().Format(time.RFC3339))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}
