package archive

import "github.com/mithrel/notion2md/internal/util"

// Find returns up to n records whose title or source fuzzily matches query,
// best match first. An empty query returns the records unchanged.
func Find(records []Record, query string, n int) []Record {
	if query == "" {
		if n > 0 && len(records) > n {
			return records[:n]
		}
		return records
	}
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = Label(r)
	}
	idx := util.ScoreIndexes(query, labels, n)
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, records[i])
	}
	return out
}

// Label is the searchable text of a record: its title, else its source.
func Label(r Record) string {
	switch {
	case r.Title != "" && r.Source != "":
		return r.Title + " (" + r.Source + ")"
	case r.Title != "":
		return r.Title
	default:
		return r.Source
	}
}
