package archive

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type sqliteStore struct{ db *sql.DB }

// OpenSQLite opens (creating if needed) the archive database at path using
// the modernc.org/sqlite driver and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS records (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  source TEXT NOT NULL,
  markdown TEXT NOT NULL,
  blocks INTEGER NOT NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at DESC, id);
`)
	return err
}

func (s *sqliteStore) Put(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO records(id, title, source, markdown, blocks, created_at) VALUES(?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title, source=excluded.source, markdown=excluded.markdown,
  blocks=excluded.blocks, created_at=excluded.created_at`,
		r.ID, r.Title, r.Source, r.Markdown, r.Blocks, r.CreatedAt.UTC())
	return err
}

func (s *sqliteStore) Get(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, source, markdown, blocks, created_at FROM records WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id = ? DESC LIMIT 2`,
		id, len(id), id, id)
	if err != nil {
		return Record{}, err
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Record{}, err
	}
	switch {
	case len(found) == 0:
		return Record{}, ErrNotFound
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return Record{}, ErrAmbiguous
	}
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]Record, error) {
	q := `SELECT id, title, source, markdown, blocks, created_at FROM records ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, r.ID)
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var r Record
	if err := sc.Scan(&r.ID, &r.Title, &r.Source, &r.Markdown, &r.Blocks, &r.CreatedAt); err != nil {
		return Record{}, err
	}
	return r, nil
}
