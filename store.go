package portfolio

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a path has no metadata override.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding per-path metadata overrides.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the page cache read while the admin API writes; writers wait
	// on busy_timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    path TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL
);
`)
	return err
}

// GetPage returns the override stored for path.
func (s *Store) GetPage(path string) (PageMeta, error) {
	var title, description, image, updated string
	err := s.db.QueryRow(`SELECT title, description, image, updated_at FROM pages WHERE path = ?`, path).
		Scan(&title, &description, &image, &updated)
	if err != nil {
		return PageMeta{}, err
	}
	return PageMeta{
		Path:        path,
		Title:       title,
		Description: description,
		Image:       image,
		UpdatedAt:   parseTimestamp(updated),
	}, nil
}

// ListPages returns every override ordered by path.
func (s *Store) ListPages() ([]PageMeta, error) {
	rows, err := s.db.Query(`SELECT path, title, description, image, updated_at FROM pages ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageMeta
	for rows.Next() {
		var path, title, description, image, updated string
		if err := rows.Scan(&path, &title, &description, &image, &updated); err != nil {
			return nil, err
		}
		pages = append(pages, PageMeta{
			Path:        path,
			Title:       title,
			Description: description,
			Image:       image,
			UpdatedAt:   parseTimestamp(updated),
		})
	}
	return pages, rows.Err()
}

// SavePage upserts an override and stamps its UpdatedAt. The path is
// normalized; the caller validates the metadata.
func (s *Store) SavePage(p PageMeta) (PageMeta, error) {
	path, err := NormalizePath(p.Path)
	if err != nil {
		return PageMeta{}, err
	}
	p.Path = path
	p.UpdatedAt = s.now().UTC().Truncate(time.Second)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO pages (path, title, description, image, updated_at) VALUES (?, ?, ?, ?, ?)`,
		p.Path, p.Title, p.Description, p.Image, p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return PageMeta{}, err
	}
	return p, nil
}

// DeletePage removes the override for path. Deleting a missing path returns
// ErrNotFound.
func (s *Store) DeletePage(path string) error {
	res, err := s.db.Exec(`DELETE FROM pages WHERE path = ?`, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
