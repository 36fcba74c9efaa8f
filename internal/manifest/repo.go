package manifest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/notion2hugo/internal/apperr"
)

// PageRow represents a row in the pages table.
type PageRow struct {
	Path      string
	Title     string
	Slug      string
	Weight    int
	Tags      []string
	Checksum  string
	UpdatedAt time.Time
}

const pageColumns = `path, title, slug, weight, tags, checksum, updated_at`

// Upsert inserts or replaces a page and its outgoing links within a transaction.
func (db *DB) Upsert(p PageRow, links []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("manifest: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if p.Tags == nil {
		p.Tags = []string{}
	}
	tagsJSON, _ := json.Marshal(p.Tags)

	_, err = tx.Exec(`
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			slug       = excluded.slug,
			weight     = excluded.weight,
			tags       = excluded.tags,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, p.Path, p.Title, p.Slug, p.Weight, string(tagsJSON), p.Checksum, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("manifest: upsert page: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM links WHERE source = ?`, p.Path); err != nil {
		return fmt.Errorf("manifest: clear links: %w", err)
	}
	if len(links) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO links (source, target) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("manifest: prepare link insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range links {
			if _, err := stmt.Exec(p.Path, target); err != nil {
				return fmt.Errorf("manifest: insert link: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Delete removes a page and its outgoing links.
func (db *DB) Delete(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("manifest: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM links WHERE source = ?`, path); err != nil {
		return fmt.Errorf("manifest: delete links: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM pages WHERE path = ?`, path); err != nil {
		return fmt.Errorf("manifest: delete page: %w", err)
	}
	return tx.Commit()
}

// Get returns one page by path.
func (db *DB) Get(path string) (*PageRow, error) {
	row := db.conn.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE path = ?`, path)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("manifest: page %q: %w", path, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: get: %w", err)
	}
	return p, nil
}

// List returns every page ordered by path.
func (db *DB) List() ([]PageRow, error) {
	return db.query(`SELECT ` + pageColumns + ` FROM pages ORDER BY path`)
}

// ByTag returns the pages carrying tag, ordered by path.
func (db *DB) ByTag(tag string) ([]PageRow, error) {
	return db.query(`
		SELECT `+pageColumns+` FROM pages
		WHERE EXISTS (SELECT 1 FROM json_each(pages.tags) WHERE json_each.value = ?)
		ORDER BY path`, tag)
}

// Backlinks returns the pages whose body links to target.
func (db *DB) Backlinks(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT source FROM links WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("manifest: backlinks: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every page.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("manifest: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

func (db *DB) query(q string, args ...any) ([]PageRow, error) {
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("manifest: query: %w", err)
	}
	defer rows.Close()

	var out []PageRow
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("manifest: scan: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(s scanner) (*PageRow, error) {
	var p PageRow
	var tagsJSON string
	if err := s.Scan(&p.Path, &p.Title, &p.Slug, &p.Weight, &tagsJSON, &p.Checksum, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %q: %w", p.Path, err)
	}
	return &p, nil
}
