package manifest

import (
	"log/slog"

	"github.com/starford/notion2hugo/internal/parser"
	"github.com/starford/notion2hugo/internal/storage"
)

// Sync walks the pages under contentDir and brings the manifest up to date:
//   - new/changed pages are parsed and upserted
//   - pages removed from disk are deleted from the manifest
func Sync(db *DB, site storage.Provider, contentDir, indexFile string, logger *slog.Logger) error {
	metas, err := site.List(contentDir, indexFile)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := site.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := db.Upsert(pageRow(m, data, logger), linkTargets(data)); err != nil {
			logger.Warn("sync: upsert failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: recorded", slog.String("path", m.Path))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.Delete(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// pageRow builds the row for one page. A header that fails to parse leaves
// only the path and checksum filled in.
func pageRow(m storage.FileMeta, data []byte, logger *slog.Logger) PageRow {
	row := PageRow{
		Path:      m.Path,
		Checksum:  m.Checksum,
		UpdatedAt: m.UpdatedAt,
	}
	h, _, err := parser.SplitHeader(data)
	if err != nil {
		logger.Warn("sync: bad header", slog.String("path", m.Path), slog.String("error", err.Error()))
		return row
	}
	if h != nil {
		row.Title = h.Title
		row.Slug = h.Slug
		row.Weight = h.Weight
		row.Tags = h.Tags
	}
	return row
}

func linkTargets(data []byte) []string {
	links := parser.Links(data)
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.URL)
	}
	return out
}
