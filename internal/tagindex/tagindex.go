// Package tagindex appends the list of collected tags to each module page.
package tagindex

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strconv"

	"github.com/starford/notion2hugo/internal/storage"
	"github.com/starford/notion2hugo/internal/tags"
)

// DefaultHeading is the title of the appended section.
const DefaultHeading = "Critères"

// Writer appends tag sections below a content root.
type Writer struct {
	site       storage.Provider
	contentDir string
	indexFile  string
	heading    string
	logger     *slog.Logger
}

// New creates a Writer for the pages under contentDir.
func New(site storage.Provider, contentDir, indexFile, heading string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if heading == "" {
		heading = DefaultHeading
	}
	return &Writer{site: site, contentDir: contentDir, indexFile: indexFile, heading: heading, logger: logger}
}

// WriteAll appends a section to the page of every module in table, in the
// order the modules were found.
func (w *Writer) WriteAll(table *tags.Table) error {
	var err error
	table.Each(func(dir string, m *tags.Module) {
		if err != nil {
			return
		}
		err = w.Write(dir, m)
	})
	return err
}

// Write appends the section for one module. Existing content is never touched.
func (w *Writer) Write(dir string, m *tags.Module) error {
	page := path.Join(w.contentDir, dir, w.indexFile)
	w.logger.Debug("writing tag index", slog.String("page", page), slog.Int("tags", m.Len()))
	if err := w.site.Append(page, Render(w.heading, m)); err != nil {
		return fmt.Errorf("tagindex: %w", err)
	}
	return nil
}

// Render returns the appended section: the heading followed by a numbered
// list linking every tag to the page defining it.
func Render(heading string, m *tags.Module) []byte {
	var b bytes.Buffer
	b.WriteString("\n\n## " + heading + "\n\n")
	m.Each(func(i int, tag, page string) {
		b.WriteString(strconv.Itoa(i) + ". [" + tag + "](/" + page + "#" + url.QueryEscape(tag) + ")\n")
	})
	return b.Bytes()
}
