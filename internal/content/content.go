// Package content rewrites one exported note into a Hugo page: it lifts the
// title, repairs every link, turns crit annotations into short-codes and
// prepends the metadata header.
package content

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/starford/notion2hugo/internal/models"
	"github.com/starford/notion2hugo/internal/parser"
	"github.com/starford/notion2hugo/internal/repair"
)

// Input is everything Repair needs to know about one source note.
type Input struct {
	Data []byte
	// Source is the path of the note in the export.
	Source string
	// Dest is the path the page will be written to. Only used for logging.
	Dest string
	// Siblings are the repaired folder names of the note's siblings. Links
	// starting with one of them are made parent-relative.
	Siblings []string
}

// Repair converts one note and returns the page together with the tags it defines.
func Repair(in Input, logger *slog.Logger) models.Document {
	if logger == nil {
		logger = slog.Default()
	}
	basename := strings.TrimSuffix(filepath.Base(in.Source), repair.DocumentExt)

	title, body, ok := parser.Title(in.Data)
	if !ok {
		logger.Warn("no title heading found, using file name",
			slog.String("dest", in.Dest), slog.String("title", basename))
		title = basename
	}

	selfPrefix := repair.URLPart(repair.Quote(basename))

	// Resource links first: the document pattern would also match them.
	body = rewriteLinks(body, parser.ResourceLinks(body), repair.LinkOptions{
		SelfPrefix:     selfPrefix,
		ParentPrefixes: in.Siblings,
	}, logger)
	body = rewriteLinks(body, parser.DocumentLinks(body), repair.LinkOptions{
		SelfPrefix:     selfPrefix,
		ParentPrefixes: in.Siblings,
		Document:       true,
	}, logger)

	body, tags := extractCrits(body)
	logger.Debug("tags found", slog.String("dest", in.Dest), slog.Int("count", len(tags)))

	slug := strings.TrimSuffix(repair.Unquote(repair.URLPart(selfPrefix)), repair.DocumentExt)

	doc := models.Document{
		Source: in.Source,
		Dest:   in.Dest,
		Title:  title,
		Slug:   slug,
		Weight: models.DefaultWeight,
		Tags:   tags,
	}
	doc.Body = Render(doc, body)
	return doc
}

// Render returns the page bytes: the fixed metadata header, a blank line and body.
func Render(doc models.Document, body []byte) []byte {
	quoted := make([]string, len(doc.Tags))
	for i, tag := range doc.Tags {
		quoted[i] = `"` + tag + `"`
	}

	var b bytes.Buffer
	b.Grow(len(body) + 128)
	b.WriteString("---\n")
	b.WriteString("title: " + doc.Title + "\n")
	b.WriteString("slug: " + doc.Slug + "\n")
	b.WriteString(WeightLine(doc.Weight) + "\n")
	b.WriteString("tags: [ " + strings.Join(quoted, ", ") + " ]\n")
	b.WriteString("---\n\n")
	b.Write(body)
	return b.Bytes()
}

// WeightLine renders the header line holding a page weight.
func WeightLine(weight int) string {
	return "weight: " + strconv.Itoa(weight)
}

func rewriteLinks(body []byte, links []models.Link, opts repair.LinkOptions, logger *slog.Logger) []byte {
	if len(links) == 0 {
		return body
	}
	edits := make([]parser.Edit, len(links))
	for i, l := range links {
		edits[i] = parser.Edit{
			Start: l.Start,
			End:   l.End,
			Text:  []byte(repair.Link(l.Name, l.URL, opts, logger)),
		}
	}
	return parser.Apply(body, edits)
}
