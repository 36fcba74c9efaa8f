// Package weights orders sibling pages by the position of their links in the
// parent page. It runs on the finished content tree.
package weights

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"

	"github.com/starford/notion2hugo/internal/apperr"
	"github.com/starford/notion2hugo/internal/content"
	"github.com/starford/notion2hugo/internal/models"
	"github.com/starford/notion2hugo/internal/parser"
	"github.com/starford/notion2hugo/internal/repair"
	"github.com/starford/notion2hugo/internal/report"
	"github.com/starford/notion2hugo/internal/storage"
)

var placeholderRe = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(content.WeightLine(models.DefaultWeight)) + `$`)

// Assigner rewrites the weight placeholder of every page below a root.
type Assigner struct {
	site      storage.Provider
	indexFile string
	logger    *slog.Logger
}

// New creates an Assigner working on site.
func New(site storage.Provider, indexFile string, logger *slog.Logger) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	if indexFile == "" {
		indexFile = models.IndexFile
	}
	return &Assigner{site: site, indexFile: indexFile, logger: logger}
}

// Assign walks root post-order. The page of every folder below root gives its
// child folders their weights. Missing pages are recorded in rep.
func (a *Assigner) Assign(ctx context.Context, root string, rep *report.Report) error {
	return a.assign(ctx, root, true, rep)
}

func (a *Assigner) assign(ctx context.Context, dir string, isRoot bool, rep *report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := a.site.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := a.assign(ctx, path.Join(dir, e.Name()), false, rep); err != nil {
			return err
		}
	}
	if isRoot {
		return nil
	}

	index := path.Join(dir, a.indexFile)
	if !a.site.Exists(index) {
		rep.Fail(a.logger, fmt.Errorf("weights: cannot order children of %q, %q: %w",
			dir, index, apperr.ErrNotFound))
		return nil
	}
	data, err := a.site.Read(index)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	for i, target := range a.LinkOrder(data, dir) {
		a.logger.Debug("weight", slog.String("dir", dir), slog.String("target", target), slog.Int("weight", i+1))
		if err := a.setWeight(path.Join(dir, target, a.indexFile), i+1, rep); err != nil {
			return err
		}
	}
	return nil
}

// LinkOrder returns the distinct direct link targets of page that are
// subfolders of dir, decoded to folder names, in order of first appearance.
func (a *Assigner) LinkOrder(page []byte, dir string) []string {
	seen := make(map[string]struct{})
	var order []string
	for _, l := range parser.DirectLinks(page) {
		target := repair.Unquote(l.URL)
		if target == "." || target == ".." {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		if !a.site.IsDir(path.Join(dir, target)) {
			continue
		}
		seen[target] = struct{}{}
		order = append(order, target)
	}
	return order
}

func (a *Assigner) setWeight(page string, weight int, rep *report.Report) error {
	if !a.site.Exists(page) {
		rep.Fail(a.logger, fmt.Errorf("weights: link target %q should get weight %d: %w",
			page, weight, apperr.ErrNotFound))
		return nil
	}
	data, err := a.site.Read(page)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	loc := placeholderRe.FindIndex(data)
	if loc == nil {
		rep.Warn(a.logger, "no weight placeholder", slog.String("page", page))
		return nil
	}
	data = parser.Apply(data, []parser.Edit{{
		Start: loc[0],
		End:   loc[1],
		Text:  []byte(content.WeightLine(weight)),
	}})
	if err := a.site.Write(page, data); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	return nil
}
