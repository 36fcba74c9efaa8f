package content

import (
	"slices"
	"strings"

	"github.com/starford/notion2hugo/internal/parser"
)

// Shortcode renders the Hugo short-code displaying one crit box.
func Shortcode(tag string) string {
	return `{{< crit "` + tag + `" >}}`
}

// extractCrits replaces every crit marker by its short-codes and returns the
// distinct tags in order of first appearance.
func extractCrits(body []byte) ([]byte, []string) {
	markers := parser.CritMarkers(body)
	if len(markers) == 0 {
		return body, nil
	}

	var tags []string
	edits := make([]parser.Edit, 0, len(markers))
	for _, m := range markers {
		var rendered []string
		for _, payload := range parser.CritPayloads(cleanGroup(m.Group)) {
			tag := strings.TrimSpace(payload)
			if tag == "" {
				continue
			}
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
			rendered = append(rendered, Shortcode(tag))
		}
		edits = append(edits, parser.Edit{
			Start: m.Start,
			End:   m.End,
			Text:  []byte(strings.Join(rendered, "\n")),
		})
	}
	return parser.Apply(body, edits), tags
}

// cleanGroup keeps only the display text of links nested in a marker, then
// drops quotes and line breaks.
func cleanGroup(group string) string {
	links := parser.Links([]byte(group))
	if len(links) > 0 {
		edits := make([]parser.Edit, len(links))
		for i, l := range links {
			edits[i] = parser.Edit{Start: l.Start, End: l.End, Text: []byte(l.Name)}
		}
		group = string(parser.Apply([]byte(group), edits))
	}
	group = strings.ReplaceAll(group, `"`, "")
	group = strings.ReplaceAll(group, "\n", "")
	return strings.TrimSpace(group)
}
