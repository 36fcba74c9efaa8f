// Package repair normalizes names and link targets produced by a Notion export
// so they match the layout of the generated Hugo content tree.
package repair

import (
	"regexp"
	"strings"
)

// DocumentExt is the extension of exported note documents.
const DocumentExt = ".md"

var (
	// Mis-encoded accents seen in exports, mapped to the canonical é.
	canonicalAccents = strings.NewReplacer(
		"e\xa6\xfc", "\u00e9",
		"e\u0301", "\u00e9",
	)
	foldAccents = strings.NewReplacer(
		"\u00e9", "e",
		"\u00e7", "c",
		"\u2019", "_",
	)

	nameHashSuffixRe = regexp.MustCompile(`(?s)^(.*) [0-9a-f]{32}(\.md)?$`)
)

// Name repairs a single file or directory name: accents are folded to ASCII,
// typographic apostrophes become underscores and the export hash suffix is
// dropped while keeping a trailing .md extension.
//
//	Name("Page abcdef0123456789abcdef0123456789.md") == "Page.md"
func Name(name string) string {
	name = foldAccents.Replace(canonicalAccents.Replace(name))
	return nameHashSuffixRe.ReplaceAllString(name, "${1}${2}")
}

// FolderName returns the output folder name for an export entry: the
// repaired name without its .md extension, slugged like a URL segment.
func FolderName(name string) string {
	return URLPart(strings.TrimSuffix(Name(name), DocumentExt))
}
