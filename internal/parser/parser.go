// Package parser locates titles, links, annotations and metadata headers in
// raw Markdown bytes. It never builds a document tree: every function works
// on byte patterns and reports offsets into the input.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/notion2hugo/internal/models"
)

var (
	titleRe    = regexp.MustCompile(`^# +(.+?)\r?(?:\n|$)`)
	docLinkRe  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*\.md)\)`)
	resLinkRe  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*\.([^.\n)]+))\)`)
	dirLinkRe  = regexp.MustCompile(`\[([^\]]*)\]\(([^)/]+)\)`)
	anyLinkRe  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	critMarkRe = regexp.MustCompile(`~~[ \t]*(crit[ \t]+[^~]+)~~[ \t]*\n?`)
)

// CritWord opens a tag annotation inside a struck-through marker.
const CritWord = "crit"

// Title extracts a level-1 heading sitting at the very start of content. It
// returns the heading text and the content with the heading line removed. A
// heading holding only blanks is not a title.
func Title(content []byte) (string, []byte, bool) {
	m := titleRe.FindSubmatchIndex(content)
	if m == nil {
		return "", content, false
	}
	title := strings.TrimRight(string(content[m[2]:m[3]]), " \t")
	if title == "" {
		return "", content, false
	}
	return title, content[m[1]:], true
}

// DocumentLinks returns links whose target ends in .md.
func DocumentLinks(content []byte) []models.Link {
	return findLinks(docLinkRe, content, nil)
}

// ResourceLinks returns links whose target has a non-empty extension other
// than a Markdown one.
func ResourceLinks(content []byte) []models.Link {
	return findLinks(resLinkRe, content, func(m []int) bool {
		return !bytes.HasPrefix(content[m[6]:m[7]], []byte("md"))
	})
}

// DirectLinks returns links whose target is a single path segment.
func DirectLinks(content []byte) []models.Link {
	return findLinks(dirLinkRe, content, nil)
}

// Links returns every bracketed link.
func Links(content []byte) []models.Link {
	return findLinks(anyLinkRe, content, nil)
}

// findLinks scans left to right. A candidate rejected by accept does not
// consume its span: the scan resumes one byte after its start.
func findLinks(re *regexp.Regexp, content []byte, accept func(m []int) bool) []models.Link {
	var out []models.Link
	for pos := 0; pos < len(content); {
		m := re.FindSubmatchIndex(content[pos:])
		if m == nil {
			break
		}
		for i := range m {
			if m[i] >= 0 {
				m[i] += pos
			}
		}
		if accept != nil && !accept(m) {
			pos = m[0] + 1
			continue
		}
		out = append(out, models.Link{
			Start: m[0],
			End:   m[1],
			Name:  string(content[m[2]:m[3]]),
			URL:   string(content[m[4]:m[5]]),
		})
		pos = m[1]
	}
	return out
}

// CritMarkers returns every `~~crit ...~~` marker together with the trailing
// blanks and newline it swallows.
func CritMarkers(content []byte) []models.CritMarker {
	var out []models.CritMarker
	for _, m := range critMarkRe.FindAllSubmatchIndex(content, -1) {
		out = append(out, models.CritMarker{
			Start: m[0],
			End:   m[1],
			Group: string(content[m[2]:m[3]]),
		})
	}
	return out
}

// CritPayloads splits a marker group into the payloads that follow each
// "crit" keyword. A payload runs until the next "crit" or the end of the group
// and is returned untrimmed.
func CritPayloads(group string) []string {
	var out []string
	pos := 0
	for {
		i := strings.Index(group[pos:], CritWord)
		if i < 0 {
			return out
		}
		start := pos + i
		wsStart := start + len(CritWord)
		wsEnd := wsStart
		for wsEnd < len(group) && isBlank(group[wsEnd]) {
			wsEnd++
		}
		if wsEnd == wsStart {
			pos = start + 1
			continue
		}

		payloadStart := wsEnd
		if wsEnd == len(group) || strings.HasPrefix(group[wsEnd:], CritWord) {
			// The payload needs one byte; give back a blank if there is more than one.
			if wsEnd-wsStart < 2 {
				pos = start + 1
				continue
			}
			payloadStart = wsEnd - 1
		}

		end := len(group)
		if j := strings.Index(group[payloadStart+1:], CritWord); j >= 0 {
			end = payloadStart + 1 + j
		}
		out = append(out, group[payloadStart:end])
		pos = end
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// SplitHeader separates a leading `---` metadata block from the body and
// decodes it. Content without a header returns a nil header and no error.
func SplitHeader(data []byte) (*models.Header, []byte, error) {
	const delim = "---"
	if !bytes.HasPrefix(data, []byte(delim+"\n")) {
		return nil, data, nil
	}

	rest := data[len(delim)+1:]
	idx := bytes.Index(rest, []byte("\n"+delim+"\n"))
	if idx < 0 {
		return nil, data, nil
	}

	block := rest[:idx]
	body := bytes.TrimLeft(rest[idx+len(delim)+2:], "\r\n")

	var h models.Header
	if err := yaml.Unmarshal(block, &h); err != nil {
		return nil, data, err
	}
	return &h, body, nil
}
