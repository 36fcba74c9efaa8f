package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantTitle string
		wantRest  string
		wantOK    bool
	}{
		{"heading with newline", "# Hello World\nbody\n", "Hello World", "body\n", true},
		{"crlf line ending", "# Hello\r\nbody", "Hello", "body", true},
		{"heading only", "#   Spaced", "Spaced", "", true},
		{"not at start", "intro\n# Hello\n", "", "intro\n# Hello\n", false},
		{"level two", "## Sub\n", "", "## Sub\n", false},
		{"no space", "#Tag\n", "", "#Tag\n", false},
		{"blank heading", "#   \nbody\n", "", "#   \nbody\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, rest, ok := Title([]byte(tt.in))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantRest, string(rest))
		})
	}
}

func TestResourceLinks(t *testing.T) {
	content := []byte("![img](Page/image.png) [doc](Other.md) [x](a.mdx) [pdf](files/Report%20Q1.pdf)")
	links := ResourceLinks(content)
	require.Len(t, links, 2)

	assert.Equal(t, "img", links[0].Name)
	assert.Equal(t, "Page/image.png", links[0].URL)
	assert.Equal(t, "[img](Page/image.png)", string(content[links[0].Start:links[0].End]))

	assert.Equal(t, "pdf", links[1].Name)
	assert.Equal(t, "files/Report%20Q1.pdf", links[1].URL)
}

func TestResourceLinks_RejectedCandidateDoesNotHideNested(t *testing.T) {
	// The outer candidate ends in .md and is rejected; scanning resumes inside it.
	content := []byte("[a [b](pic.png)")
	links := ResourceLinks(content)
	require.Len(t, links, 1)
	assert.Equal(t, "a [b", links[0].Name)

	links = ResourceLinks([]byte("[a [b](x.md) [c](y.jpg)"))
	require.Len(t, links, 1)
	assert.Equal(t, "c", links[0].Name)
}

func TestDocumentLinks(t *testing.T) {
	content := []byte("See [One](One%20abc.md) and [web](https://example.com/page.md) and [img](a.png).")
	links := DocumentLinks(content)
	require.Len(t, links, 2)
	assert.Equal(t, "One%20abc.md", links[0].URL)
	assert.Equal(t, "https://example.com/page.md", links[1].URL)
}

func TestDirectLinks(t *testing.T) {
	content := []byte("[B](b) [deep](b/c) [img](pic.png) [up](..)")
	links := DirectLinks(content)
	require.Len(t, links, 3)
	assert.Equal(t, "b", links[0].URL)
	assert.Equal(t, "pic.png", links[1].URL)
	assert.Equal(t, "..", links[2].URL)
}

func TestCritMarkers(t *testing.T) {
	content := []byte("before ~~crit needs review~~  \nafter ~~plain strike~~ ~~ crit a crit b~~")
	markers := CritMarkers(content)
	require.Len(t, markers, 2)

	assert.Equal(t, "crit needs review", markers[0].Group)
	assert.Equal(t, "~~crit needs review~~  \n", string(content[markers[0].Start:markers[0].End]))
	assert.Equal(t, "crit a crit b", markers[1].Group)
}

func TestCritPayloads(t *testing.T) {
	tests := []struct {
		name  string
		group string
		want  []string
	}{
		{"single", "crit needs review", []string{"needs review"}},
		{"two in one marker", "crit alpha crit beta", []string{"alpha ", "beta"}},
		{"word starting with crit ends payload", "crit needs critical review", []string{"needs "}},
		{"keyword without blank", "critique", nil},
		{"keyword followed by keyword", "crit crit x", []string{"x"}},
		{"blank given back", "crit \tcrit x", []string{"\t", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CritPayloads(tt.group))
		})
	}
}

func TestSplitHeader(t *testing.T) {
	data := []byte("---\ntitle: Hello\nslug: hello\nweight: 3\ntags: [ \"a\", \"b\" ]\n---\n\nBody text\n")
	h, body, err := SplitHeader(data)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Hello", h.Title)
	assert.Equal(t, "hello", h.Slug)
	assert.Equal(t, 3, h.Weight)
	assert.Equal(t, []string{"a", "b"}, h.Tags)
	assert.Equal(t, "Body text\n", string(body))
}

func TestSplitHeader_NoHeader(t *testing.T) {
	h, body, err := SplitHeader([]byte("# Just text\n"))
	require.NoError(t, err)
	assert.Nil(t, h)
	assert.Equal(t, "# Just text\n", string(body))
}

func TestSplitHeader_InvalidYAML(t *testing.T) {
	_, _, err := SplitHeader([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	assert.Error(t, err)
}
