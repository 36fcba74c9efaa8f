package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notion2hugo/internal/models"
)

func repairString(t *testing.T, src, data string, siblings ...string) models.Document {
	t.Helper()
	return Repair(Input{
		Data:     []byte(data),
		Source:   src,
		Dest:     "content/out/_index.md",
		Siblings: siblings,
	}, nil)
}

func TestRepair_TitleExtracted(t *testing.T) {
	doc := repairString(t, "export/Hello World 0123456789abcdef0123456789abcdef.md", "# Hello World\nFirst line.\n")

	assert.Equal(t, "Hello World", doc.Title)
	want := "---\n" +
		"title: Hello World\n" +
		"slug: hello-world\n" +
		"weight: 99\n" +
		"tags: [  ]\n" +
		"---\n\n" +
		"First line.\n"
	assert.Equal(t, want, string(doc.Body))
	assert.Equal(t, 1, strings.Count(string(doc.Body), "Hello World"))
}

func TestRepair_TitleFallsBackToBasename(t *testing.T) {
	doc := repairString(t, "export/Notes.md", "no heading here\n")
	assert.Equal(t, "Notes", doc.Title)
	assert.Equal(t, "notes", doc.Slug)
	assert.True(t, strings.HasSuffix(string(doc.Body), "---\n\nno heading here\n"))
}

func TestRepair_BlankHeadingFallsBackToBasename(t *testing.T) {
	doc := repairString(t, "export/Notes.md", "#   \nbody\n")
	assert.Equal(t, "Notes", doc.Title)
	assert.Contains(t, string(doc.Body), "title: Notes\n")
}

func TestRepair_CritTag(t *testing.T) {
	doc := repairString(t, "export/Page.md", "# Page\nSome text ~~crit needs review~~\nmore\n")

	assert.Equal(t, []string{"needs review"}, doc.Tags)
	body := string(doc.Body)
	assert.Contains(t, body, `tags: [ "needs review" ]`)
	assert.Contains(t, body, "Some text {{< crit \"needs review\" >}}more\n")
	assert.NotContains(t, body, "~~")
}

func TestRepair_CritMultipleAndNestedLink(t *testing.T) {
	data := "# P\n" +
		"~~crit first crit second~~\n" +
		"~~crit \"quoted\" [see](Other%20Page.md)~~\n" +
		"~~crit first~~\n"
	doc := repairString(t, "export/P.md", data)

	assert.Equal(t, []string{"first", "second", "quoted see"}, doc.Tags)
	body := string(doc.Body)
	assert.Contains(t, body, "{{< crit \"first\" >}}\n{{< crit \"second\" >}}")
	assert.Contains(t, body, "{{< crit \"quoted see\" >}}")
	assert.Contains(t, body, `tags: [ "first", "second", "quoted see" ]`)
}

func TestRepair_Links(t *testing.T) {
	data := "# Parent\n" +
		"![diagram](Parent%200123456789abcdef0123456789abcdef/Diagram%201.png)\n" +
		"[Child](Parent%200123456789abcdef0123456789abcdef/Child%20Page%20fedcba9876543210fedcba9876543210.md)\n" +
		"[Sibling](Sibling%20Page%20fedcba9876543210fedcba9876543210.md)\n" +
		"[Web](https://example.com/a.md)\n"
	doc := repairString(t, "export/Parent 0123456789abcdef0123456789abcdef.md", data, "parent", "sibling-page")

	body := string(doc.Body)
	assert.Contains(t, body, "![diagram](diagram-1.png)\n")
	assert.Contains(t, body, "[Child](child-page)\n")
	assert.Contains(t, body, "[Sibling](../sibling-page)\n")
	assert.Contains(t, body, "[Web](https://example.com/a.md)\n")
	assert.Equal(t, "parent", doc.Slug)
}

func TestRender_Header(t *testing.T) {
	out := Render(models.Document{Title: "T", Slug: "t", Weight: 4, Tags: []string{"a", "b"}}, []byte("body"))
	require.Equal(t, "---\ntitle: T\nslug: t\nweight: 4\ntags: [ \"a\", \"b\" ]\n---\n\nbody", string(out))
}

func TestShortcode(t *testing.T) {
	assert.Equal(t, `{{< crit "x y" >}}`, Shortcode("x y"))
}
