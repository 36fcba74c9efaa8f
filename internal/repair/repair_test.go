package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hash suffix with extension", "Page abcdef0123456789abcdef0123456789.md", "Page.md"},
		{"hash suffix on directory", "Chapter 1 0123456789abcdef0123456789abcdef", "Chapter 1"},
		{"no hash", "Notes.md", "Notes.md"},
		{"short token kept", "Page abcdef.md", "Page abcdef.md"},
		{"uppercase hex is not a hash", "Page ABCDEF0123456789ABCDEF0123456789.md", "Page ABCDEF0123456789ABCDEF0123456789.md"},
		{"composed accent", "El\u00e9ments.md", "Elements.md"},
		{"decomposed accent", "Ele\u0301ments.md", "Elements.md"},
		{"mis-encoded accent", "Ele\xa6\xfcments.md", "Elements.md"},
		{"cedilla", "Leçon.md", "Lecon.md"},
		{"right quote", "L’index.md", "L_index.md"},
		{"accent and hash", "Résumé 0123456789abcdef0123456789abcdef.md", "Resume.md"},
		{"other extension keeps hash", "img 0123456789abcdef0123456789abcdef.png", "img 0123456789abcdef0123456789abcdef.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestURLPart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"encoded spaces", "My%20Page", "my-page"},
		{"hash token", "My%20Page%200123456789abcdef0123456789abcdef.md", "my-page.md"},
		{"literal spaces", "Hello World", "hello-world"},
		{"dash between words", "A%20-%20B", "a-b"},
		{"repeated spaces", "a  b", "a-b"},
		{"ampersand", "Tom%20&%20Jerry", "tom-et-jerry"},
		{"comma", "one,two", "one_two"},
		{"decomposed accent", "Ele%CC%81ments", "elements"},
		{"composed accent", "%C3%A9t%C3%A9", "ete"},
		{"cedilla", "Le%C3%A7on", "lecon"},
		{"right quote", "L%E2%80%99index", "l_index"},
		{"parent segment untouched", "..", ".."},
		{"empty", "", ""},
		{"only dash", "-", ""},
		{"non ascii bytes kept", "Ünïcode", "Ünïcode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLPart(tt.in))
		})
	}
}

func TestURLPart_Idempotent(t *testing.T) {
	inputs := []string{
		"My%20Page%200123456789abcdef0123456789abcdef",
		"e%cc%81%cc%81",
		"%2%200123456789abcdef0123456789abcdef0",
		"A & B, C",
		"%20%20x%20%20",
		"Déjà Vu",
	}
	for _, in := range inputs {
		once := URLPart(in)
		assert.Equal(t, once, URLPart(once), "input %q", in)
	}
}

func FuzzURLPart(f *testing.F) {
	for _, seed := range []string{
		"My%20Page",
		"e%cc%81%cc%81",
		"%2%200123456789abcdef0123456789abcdef0",
		"Tom & Jerry, Inc",
		" - ",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := URLPart(in)
		if twice := URLPart(once); twice != once {
			t.Fatalf("URLPart not idempotent: %q -> %q -> %q", in, once, twice)
		}
	})
}

func TestQuoteUnquote(t *testing.T) {
	assert.Equal(t, "My%20Page%20%26%20co", Quote("My Page & co"))
	assert.Equal(t, "a/b-c_d.e~f", Quote("a/b-c_d.e~f"))
	assert.Equal(t, "R%C3%A9sum%C3%A9", Quote("Résumé"))

	assert.Equal(t, "My Page & co", Unquote("My%20Page%20%26%20co"))
	assert.Equal(t, "100%", Unquote("100%"))
	assert.Equal(t, "%zz ok", Unquote("%zz%20ok"))
}

func TestLink(t *testing.T) {
	tests := []struct {
		name   string
		target string
		opts   LinkOptions
		want   string
	}{
		{
			name:   "absolute url untouched",
			target: "https://example.com/a/b",
			opts:   LinkOptions{SelfPrefix: "foo", Document: true},
			want:   "[x](https://example.com/a/b)",
		},
		{
			name:   "self prefix dropped",
			target: "foo/bar.md",
			opts:   LinkOptions{SelfPrefix: "foo", Document: true},
			want:   "[x](bar)",
		},
		{
			name:   "parent prefix climbs",
			target: "sibling/page.md",
			opts:   LinkOptions{SelfPrefix: "foo", ParentPrefixes: []string{"sibling"}, Document: true},
			want:   "[x](../sibling/page)",
		},
		{
			name:   "explicit parent climbs once more",
			target: "../other.md",
			opts:   LinkOptions{SelfPrefix: "foo", Document: true},
			want:   "[x](../../other)",
		},
		{
			name:   "export names repaired",
			target: "Foo%20Bar%200123456789abcdef0123456789abcdef/Child%20Page%20fedcba9876543210fedcba9876543210.md",
			opts:   LinkOptions{SelfPrefix: "foo-bar", Document: true},
			want:   "[x](child-page)",
		},
		{
			name:   "resource keeps extension",
			target: "Foo/Image%201.png",
			opts:   LinkOptions{SelfPrefix: "foo"},
			want:   "[x](image-1.png)",
		},
		{
			name:   "leading slash dropped",
			target: "/Docs/Page.md",
			opts:   LinkOptions{SelfPrefix: "foo", Document: true},
			want:   "[x](docs/page)",
		},
		{
			name:   "url prefix prepended",
			target: "page.md",
			opts:   LinkOptions{SelfPrefix: "foo", URLPrefix: []string{"Section"}, Document: true},
			want:   "[x](section/page)",
		},
		{
			name:   "accented sibling climbs",
			target: "Th%C3%A8me.md",
			opts:   LinkOptions{SelfPrefix: "exo", ParentPrefixes: []string{"exo", "th\u00e8me"}, Document: true},
			want:   "[x](../th%c3%a8me)",
		},
		{
			name:   "absolute url with bad escape untouched",
			target: "https://Example.com/A%.png",
			opts:   LinkOptions{SelfPrefix: "foo"},
			want:   "[x](https://Example.com/A%.png)",
		},
		{
			name:   "invalid escape treated as relative",
			target: "Report%zz.pdf",
			opts:   LinkOptions{SelfPrefix: "foo"},
			want:   "[x](report%zz.pdf)",
		},
		{
			name:   "mailto has no host",
			target: "mailto:Someone@Example.com",
			opts:   LinkOptions{SelfPrefix: "foo"},
			want:   "[x](mailto:someone@example.com)",
		},
		{
			name:   "empty target",
			target: "",
			opts:   LinkOptions{SelfPrefix: "foo", Document: true},
			want:   "[x]()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Link("x", tt.target, tt.opts, nil))
		})
	}
}

func TestLink_DisplayNameUntouched(t *testing.T) {
	got := Link("Ünïcode & **bold**", "Page.md", LinkOptions{Document: true}, nil)
	assert.Equal(t, "[Ünïcode & **bold**](page)", got)
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "child-page", FolderName("Child Page 0123456789abcdef0123456789abcdef.md"))
	assert.Equal(t, "chapter-1", FolderName("Chapter 1 0123456789abcdef0123456789abcdef"))
	assert.Equal(t, "diagram-1.png", FolderName("Diagram 1.png"))
	assert.Equal(t, "dm-algebre", FolderName("DM Algébre.md"))
}
