package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notion2hugo/internal/apperr"
)

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "export.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, data := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestPrepare_Zip(t *testing.T) {
	zipPath := writeZip(t, map[string]string{
		"Home.md":        "# Home\n",
		"Home/Page A.md": "# A\n",
		"Home/img/a.png": "png",
	})

	exp, err := Prepare(zipPath, Options{}, nil)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(exp.Dir, "Home", "Page A.md"))
	require.NoError(t, err)
	assert.Equal(t, "# A\n", string(data))

	require.NoError(t, exp.Cleanup())
	_, err = os.Stat(exp.Dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPrepare_KeepTemp(t *testing.T) {
	exp, err := Prepare(writeZip(t, map[string]string{"a.md": "a"}), Options{KeepTemp: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(exp.Dir) })

	require.NoError(t, exp.Cleanup())
	_, err = os.Stat(filepath.Join(exp.Dir, "a.md"))
	assert.NoError(t, err)
}

func TestPrepare_Source(t *testing.T) {
	dir := t.TempDir()
	exp, err := Prepare(dir, Options{Source: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, exp.Dir)
	require.NoError(t, exp.Cleanup())
	_, err = os.Stat(dir)
	assert.NoError(t, err, "a source folder is never removed")
}

func TestPrepare_Errors(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("plain text, not an archive\n"), 0o644))

	tests := []struct {
		name  string
		input string
		opts  Options
		want  error
	}{
		{"source must be a dir", text, Options{Source: true}, apperr.ErrNotDirectory},
		{"missing input", filepath.Join(dir, "missing.zip"), Options{}, apperr.ErrNotFile},
		{"dir without source", dir, Options{}, apperr.ErrNotFile},
		{"not a zip", text, Options{}, apperr.ErrUnsupportedArchive},
		{"keep temp with source", dir, Options{Source: true, KeepTemp: true}, apperr.ErrInvalidInvocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.input, tt.opts, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	zipPath := writeZip(t, map[string]string{"../evil.md": "x"})
	dest := t.TempDir()

	err := Extract(zipPath, dest)
	require.ErrorIs(t, err, apperr.ErrUnsupportedArchive)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dest), "evil.md"))
	assert.True(t, os.IsNotExist(statErr))
}
