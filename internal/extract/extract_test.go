package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name    string
	content string
}

// writeZip builds an archive from entries; names ending in "/" become directories
func writeZip(t *testing.T, path string, entries []zipEntry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.content != "" {
			_, err = w.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

var bepinexEntries = []zipEntry{
	{"BepInEx/", ""},
	{"BepInEx/core/", ""},
	{"BepInEx/core/BepInEx.dll", "core library"},
	{"BepInEx/config/BepInEx.cfg", "[Logging]\nEnabled = true\n"},
	{"BepInEx/plugins/ConfigurationManager/ConfigurationManager.dll", "plugin bytes"},
	{"doorstop_config.ini", "[UnityDoorstop]\nenabled=true\n"},
	{"winhttp.dll", "proxy"},
}

func TestExtract_ReproducesEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "BepInEx.zip")
	writeZip(t, archive, bepinexEntries)

	target := filepath.Join(dir, "Hollow Knight Silksong")
	var progress [][2]int
	n, err := Extract(context.Background(), archive, target, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	for _, e := range bepinexEntries {
		path := filepath.Join(target, filepath.FromSlash(e.name))
		info, err := os.Stat(path)
		require.NoError(t, err, e.name)
		if e.name[len(e.name)-1] == '/' {
			assert.True(t, info.IsDir(), e.name)
			continue
		}
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, e.content, string(got), e.name)
	}

	require.NotEmpty(t, progress)
	assert.Equal(t, [2]int{0, 5}, progress[0])
	assert.Equal(t, [2]int{5, 5}, progress[len(progress)-1])
}

func TestExtract_OverwritesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	writeZip(t, archive, []zipEntry{{"winhttp.dll", "new"}})

	target := filepath.Join(dir, "game")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "winhttp.dll"), []byte("old and longer"), 0644))

	_, err := Extract(context.Background(), archive, target, nil)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(target, "winhttp.dll"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestExtract_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(archive, []byte("this is not a zip file at all"), 0644))

	target := filepath.Join(dir, "game")
	_, err := Extract(context.Background(), archive, target, nil)
	require.Error(t, err)

	var ee *ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, archive, ee.Archive)
	assert.NoDirExists(t, target)
}

func TestExtract_TruncatedArchive(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "full.zip")
	writeZip(t, full, bepinexEntries)

	data, err := os.ReadFile(full)
	require.NoError(t, err)
	truncated := filepath.Join(dir, "truncated.zip")
	require.NoError(t, os.WriteFile(truncated, data[:len(data)/2], 0644))

	target := filepath.Join(dir, "game")
	_, err = Extract(context.Background(), truncated, target, nil)
	require.Error(t, err)

	var ee *ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.NoDirExists(t, target)
}

func TestExtract_MissingArchive(t *testing.T) {
	dir := t.TempDir()
	_, err := Extract(context.Background(), filepath.Join(dir, "nope.zip"), dir, nil)
	require.Error(t, err)

	var ee *ExtractionError
	assert.True(t, errors.As(err, &ee))
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	names := []string{
		"../evil.txt",
		"BepInEx/../../evil.txt",
		"..\\evil.txt",
		"/abs/evil.txt",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			archive := filepath.Join(dir, "evil.zip")
			writeZip(t, archive, []zipEntry{
				{"ok.txt", "fine"},
				{name, "pwned"},
			})

			target := filepath.Join(dir, "game")
			_, err := Extract(context.Background(), archive, target, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsafePath) || errors.Is(err, zip.ErrInsecurePath), "unexpected error: %v", err)

			assert.NoFileExists(t, filepath.Join(dir, "evil.txt"))
			assert.NoDirExists(t, target, "nothing may be written when an entry is unsafe")
		})
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.zip")
	writeZip(t, archive, bepinexEntries)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := Extract(ctx, archive, filepath.Join(dir, "game"), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestEntryPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"a.txt", filepath.Join(root, "a.txt"), false},
		{"dir/sub/file.dll", filepath.Join(root, "dir", "sub", "file.dll"), false},
		{"dir/", filepath.Join(root, "dir"), false},
		{"./a.txt", filepath.Join(root, "a.txt"), false},
		{"dir/../a.txt", filepath.Join(root, "a.txt"), false},
		{"", "", true},
		{"../a.txt", "", true},
		{"/etc/passwd", "", true},
		{"dir/../../a.txt", "", true},
	}

	for _, test := range tests {
		got, err := entryPath(root, test.name)
		if test.wantErr {
			assert.ErrorIs(t, err, ErrUnsafePath, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		assert.Equal(t, test.want, got, test.name)
	}
}

func TestExtractionError(t *testing.T) {
	inner := errors.New("permission denied")

	err := &ExtractionError{Archive: "a.zip", Entry: "BepInEx/core/BepInEx.dll", Err: inner}
	assert.Equal(t, "BepInEx/core/BepInEx.dll: permission denied", err.Error())
	assert.ErrorIs(t, err, inner)

	err = &ExtractionError{Archive: "a.zip", Err: inner}
	assert.Equal(t, "permission denied", err.Error())
}
