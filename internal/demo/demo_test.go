package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSet(t *testing.T, root, name, description string, style string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, descriptionFile), []byte(description), 0o644))
	if style != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, styleFile), []byte(style), 0o644))
	}
}

func TestListEnumeratesSortedSets(t *testing.T) {
	root := t.TempDir()
	writeSet(t, root, "latch", `{"design":{"lib":"analog","cell":"latch"}}`, "wire:\n  stroke_color: \"#112233\"\n")
	writeSet(t, root, "adder", `{"design":{"lib":"digital","cell":"adder"}}`, "")

	// Directory without a description is skipped, as are plain files.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644))

	lib := NewLibrary(root)
	entries, err := lib.List()
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Name: "adder", Design: "digital/adder", HasStyle: false},
		{Name: "latch", Design: "analog/latch", HasStyle: true},
	}, entries)
}

func TestListMissingRootIsEmpty(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"))
	entries, err := lib.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeSet(t, root, "latch", `{"design":{"lib":"analog","cell":"latch"}}`, "wire:\n  stroke_width: 3\n")

	lib := NewLibrary(root)
	set, err := lib.Load("latch")
	require.NoError(t, err)
	require.Equal(t, "latch", set.Name)
	require.Contains(t, string(set.Description), "analog")
	require.Contains(t, string(set.Style), "stroke_width")
}

func TestLoadWithoutStyle(t *testing.T) {
	root := t.TempDir()
	writeSet(t, root, "adder", `{"design":{"lib":"digital","cell":"adder"}}`, "")

	set, err := NewLibrary(root).Load("adder")
	require.NoError(t, err)
	require.Nil(t, set.Style)
}

func TestLoadUnknownSet(t *testing.T) {
	_, err := NewLibrary(t.TempDir()).Load("ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
