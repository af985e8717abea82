package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/docgenie/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.ts"), "export {};\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.ts"), "export {};\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.ts")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.ts")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files in lexical order", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "b.ts"), "")
		writeTestFile(t, filepath.Join(root, "a.ts"), "")

		nestedDir := filepath.Join(root, "a_dir")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.ts")
		writeTestFile(t, child, "")

		var files []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				files = append(files, path)
			}
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, []string{filepath.Join(root, "a.ts"), child, filepath.Join(root, "b.ts")}, files)
	})
}

func TestLocalSourceFSAdapter_ReadLines(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	root := t.TempDir()

	path := filepath.Join(root, "a.js")
	writeTestFile(t, path, "one\r\ntwo\r\n")

	lines, err := adapter.ReadLines(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)

	empty := filepath.Join(root, "empty.js")
	writeTestFile(t, empty, "")

	lines, err = adapter.ReadLines(m.Path(empty))
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = adapter.ReadLines(m.Path(filepath.Join(root, "missing.js")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_InsertLines(t *testing.T) {
	doc := []string{"/**", " * Adds numbers.", " */"}

	t.Run("inserts with anchor indentation", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		path := filepath.Join(t.TempDir(), "a.ts")
		writeTestFile(t, path, "class A {\n  add(a, b) {\n    return a + b;\n  }\n}\n")

		err := adapter.InsertLines(m.Path(path), 2, "  add(a, b) {", doc)
		require.NoError(t, err)

		assert.Equal(t,
			"class A {\n  /**\n   * Adds numbers.\n   */\n  add(a, b) {\n    return a + b;\n  }\n}\n",
			readFile(t, path))
	})

	t.Run("keeps crlf and missing final newline", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		path := filepath.Join(t.TempDir(), "a.js")
		writeTestFile(t, path, "x();\r\nfunction f() {}")

		err := adapter.InsertLines(m.Path(path), 2, "function f() {}", doc)
		require.NoError(t, err)

		assert.Equal(t, "x();\r\n/**\r\n * Adds numbers.\r\n */\r\nfunction f() {}", readFile(t, path))
	})

	t.Run("anchor mismatch leaves file untouched", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		path := filepath.Join(t.TempDir(), "a.js")
		original := "function g() {}\n"
		writeTestFile(t, path, original)

		err := adapter.InsertLines(m.Path(path), 1, "function f() {}", doc)
		require.ErrorIs(t, err, ErrAnchorMismatch)
		assert.Equal(t, original, readFile(t, path))
	})

	t.Run("line out of range", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		path := filepath.Join(t.TempDir(), "a.js")
		writeTestFile(t, path, "f();\n")

		err := adapter.InsertLines(m.Path(path), 3, "", doc)
		require.ErrorIs(t, err, ErrLineOutOfRange)

		err = adapter.InsertLines(m.Path(path), 0, "", doc)
		require.ErrorIs(t, err, ErrLineOutOfRange)
	})

	t.Run("preserves permissions", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		path := filepath.Join(t.TempDir(), "run.js")
		writeTestFile(t, path, "main();\n")
		require.NoError(t, os.Chmod(path, 0o700))

		require.NoError(t, adapter.InsertLines(m.Path(path), 1, "main();", doc))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	})
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	root := t.TempDir()

	path := filepath.Join(root, "a.js")
	writeTestFile(t, path, "")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "missing")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	base := t.TempDir()
	target := filepath.Join(base, "src", "a.ts")

	rel, err := adapter.RelPath(m.Path(base), m.Path(target))
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("src", "a.ts")), rel)

	assert.Equal(t, m.Path(target), adapter.JoinPath(base, "src", "a.ts"))
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
