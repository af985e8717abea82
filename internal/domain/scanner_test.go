package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/docgenie/internal/adapter"
	m "github.com/mouse-blink/docgenie/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func newTestScanner() *DiffScanner {
	return NewDiffScanner(adapter.NewLocalSourceFSAdapter(), adapter.NewTreeSitterParser(), nil, nil)
}

func TestDiffScanner_Scan(t *testing.T) {
	root := t.TempDir()

	writeSource(t, root, "src/math.ts",
		"export function add(a: number, b: number) {\n"+
			"  return a + b;\n"+
			"}\n"+
			"\n"+
			"/** Subtracts. */\n"+
			"export function sub(a: number, b: number) {\n"+
			"  return a - b;\n"+
			"}\n"+
			"\n"+
			"export const mul = (a: number, b: number) => a * b;\n")
	writeSource(t, root, "src/broken.js", "function (\n")
	writeSource(t, root, "README.md", "# readme\n")

	raw := "diff --git a/src/math.ts b/src/math.ts\n" +
		"@@ -0,0 +1,10 @@\n" +
		"+export function add(a: number, b: number) {\n" +
		"+  return a + b;\n" +
		"+}\n" +
		"+\n" +
		"+/** Subtracts. */\n" +
		"+export function sub(a: number, b: number) {\n" +
		"+  return a - b;\n" +
		"+}\n" +
		"+\n" +
		"+export const mul = (a: number, b: number) => a * b;\n" +
		"diff --git a/src/broken.js b/src/broken.js\n" +
		"@@ -0,0 +1 @@\n" +
		"+function (\n" +
		"diff --git a/README.md b/README.md\n" +
		"@@ -0,0 +1 @@\n" +
		"+# readme\n" +
		"diff --git a/src/gone.js b/src/gone.js\n" +
		"deleted file mode 100644\n" +
		"--- a/src/gone.js\n" +
		"+++ /dev/null\n" +
		"@@ -1 +0,0 @@\n" +
		"-function gone() {}\n" +
		"diff --git a/src/missing.js b/src/missing.js\n" +
		"@@ -0,0 +1 @@\n" +
		"+function missing() {}\n"

	records, err := newTestScanner().Scan(context.Background(), m.Path(root), raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"add", "mul"}, names(records))
	for _, r := range records {
		assert.Equal(t, m.Path(filepath.Join(root, "src", "math.ts")), r.FilePath)
	}
}

func TestDiffScanner_ScanOnlyTouchedHunks(t *testing.T) {
	root := t.TempDir()

	writeSource(t, root, "a.js",
		"function first() {}\n"+
			"\n"+
			"\n"+
			"\n"+
			"\n"+
			"function second() {}\n")

	raw := "diff --git a/a.js b/a.js\n" +
		"@@ -5,0 +6,1 @@\n" +
		"+function second() {}\n"

	records, err := newTestScanner().Scan(context.Background(), m.Path(root), raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, names(records))
}

func TestDiffScanner_EmptyDiff(t *testing.T) {
	records, err := newTestScanner().Scan(context.Background(), m.Path(t.TempDir()), "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDiffScanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := "diff --git a/a.js b/a.js\n@@ -0,0 +1 @@\n+f();\n"

	_, err := newTestScanner().Scan(ctx, m.Path(t.TempDir()), raw)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiffScanner_SkipsExcludedPaths(t *testing.T) {
	root := t.TempDir()

	for _, rel := range []string{"node_modules/lib.js", "dist/app.js", "src/app.js"} {
		writeSource(t, root, rel, "function x() {}\n")
	}

	raw := "diff --git a/node_modules/lib.js b/node_modules/lib.js\n" +
		"@@ -0,0 +1 @@\n" +
		"+function x() {}\n" +
		"diff --git a/dist/app.js b/dist/app.js\n" +
		"@@ -0,0 +1 @@\n" +
		"+function x() {}\n" +
		"diff --git a/src/app.js b/src/app.js\n" +
		"@@ -0,0 +1 @@\n" +
		"+function x() {}\n"

	t.Run("node_modules only", func(t *testing.T) {
		records, err := newTestScanner().Scan(context.Background(), m.Path(root), raw)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, m.Path(filepath.Join(root, "dist", "app.js")), records[0].FilePath)
		assert.Equal(t, m.Path(filepath.Join(root, "src", "app.js")), records[1].FilePath)
	})

	t.Run("with globs", func(t *testing.T) {
		scanner := NewDiffScanner(adapter.NewLocalSourceFSAdapter(), adapter.NewTreeSitterParser(), nil, []string{"**/dist/**"})

		records, err := scanner.Scan(context.Background(), m.Path(root), raw)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, m.Path(filepath.Join(root, "src", "app.js")), records[0].FilePath)
	})
}

func TestInSkippedDir(t *testing.T) {
	assert.True(t, inSkippedDir("node_modules/lib.js"))
	assert.True(t, inSkippedDir("packages/a/node_modules/lib/index.js"))
	assert.True(t, inSkippedDir(".cache/x.js"))
	assert.False(t, inSkippedDir("src/node_modules.js"))
	assert.False(t, inSkippedDir("../src/a.js"))
	assert.False(t, inSkippedDir("a.js"))
}
