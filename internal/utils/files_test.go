package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")
	require.NoError(t, SafeWriteFile(path, []byte("a\n")))
	require.NoError(t, SafeWriteFile(path, []byte("b\n")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	err := SafeWriteFile(filepath.Join(t.TempDir(), "nope", "x.csv"), []byte("x"))
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "Ventas_por_mes", FileSlug("Ventas por mes"))
	assert.Equal(t, "Produccion_2024", FileSlug(" Producción / 2024 "))
	assert.Equal(t, "data", FileSlug("***"))
	assert.Equal(t, "Sales-Units", FileSlug("Sales-Units"))
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rows\": 3\n}", string(b))
}
