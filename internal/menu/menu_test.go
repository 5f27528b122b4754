package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

const productionCSV = `Mes;Ventas;Unidades;Turno
1;1000;10;A
2;1200;12;A
3;1400;14;B
4;1600;16;B
5;1800;18;C
6;2000;20;C
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "produccion.csv")
	require.NoError(t, os.WriteFile(path, []byte(productionCSV), 0o644))
	return path
}

func run(t *testing.T, opt Options, lines ...string) (string, *session.Session) {
	t.Helper()
	sess := session.NewLocal("tester")
	var out bytes.Buffer
	m := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, sess, opt)
	require.NoError(t, m.Run(context.Background()))
	return out.String(), sess
}

func TestMenuLoadAndAnalyze(t *testing.T) {
	path := writeCSV(t)
	out, sess := run(t, Options{},
		"1", path,
		"2",
		"3", "Units",
		"4", "Units",
		"8", "Units", "", "",
		"9", "Units", "15", "0.05",
		"10", "Units", "Turno",
		"11", "Units", "Sales",
		"12", "Units", "Sales",
		"13",
		"0",
	)
	tbl, err := sess.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 6, tbl.Rows)

	assert.Contains(t, out, "✓ Loaded produccion.csv: 6 rows, 4 columns")
	assert.Contains(t, out, "Central tendency: Units")
	assert.Contains(t, out, "Dispersion: Units")
	assert.Contains(t, out, "95% confidence interval: Units")
	assert.Contains(t, out, "Fail to reject H0")
	assert.Contains(t, out, "C(Turno)")
	assert.Contains(t, out, "Pearson correlation: Units vs Sales")
	assert.Contains(t, out, "Linear regression")
	assert.Contains(t, out, "produccion.csv: 6 rows, 4 columns")
	assert.Contains(t, out, "Bye.")
	assert.NotContains(t, out, "✗ Error")
}

func TestMenuReportsErrorsAndContinues(t *testing.T) {
	out, _ := run(t, Options{},
		"3",
		"99",
		"5", "10", "2",
		"7", "0", "abc",
		"5", "4", "0.5",
		"0",
	)
	assert.Contains(t, out, "✗ Error: no dataset loaded")
	assert.Contains(t, out, `✗ Error: unknown option "99"`)
	assert.Contains(t, out, "✗ Error: invalid p=2")
	assert.Contains(t, out, "is not a number")
	assert.Contains(t, out, "Binomial(n=4, p=0.5)")
	assert.Contains(t, out, "Bye.")
}

func TestMenuEndsOnEOF(t *testing.T) {
	out, _ := run(t, Options{}, "6", "3")
	assert.Contains(t, out, "Poisson(lambda=3)")
}

func TestMenuUnknownColumn(t *testing.T) {
	path := writeCSV(t)
	out, _ := run(t, Options{}, "1", path, "3", "Precio", "0")
	assert.Contains(t, out, "✗ Error: column 'Precio' not found; available columns: Month, Sales, Units, Turno")
}

func TestMenuExport(t *testing.T) {
	path := writeCSV(t)
	dir := t.TempDir()
	out, _ := run(t, Options{Exporter: export.New(dir)},
		"1", path,
		"14", "summary",
		"14", "histogram", "Sales",
		"14", "scatter", "Units", "Sales",
		"0",
	)
	assert.NotContains(t, out, "✗ Error")
	assert.Equal(t, 3, strings.Count(out, "✓ Exported"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestMenuExportWithoutDirectory(t *testing.T) {
	path := writeCSV(t)
	out, _ := run(t, Options{}, "1", path, "14", "0")
	assert.Contains(t, out, "✗ Error: export directory not configured")
}
