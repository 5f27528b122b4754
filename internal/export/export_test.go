package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func fixedExporter(t *testing.T) *Exporter {
	t.Helper()
	e := New(filepath.Join(t.TempDir(), "exports"))
	e.now = func() time.Time { return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC) }
	return e
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"summary", "histogram", "scatter"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), k)
	}
	_, err := ParseKind("pie")
	assert.Error(t, err)
}

func TestSummaryCSV(t *testing.T) {
	tbl, err := dataset.Build("produccion.xlsx", []string{"Ventas", "Turno"}, [][]string{{"10", "A"}, {"20", "B"}})
	require.NoError(t, err)
	e := fixedExporter(t)

	path, err := e.Summary(analysis.Summarize(tbl, 0))
	require.NoError(t, err)
	assert.Equal(t, "summary_produccion_20240517_093000.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Sales", recs[1][0])
	assert.Equal(t, "15", recs[1][5])
}

func TestExportsInTheSameSecondKeepEveryFile(t *testing.T) {
	e := fixedExporter(t)
	first, err := e.Histogram("Ventas", []float64{1, 2, 3})
	require.NoError(t, err)
	second, err := e.Histogram("Ventas", []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, "histogram_Ventas_20240517_093000.png", filepath.Base(first))
	assert.Equal(t, "histogram_Ventas_20240517_093000_2.png", filepath.Base(second))

	const workers = 8
	paths := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := e.Histogram("Unidades", []float64{float64(i), float64(i + 1)})
			assert.NoError(t, err)
			paths[i] = p
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p], p)
		seen[p] = true
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, pngMagic))
	}
	entries, err := os.ReadDir(e.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, workers+2, "no temp files are left behind")
}

func TestHistogramBins(t *testing.T) {
	bins := Histogram([]float64{1, 2, 2, 3, 4, 5, 6, 8})
	// Sturges: ceil(log2 8) + 1 = 4 bins of width 1.75
	require.Len(t, bins, 4)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 8, total)
	assert.Equal(t, 1.0, bins[0].Low)
	assert.InDelta(t, 8.0, bins[3].High, 1e-12)
	assert.Equal(t, []int{3, 2, 2, 1}, []int{bins[0].Count, bins[1].Count, bins[2].Count, bins[3].Count}, "max value falls into the last bin")

	single := Histogram([]float64{5, 5, 5})
	require.Len(t, single, 1)
	assert.Equal(t, 3, single[0].Count)
	assert.Nil(t, Histogram(nil))
}

func TestHistogramExport(t *testing.T) {
	e := fixedExporter(t)
	path, err := e.Histogram("Ventas por mes", []float64{10, 12, 12, 15, 18, 21, 21, 21})
	require.NoError(t, err)
	assert.Equal(t, "histogram_Ventas_por_mes_20240517_093000.png", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = e.Histogram("x", []float64{7, 7})
	assert.NoError(t, err, "constant samples still render")
	_, err = e.Histogram("x", nil)
	assert.Error(t, err)
}

func TestScatterExport(t *testing.T) {
	e := fixedExporter(t)
	path, err := e.Scatter("Units", "Sales", []float64{1, 2, 3, 4}, []float64{110, 190, 320, 390})
	require.NoError(t, err)
	assert.Equal(t, "scatter_Units_Sales_20240517_093000.png", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))

	_, err = e.Scatter("Units", "Sales", []float64{2, 2}, []float64{3, 3})
	assert.NoError(t, err, "degenerate ranges are padded")
}
