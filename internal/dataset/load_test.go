package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadCSVSniffsSemicolon(t *testing.T) {
	content := "\xef\xbb\xbfMes;Ventas;Unidades;Defectos;Turno\n" +
		"Enero;\"125,400\";1200;12;A\n" +
		"Febrero;\"98,100\";1100;9;B\n"
	tbl, err := Load("produccion.csv", strings.NewReader(content), Options{})
	require.NoError(t, err)

	assert.Equal(t, "produccion.csv", tbl.Name)
	assert.Equal(t, []string{ColMonth, ColSales, ColUnits, ColDefects, "Turno"}, tbl.Names())
	sales, _ := tbl.Column(ColSales)
	assert.Equal(t, []float64{125400, 98100}, sales.Numbers)
}

func TestLoadTSV(t *testing.T) {
	content := "Ventas\tTurno\n10\tA\n20\tB\n"
	tbl, err := Load("data.tsv", strings.NewReader(content), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{ColSales, "Turno"}, tbl.Names())
}

func TestLoadXLSX(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	_, err := wb.NewSheet("Datos")
	require.NoError(t, err)
	require.NoError(t, wb.SetSheetRow("Datos", "A1", &[]any{"Mes", "Ventas", "Defectos"}))
	require.NoError(t, wb.SetSheetRow("Datos", "A2", &[]any{"Enero", 1500.5, 3}))
	require.NoError(t, wb.SetSheetRow("Datos", "A3", &[]any{"Febrero", 1700, 4}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	raw := buf.Bytes()

	tbl, err := Load("planta.xlsx", bytes.NewReader(raw), Options{SheetName: "datos"})
	require.NoError(t, err)
	assert.Equal(t, []string{ColMonth, ColSales, ColDefects}, tbl.Names())
	sales, _ := tbl.Column(ColSales)
	assert.Equal(t, []float64{1500.5, 1700}, sales.Numbers)

	_, err = Load("planta.xlsx", bytes.NewReader(raw), Options{SheetName: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available sheets")

	// Sheet1 is the empty default sheet.
	_, err = Load("planta.xlsx", bytes.NewReader(raw), Options{SheetIndex: 1})
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestLoadXLSXReadsStoredValues(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"Ventas", "Unidades", "Defectos"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{45292, 1.0 / 3, 0.125}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{45323, 2.0 / 3, 0.25}))
	pct, err := wb.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	date, err := wb.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	fixed, err := wb.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, wb.SetCellStyle("Sheet1", "A2", "A3", date))
	require.NoError(t, wb.SetCellStyle("Sheet1", "B2", "B3", fixed))
	require.NoError(t, wb.SetCellStyle("Sheet1", "C2", "C3", pct))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := Load("planta.xlsx", bytes.NewReader(buf.Bytes()), Options{})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Rows)

	sales, _ := tbl.Column(ColSales)
	assert.Equal(t, KindNumber, sales.Kind)
	assert.Equal(t, []float64{45292, 45323}, sales.Numbers)

	units, _ := tbl.Column(ColUnits)
	assert.Equal(t, KindNumber, units.Kind)
	assert.Equal(t, []float64{1.0 / 3, 2.0 / 3}, units.Numbers)

	defects, _ := tbl.Column(ColDefects)
	assert.Equal(t, KindNumber, defects.Kind)
	assert.Equal(t, []float64{0.125, 0.25}, defects.Numbers)
}

func TestLoadXLSXSkipsBlankRows(t *testing.T) {
	wb := excelize.NewFile()
	defer wb.Close()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"Ventas", "Turno"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]any{10, "A"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A5", &[]any{30, "B"}))
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := Load("planta.xlsx", bytes.NewReader(buf.Bytes()), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{ColSales, "Turno"}, tbl.Names())
	assert.Equal(t, 2, tbl.Rows)
	sales, _ := tbl.Column(ColSales)
	assert.Equal(t, []float64{10, 30}, sales.Numbers)
}

func TestLoadCSVKeepsSeparatorOnlyRows(t *testing.T) {
	content := "Ventas,Unidades,Turno\n10,1,A\n,,\n\n30,3,B\n"
	tbl, err := Load("produccion.csv", strings.NewReader(content), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows, "empty lines are skipped, separator-only lines are missing rows")

	units, _ := tbl.Column(ColUnits)
	assert.Equal(t, []float64{1, 3}, units.Floats())
	assert.Equal(t, 1, units.Missing())
	shift, _ := tbl.Column("Turno")
	assert.Equal(t, []string{"A", "", "B"}, shift.Texts)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"report.pdf", "legacy.xls", "noext"} {
		_, err := Load(name, strings.NewReader("a,b\n1,2\n"), Options{})
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
	assert.False(t, Supported("x.json"))
	assert.True(t, Supported("X.CSV"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "prod.csv")
	require.NoError(t, os.WriteFile(p, []byte("Ventas,Turno\n1,A\n"), 0o644))
	tbl, err := LoadFile(p, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Rows)

	_, err = LoadFile(filepath.Join(dir, "missing.csv"), Options{})
	assert.Error(t, err)
	_, err = LoadFile(filepath.Join(dir, "prod.doc"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadEmptyCSV(t *testing.T) {
	_, err := Load("empty.csv", strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoColumns)
}
