package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRenamesAndDropsDuplicates(t *testing.T) {
	header := []string{"Ventas", "Venta neta", "Unidades", "Turno"}
	records := [][]string{
		{"100", "90", "10", "A"},
		{"200", "180", "20", "B"},
	}
	tbl, err := Build("prod.csv", header, records)
	require.NoError(t, err)

	assert.Equal(t, []string{ColSales, ColUnits, "Turno"}, tbl.Names())
	sales, ok := tbl.Column(ColSales)
	require.True(t, ok)
	assert.Equal(t, []float64{100, 200}, sales.Numbers, "first duplicate wins")
	assert.Equal(t, 2, tbl.Rows)
}

func TestBuildRepairsThousandsSeparators(t *testing.T) {
	header := []string{"Ventas", "Notas"}
	records := [][]string{
		{"125,400", "lote 1, turno A"},
		{"98,000", "ok"},
		{"", ""},
		{"1,000.5", ""},
	}
	tbl, err := Build("x.csv", header, records)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Rows, "all-empty records stay as missing rows")

	sales, _ := tbl.Column(ColSales)
	assert.Equal(t, KindNumber, sales.Kind)
	assert.Equal(t, []float64{125400, 98000, 1000.5}, sales.Floats())
	assert.True(t, math.IsNaN(sales.Numbers[2]))

	notes, _ := tbl.Column("Notas")
	assert.Equal(t, KindText, notes.Kind)
	assert.Equal(t, []string{"lote 1, turno A", "ok", "", ""}, notes.Texts, "text is left untouched")
}

func TestBuildMissingNumbersAreNaN(t *testing.T) {
	tbl, err := Build("x.csv", []string{"Defectos", "Turno"}, [][]string{{"3", "A"}, {" ", "B"}, {"5", "C"}})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows)
	col, _ := tbl.Column(ColDefects)
	require.Equal(t, KindNumber, col.Kind)
	assert.True(t, math.IsNaN(col.Numbers[1]))
	assert.Equal(t, []float64{3, 5}, col.Floats())
	assert.Equal(t, 1, col.Missing())
	assert.Nil(t, col.Value(1))
}

func TestBuildMalformedNumbersStayText(t *testing.T) {
	tbl, err := Build("x.csv", []string{"Unidades"}, [][]string{{"10"}, {"12x"}})
	require.NoError(t, err)
	col, _ := tbl.Column(ColUnits)
	assert.Equal(t, KindText, col.Kind)
	assert.Equal(t, []string{"10", "12x"}, col.Texts)
}

func TestBuildMonthIsCategorical(t *testing.T) {
	tbl, err := Build("x.csv", []string{"Mes", "Ventas"}, [][]string{{"1", "10"}, {"2", "20"}})
	require.NoError(t, err)
	month, _ := tbl.Column(ColMonth)
	assert.Equal(t, KindText, month.Kind)
	assert.Equal(t, []string{ColSales}, tbl.NumericNames())
	assert.Equal(t, map[string]Kind{ColMonth: KindText, ColSales: KindNumber}, tbl.Types())
}

func TestBuildShortRowsArePadded(t *testing.T) {
	tbl, err := Build("x.csv", []string{"A", "B"}, [][]string{{"1", "x"}, {"2"}})
	require.NoError(t, err)
	b, _ := tbl.Column("b")
	assert.Equal(t, []string{"x", ""}, b.Texts)
}

func TestBuildNoHeader(t *testing.T) {
	_, err := Build("x.csv", nil, nil)
	assert.ErrorIs(t, err, ErrNoColumns)
}

func TestSample(t *testing.T) {
	tbl, err := Build("x.csv", []string{"Ventas", "Turno"}, [][]string{{"1", "A"}, {"", "B"}, {"3", "C"}})
	require.NoError(t, err)
	s := tbl.Sample(2)
	require.Len(t, s, 2)
	assert.Equal(t, 1.0, s[0][ColSales])
	assert.Nil(t, s[1][ColSales])
	assert.Equal(t, "B", s[1]["Turno"])
	assert.Len(t, tbl.Sample(10), 3)
}

func TestBuildVerbatimKeepsNames(t *testing.T) {
	header := []string{" Ventas ", "Turno", "Ventas"}
	tbl, err := BuildVerbatim("inline", header, [][]string{{"10", "A", "99"}, {"12", "B", "98"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ventas", "Turno"}, tbl.Names())
	col, ok := tbl.Column("Ventas")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 12}, col.Numbers)
}

func TestBuildHexCodesStayText(t *testing.T) {
	tbl, err := Build("x.csv", []string{"Codigo", "Lote"}, [][]string{{"0x1A", "-0X10"}, {"0x2B", "7"}})
	require.NoError(t, err)
	for _, name := range []string{"Codigo", "Lote"} {
		col, ok := tbl.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, KindText, col.Kind, name)
	}
	codes, _ := tbl.Column("Codigo")
	assert.Equal(t, []string{"0x1A", "0x2B"}, codes.Texts)

	tbl, err = Build("x.csv", []string{"Valor"}, [][]string{{"0"}, {"-0.5"}, {"+12"}})
	require.NoError(t, err)
	col, _ := tbl.Column("Valor")
	assert.Equal(t, []float64{0, -0.5, 12}, col.Numbers)
}
