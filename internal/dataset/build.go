package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNoColumns is returned when the input has no header row.
	ErrNoColumns = errors.New("file has no header row")
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Build turns a raw header and records into a normalized Table: headers are
// renamed, duplicate columns dropped (first wins), column types repaired and
// missing text filled with "".
func Build(name string, header []string, records [][]string) (*Table, error) {
	return build(name, NormalizeHeaders(header), records)
}

// BuildVerbatim is Build without the canonical renaming: headers are only
// cleaned with CleanHeader. It serves payloads that already name columns.
func BuildVerbatim(name string, header []string, records [][]string) (*Table, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = CleanHeader(h)
	}
	return build(name, names, records)
}

func build(name string, names []string, records [][]string) (*Table, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}

	var keep []int
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		keep = append(keep, i)
	}

	t := &Table{Name: name, Rows: len(records), Columns: make([]*Column, 0, len(keep))}
	for _, idx := range keep {
		cells := make([]string, len(records))
		for r, rec := range records {
			if idx < len(rec) {
				cells[r] = rec[idx]
			}
		}
		t.Columns = append(t.Columns, repairColumn(names[idx], cells))
	}
	return t, nil
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// repairColumn coerces a column to numbers when every non-empty cell parses,
// first as-is and then with thousands-separating commas stripped. Otherwise
// the cells are kept as text untouched.
func repairColumn(name string, cells []string) *Column {
	if name != ColMonth {
		if nums, ok := coerceNumbers(cells, false); ok {
			return &Column{Name: name, Kind: KindNumber, Numbers: nums}
		}
		if nums, ok := coerceNumbers(cells, true); ok {
			return &Column{Name: name, Kind: KindNumber, Numbers: nums}
		}
	}
	texts := make([]string, len(cells))
	for i, v := range cells {
		if strings.TrimSpace(v) == "" {
			continue
		}
		texts[i] = v
	}
	return &Column{Name: name, Kind: KindText, Texts: texts}
}

func coerceNumbers(cells []string, stripCommas bool) ([]float64, bool) {
	out := make([]float64, len(cells))
	present := 0
	for i, raw := range cells {
		v := strings.TrimSpace(raw)
		if stripCommas {
			v = strings.ReplaceAll(v, ",", "")
		}
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		if hexLiteral(v) {
			return nil, false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
		present++
	}
	return out, present > 0
}

// hexLiteral reports a 0x-prefixed value, which ParseFloat would accept as a
// hexadecimal float.
func hexLiteral(v string) bool {
	v = strings.TrimLeft(v, "+-")
	return len(v) > 1 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}
