package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type workbookReader struct{}

func (workbookReader) CanRead(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Read extracts the selected sheet. The first non-empty row is the header and
// blank rows are skipped. Cells are read as stored values, not as their
// formatted display text.
func (workbookReader) Read(r io.Reader, opt Options) ([]string, [][]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet, err := selectSheet(wb.GetSheetList(), opt)
	if err != nil {
		return nil, nil, err
	}
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	kept := rows[:0]
	for _, row := range rows {
		if !blankRecord(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, nil, ErrNoColumns
	}
	return kept[0], kept[1:], nil
}

func selectSheet(sheets []string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", ErrNoColumns
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found; available sheets: %s", opt.SheetName, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
