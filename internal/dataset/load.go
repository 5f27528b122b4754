package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how uploaded files are read.
type Options struct {
	// Delimiter for delimited text. If 0, sniffed from the header line.
	Delimiter rune
	// SheetName selects a workbook sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet used when SheetName is empty.
	SheetIndex int
}

// reader turns one file format into a raw header and records.
type reader interface {
	CanRead(filename string) bool
	Read(r io.Reader, opt Options) (header []string, records [][]string, err error)
}

var readers []reader

func register(r reader) {
	readers = append(readers, r)
}

func init() {
	register(delimitedReader{})
	register(workbookReader{})
}

// Supported reports whether filename has an extension a reader handles.
func Supported(filename string) bool {
	return pick(filename) != nil
}

func pick(filename string) reader {
	for _, r := range readers {
		if r.CanRead(filename) {
			return r
		}
	}
	return nil
}

// Load reads an uploaded file, chosen by the extension of filename, and
// returns the normalized table.
func Load(filename string, r io.Reader, opt Options) (*Table, error) {
	rd := pick(filename)
	if rd == nil {
		return nil, unsupported(filename)
	}
	header, records, err := rd.Read(r, opt)
	if err != nil {
		return nil, err
	}
	return Build(filepath.Base(filename), header, records)
}

// LoadFile is Load for a file on disk.
func LoadFile(path string, opt Options) (*Table, error) {
	if !Supported(path) {
		return nil, unsupported(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return Load(path, f, opt)
}

func unsupported(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}
