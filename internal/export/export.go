// Package export writes analysis results to CSV and PNG files.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/utils"
)

// Kind names an export type.
type Kind string

const (
	KindSummary   Kind = "summary"
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
)

// ParseKind validates an export kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSummary, KindHistogram, KindScatter:
		return k, nil
	}
	return "", fmt.Errorf("unknown export kind %q (want summary, histogram or scatter)", s)
}

// maxNameAttempts bounds the _N suffixes tried when a name is taken.
const maxNameAttempts = 1000

// Exporter writes files named <kind>_<subject>_<timestamp>.<ext> under Dir.
// Exports landing in the same second get a _2, _3, ... suffix.
type Exporter struct {
	Dir string
	now func() time.Time
}

// New returns an Exporter rooted at dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir, now: time.Now}
}

func (e *Exporter) write(kind Kind, subject, ext string, data []byte) (string, error) {
	if err := utils.EnsureDir(e.Dir); err != nil {
		return "", err
	}
	base := fmt.Sprintf("%s_%s_%s", kind, utils.FileSlug(subject), e.now().Format("20060102_150405"))
	for n := 1; n <= maxNameAttempts; n++ {
		name := base
		if n > 1 {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		path := filepath.Join(e.Dir, name+"."+ext)
		// O_EXCL reserves the name; SafeWriteFile then replaces the placeholder.
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("reserve %s: %w", filepath.Base(path), err)
		}
		_ = f.Close()
		if err := utils.SafeWriteFile(path, data); err != nil {
			_ = os.Remove(path)
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free name for %s.%s", base, ext)
}

// Summary writes the report as CSV and returns the file path.
func (e *Exporter) Summary(rep *analysis.Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rep.Records()); err != nil {
		return "", fmt.Errorf("encode summary csv: %w", err)
	}
	name := rep.Name
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	return e.write(KindSummary, name, "csv", buf.Bytes())
}
