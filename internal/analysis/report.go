package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// topValueLimit caps the categories listed per text column.
const topValueLimit = 5

// Report profiles every column of a table.
type Report struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
	Samples [][]string      `json:"-"`
}

// ColumnSummary captures the kind, completeness and statistics of a column.
type ColumnSummary struct {
	Name      string          `json:"name"`
	Kind      dataset.Kind    `json:"kind"`
	NonNull   int             `json:"non_null"`
	Missing   int             `json:"missing"`
	Numeric   *stats.Summary  `json:"numeric,omitempty"`
	Unique    int             `json:"unique,omitempty"`
	TopValues []CategoryCount `json:"top_values,omitempty"`
}

// CategoryCount is the frequency of one text value.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summarize builds the Report of t, keeping up to sampleRows example rows.
func Summarize(t *dataset.Table, sampleRows int) *Report {
	rep := &Report{Name: t.Name, Rows: t.Rows}
	for _, c := range t.Columns {
		cs := ColumnSummary{Name: c.Name, Kind: c.Kind, Missing: c.Missing()}
		cs.NonNull = c.Len() - cs.Missing
		if c.Kind == dataset.KindNumber {
			s := stats.Summarize(c.Floats())
			cs.Numeric = &s
		} else {
			cs.Unique, cs.TopValues = topValues(c.Texts, topValueLimit)
		}
		rep.Columns = append(rep.Columns, cs)
	}
	n := min(sampleRows, t.Rows)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = FormatCell(c.Value(i))
		}
		rep.Samples = append(rep.Samples, row)
	}
	return rep
}

func topValues(texts []string, limit int) (int, []CategoryCount) {
	counts := map[string]int{}
	for _, s := range texts {
		if s != "" {
			counts[s]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return len(counts), out
}

// FormatCell renders a cell for text output; missing cells are empty.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// FormatFloat renders a statistic with four significant digits, or "-" when
// it is undefined.
func FormatFloat(f stats.Float) string {
	if !f.Valid() {
		return "-"
	}
	return fmt.Sprintf("%.4g", float64(f))
}

// Markdown renders the report as plain sections followed by a sample table.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Columns {
		missPct := 0.0
		if total := c.NonNull + c.Missing; total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		if s := c.Numeric; s != nil && s.Count > 0 {
			b.WriteString(fmt.Sprintf(": min %s, max %s, mean %s, std %s",
				FormatFloat(s.Min), FormatFloat(s.Max), FormatFloat(s.Mean), FormatFloat(s.Std)))
		}
		if len(c.TopValues) > 0 {
			b.WriteString(": top ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
		}
		b.WriteString("\n")
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		names := make([]string, len(r.Columns))
		seps := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			names[i] = safeName(c.Name)
			seps[i] = "---"
		}
		b.WriteString("| " + strings.Join(names, " | ") + " |\n")
		b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		for _, row := range r.Samples {
			cells := make([]string, len(r.Columns))
			for i := range r.Columns {
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if utf8.RuneCountInString(val) > 80 {
					val = text.Trim(val, 77) + "..."
				}
				cells[i] = safeVal(val)
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}
	return b.String()
}

// Records flattens the report into CSV rows with a header line.
func (r *Report) Records() [][]string {
	out := [][]string{{"column", "kind", "non_null", "missing", "count", "mean", "std", "min", "max"}}
	for _, c := range r.Columns {
		rec := []string{c.Name, string(c.Kind), strconv.Itoa(c.NonNull), strconv.Itoa(c.Missing), "", "", "", "", ""}
		if s := c.Numeric; s != nil {
			rec[4] = strconv.Itoa(s.Count)
			rec[5] = csvFloat(s.Mean)
			rec[6] = csvFloat(s.Std)
			rec[7] = csvFloat(s.Min)
			rec[8] = csvFloat(s.Max)
		}
		out = append(out, rec)
	}
	return out
}

func csvFloat(f stats.Float) string {
	if !f.Valid() {
		return ""
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
