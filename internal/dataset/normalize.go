package dataset

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// Canonical column names produced by NormalizeHeaders.
const (
	ColSales       = "Sales"
	ColUnits       = "Units"
	ColDefects     = "Defects"
	ColMonth       = "Month"
	ColResponsible = "Responsible"
)

type renameRule struct {
	keywords  []string
	canonical string
}

// Rules run in order and independently; the last matching rule wins, so
// "Fecha de venta" becomes Month.
var renameRules = []renameRule{
	{keywords: []string{"sale", "venta"}, canonical: ColSales},
	{keywords: []string{"unit", "unidad"}, canonical: ColUnits},
	{keywords: []string{"defect"}, canonical: ColDefects},
	{keywords: []string{"month", "mes", "fecha", "date"}, canonical: ColMonth},
}

var responsibleAliases = map[string]string{
	"Responsable de producción": ColResponsible,
	"Responsable producción":    ColResponsible,
	"Responsable":               ColResponsible,
}

// CleanHeader trims a raw header after NFKC normalization.
func CleanHeader(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}

// NormalizeHeader maps one raw header onto the canonical vocabulary.
// Non-matching names are returned trimmed.
func NormalizeHeader(name string) string {
	clean := CleanHeader(name)
	key := strings.ToLower(unidecode.Unidecode(clean))
	out := clean
	for _, rule := range renameRules {
		for _, kw := range rule.keywords {
			if strings.Contains(key, kw) {
				out = rule.canonical
				break
			}
		}
	}
	if alias, ok := responsibleAliases[out]; ok {
		out = alias
	}
	return out
}

// NormalizeHeaders normalizes every header. Duplicates produced by renaming
// are kept here; Build drops them.
func NormalizeHeaders(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeHeader(n)
	}
	return out
}
