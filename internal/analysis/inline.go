package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// ParseInline reads a dataset sent inside a request body. Two shapes are
// accepted: a list of objects, or a list of lists whose first row is the
// header. Headers are NFKC-normalized and trimmed but not renamed.
func ParseInline(raw json.RawMessage) (*dataset.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows []json.RawMessage
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadPayload)
	}
	first := bytes.TrimSpace(rows[0])
	var header []string
	var records [][]string
	var err error
	switch {
	case len(first) > 0 && first[0] == '{':
		header, records, err = inlineObjects(rows)
	case len(first) > 0 && first[0] == '[':
		header, records, err = inlineLists(rows)
	default:
		err = fmt.Errorf("%w: rows must be objects or lists", ErrBadPayload)
	}
	if err != nil {
		return nil, err
	}
	return dataset.BuildVerbatim("inline", header, records)
}

func inlineObjects(rows []json.RawMessage) ([]string, [][]string, error) {
	objs := make([]map[string]any, len(rows))
	keys := map[string]bool{}
	for i, r := range rows {
		if err := decodeNumbers(r, &objs[i]); err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrBadPayload, i+1, err)
		}
		for k := range objs[i] {
			keys[k] = true
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)
	records := make([][]string, len(objs))
	for i, o := range objs {
		rec := make([]string, len(header))
		for j, k := range header {
			rec[j] = cellString(o[k])
		}
		records[i] = rec
	}
	return header, records, nil
}

func inlineLists(rows []json.RawMessage) ([]string, [][]string, error) {
	var header []string
	records := make([][]string, 0, len(rows)-1)
	for i, r := range rows {
		var cells []any
		if err := decodeNumbers(r, &cells); err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrBadPayload, i+1, err)
		}
		rec := make([]string, len(cells))
		for j, c := range cells {
			rec[j] = cellString(c)
		}
		if i == 0 {
			header = rec
			continue
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func decodeNumbers(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// InlineANOVA parses raw with ParseInline and runs ANOVA on it.
func InlineANOVA(raw json.RawMessage, valueCol, groupCol string) (*stats.AnovaTable, error) {
	t, err := ParseInline(raw)
	if err != nil {
		return nil, err
	}
	return ANOVA(t, dataset.CleanHeader(valueCol), dataset.CleanHeader(groupCol))
}
