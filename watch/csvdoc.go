package watch

import (
	"encoding/csv"
	"strings"
)

// Row is one delimited record, keyed by header field name.
type Row map[string]string

// Table is a parsed delimited document: the header in original column
// order plus one Row per data line. Header order matters for the
// name-like field scan, which must stay deterministic.
type Table struct {
	Headers []string
	Rows    []Row
}

// ParseDelimited parses tabular text using the first line as a header.
// Ragged rows are tolerated; missing trailing columns stay empty.
func ParseDelimited(raw string) (*Table, error) {
	records, err := readAllRecords(raw)
	if err != nil {
		return nil, err
	}
	t := &Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Headers = records[0]
	for _, rec := range records[1:] {
		row := Row{}
		for i, h := range t.Headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ParseDelimitedPositional parses tabular text with no header line; rows
// come back as raw column slices.
func ParseDelimitedPositional(raw string) ([][]string, error) {
	return readAllRecords(raw)
}

func readAllRecords(raw string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := records[:0]
	for _, rec := range records {
		if !emptyRecord(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func emptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
