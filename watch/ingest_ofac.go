package watch

import (
	"strings"
	"unicode/utf8"
)

// Header keywords that mark the first line of the SDN file as a field-name
// header. The file is published both with and without one.
var ofacHeaderKeywords = []string{"name", "sdn", "entity"}

// The SDN file uses "-0-" as a placeholder in unpopulated name cells.
const ofacPlaceholder = "-0-"

// IngestOFAC extracts records from the OFAC SDN list. A header-candidate
// first line selects field-name lookup; otherwise columns are mapped by
// position (id, name, type, program).
func IngestOFAC(raw string) ([]Record, error) {
	if ofacHasHeader(raw) {
		t, err := ParseDelimited(raw)
		if err != nil {
			return nil, err
		}
		return ofacFromRows(t), nil
	}
	rows, err := ParseDelimitedPositional(raw)
	if err != nil {
		return nil, err
	}
	return ofacFromColumns(rows), nil
}

func ofacHasHeader(raw string) bool {
	first := raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	first = strings.ToLower(first)
	for _, kw := range ofacHeaderKeywords {
		if strings.Contains(first, kw) {
			return true
		}
	}
	return false
}

func ofacFromRows(t *Table) []Record {
	var items []Record
	for _, r := range t.Rows {
		name := pickField(r, ofacNameFields)
		if name == "" {
			name = pickNameLike(r, t.Headers)
		}
		if name == "" {
			continue
		}
		items = append(items, Record{
			Source:  SourceOFAC,
			Name:    name,
			AKA:     pickField(r, ofacAKAFields),
			Program: pickField(r, ofacProgramFields),
			Ref:     pickField(r, ofacRefFields),
		})
	}
	return items
}

// Positional layout: column 0 id, 1 name, 2 type, 3 program. The type
// value stands in for the program when column 3 is empty.
func ofacFromColumns(rows [][]string) []Record {
	var items []Record
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		ref := strings.TrimSpace(column(row, 0))
		name := stripQuotes(column(row, 1))
		typ := stripQuotes(column(row, 2))
		program := stripQuotes(column(row, 3))
		if name == "" || name == ofacPlaceholder || utf8.RuneCountInString(name) < 2 {
			continue
		}
		if program == "" {
			program = typ
		}
		items = append(items, Record{
			Source:  SourceOFAC,
			Name:    name,
			Program: program,
			Ref:     ref,
		})
	}
	return items
}

func column(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func stripQuotes(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, `"`, ""))
}
