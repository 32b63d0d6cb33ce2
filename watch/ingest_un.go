package watch

import (
	"regexp"
	"sort"
	"strings"
)

// The UN consolidated list spells one name over several sibling tags and
// wraps aliases in their own blocks, so extraction works over families of
// tag names rather than single fields.
var (
	unEntityTags = []string{"INDIVIDUAL", "ENTITY"}
	unNameTags   = []string{"NAME", "FIRST_NAME", "SECOND_NAME", "THIRD_NAME", "FOURTH_NAME"}
	unAliasTags  = []string{"ALIAS_NAME", "ALIAS"}
	unRefTags    = []string{"REFERENCE_NUMBER", "DATAID", "UNIQUE_ID"}
	unListTags   = []string{"UN_LIST_TYPE", "LIST_TYPE"}
)

// IngestONU extracts records from the UN consolidated XML. The document is
// sanitized before any parse attempt; a structural parse error falls back
// to pattern extraction over the sanitized text. The returned flag reports
// whether the fallback path ran.
func IngestONU(raw string) ([]Record, bool) {
	clean := SanitizeXML(raw)
	doc, err := ParseXML(clean)
	if err != nil {
		return ingestONURegex(clean), true
	}
	return ingestONUDOM(doc), false
}

func ingestONUDOM(doc *Element) []Record {
	var items []Record
	for _, node := range doc.FindAll(unEntityTags...) {
		var parts []string
		for _, n := range node.FindAll(unNameTags...) {
			if t := n.Text(); t != "" {
				parts = append(parts, t)
			}
		}
		name := strings.TrimSpace(strings.Join(parts, " "))
		if name == "" {
			continue
		}
		var aliases []string
		for _, n := range node.FindAll(unAliasTags...) {
			if t := n.Text(); t != "" {
				aliases = append(aliases, t)
			}
		}
		ref := ""
		if n := node.First(unRefTags...); n != nil {
			ref = n.Text()
		}
		var programs []string
		for _, n := range node.FindAll(unListTags...) {
			if t := n.Text(); t != "" {
				programs = append(programs, t)
			}
		}
		items = append(items, Record{
			Source:  SourceONU,
			Name:    name,
			AKA:     strings.Join(aliases, AliasSep),
			Program: strings.Join(programs, AliasSep),
			Ref:     ref,
		})
	}
	return items
}

// Fallback patterns: one block pattern per entity kind, and ordered text
// patterns within each block (first match per name family wins). Aliases
// are not recoverable on this path.
var (
	unBlockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<INDIVIDUAL[^>]*>(.*?)</INDIVIDUAL>`),
		regexp.MustCompile(`(?is)<ENTITY[^>]*>(.*?)</ENTITY>`),
	}
	unNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<FIRST_NAME[^>]*>(.*?)</FIRST_NAME>`),
		regexp.MustCompile(`(?is)<SECOND_NAME[^>]*>(.*?)</SECOND_NAME>`),
		regexp.MustCompile(`(?is)<THIRD_NAME[^>]*>(.*?)</THIRD_NAME>`),
		regexp.MustCompile(`(?is)<NAME[^>]*>(.*?)</NAME>`),
	}
	unRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<REFERENCE_NUMBER[^>]*>(.*?)</REFERENCE_NUMBER>`),
		regexp.MustCompile(`(?is)<DATAID[^>]*>(.*?)</DATAID>`),
	}
	unListPattern = regexp.MustCompile(`(?is)<UN_LIST_TYPE[^>]*>(.*?)</UN_LIST_TYPE>`)
)

func ingestONURegex(raw string) []Record {
	// The two entity kinds interleave in the document, so matches from both
	// patterns are merged by start offset to keep records in document order.
	type block struct {
		start   int
		content string
	}
	var blocks []block
	for _, p := range unBlockPatterns {
		for _, idx := range p.FindAllStringSubmatchIndex(raw, -1) {
			blocks = append(blocks, block{start: idx[0], content: raw[idx[2]:idx[3]]})
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })

	var items []Record
	for _, b := range blocks {
		var parts []string
		for _, p := range unNamePatterns {
			if sm := p.FindStringSubmatch(b.content); sm != nil {
				if v := strings.TrimSpace(sm[1]); v != "" {
					parts = append(parts, v)
				}
			}
		}
		name := strings.TrimSpace(strings.Join(parts, " "))
		if name == "" {
			continue
		}
		items = append(items, Record{
			Source:  SourceONU,
			Name:    name,
			Program: firstPatternMatch(b.content, unListPattern),
			Ref:     firstPatternMatch(b.content, unRefPatterns...),
		})
	}
	return items
}

func firstPatternMatch(content string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if sm := p.FindStringSubmatch(content); sm != nil {
			if v := strings.TrimSpace(sm[1]); v != "" {
				return v
			}
		}
	}
	return ""
}
