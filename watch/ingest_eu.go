package watch

import (
	"regexp"
	"strings"
)

// The EU list has shipped under several different schemas, so every lookup
// works over alternative tag names. Name resolution probes child tags in
// preference order and falls back to a name attribute on the entity
// element itself.
var (
	euEntityTags = []string{"sanctionEntity", "entity", "subject", "person", "organisation"}
	euNameTags   = []string{"wholeName", "name", "formattedFullName", "firstName", "lastName", "organisationName", "entityName", "subjectName"}
	euAliasTags  = []string{"nameAlias", "alias"}
	euRefTags    = []string{"euReferenceNumber", "logicalId"}
)

// IngestEU extracts records from the EU sanctions XML. The document is
// sanitized before any parse attempt; a structural parse error falls back
// to pattern extraction over the sanitized text. The returned flag reports
// whether the fallback path ran.
func IngestEU(raw string) ([]Record, bool) {
	clean := SanitizeXML(raw)
	doc, err := ParseXML(clean)
	if err != nil {
		return ingestEURegex(clean), true
	}
	return ingestEUDOM(doc), false
}

// IngestEUCSV extracts records from the delimited variant of the EU list,
// used when the XML document is unavailable.
func IngestEUCSV(raw string) ([]Record, error) {
	t, err := ParseDelimited(raw)
	if err != nil {
		return nil, err
	}
	var items []Record
	for _, r := range t.Rows {
		name := pickField(r, euNameFields)
		if name == "" {
			continue
		}
		items = append(items, Record{
			Source:  SourceUE,
			Name:    name,
			AKA:     pickField(r, euAKAFields),
			Program: pickField(r, euProgramFields),
			Ref:     pickField(r, euRefFields),
		})
	}
	return items, nil
}

func ingestEUDOM(doc *Element) []Record {
	var items []Record
	for _, node := range doc.FindAll(euEntityTags...) {
		name := ""
		for _, tag := range euNameTags {
			if n := node.First(tag); n != nil {
				if t := n.Text(); t != "" {
					name = t
					break
				}
			}
		}
		if name == "" {
			name = node.Attr("name")
		}
		if name == "" {
			continue
		}
		var aliases []string
		for _, n := range node.FindAll(euAliasTags...) {
			if t := n.Text(); t != "" {
				aliases = append(aliases, t)
			}
		}
		program := ""
		if n := node.First("programme"); n != nil {
			program = n.Text()
		}
		ref := ""
		if n := node.First(euRefTags...); n != nil {
			ref = n.Text()
		}
		if ref == "" {
			ref = node.Attr("euReferenceNumber")
		}
		items = append(items, Record{
			Source:  SourceUE,
			Name:    name,
			AKA:     strings.Join(aliases, AliasSep),
			Program: program,
			Ref:     ref,
		})
	}
	return items
}

// Fallback patterns: one block pattern per possible entity tag. A block
// matched by two different patterns is emitted twice; the fallback path
// does not deduplicate.
var (
	euBlockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<sanctionEntity[^>]*>(.*?)</sanctionEntity>`),
		regexp.MustCompile(`(?is)<entity[^>]*>(.*?)</entity>`),
		regexp.MustCompile(`(?is)<subject[^>]*>(.*?)</subject>`),
		regexp.MustCompile(`(?is)<person[^>]*>(.*?)</person>`),
		regexp.MustCompile(`(?is)<organisation[^>]*>(.*?)</organisation>`),
	}
	euNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<wholeName[^>]*>(.*?)</wholeName>`),
		regexp.MustCompile(`(?is)<formattedFullName[^>]*>(.*?)</formattedFullName>`),
		regexp.MustCompile(`(?is)<name[^>]*>(.*?)</name>`),
		regexp.MustCompile(`(?is)<firstName[^>]*>(.*?)</firstName>`),
		regexp.MustCompile(`(?is)<lastName[^>]*>(.*?)</lastName>`),
		regexp.MustCompile(`(?is)<formattedFirstName[^>]*>(.*?)</formattedFirstName>`),
		regexp.MustCompile(`(?is)<formattedLastName[^>]*>(.*?)</formattedLastName>`),
	}
	euProgramPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<programme[^>]*>(.*?)</programme>`),
		regexp.MustCompile(`(?is)<regulation[^>]*>(.*?)</regulation>`),
		regexp.MustCompile(`(?is)<regime[^>]*>(.*?)</regime>`),
	}
	euRefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<euReferenceNumber[^>]*>(.*?)</euReferenceNumber>`),
		regexp.MustCompile(`(?is)<referenceNumber[^>]*>(.*?)</referenceNumber>`),
		regexp.MustCompile(`(?is)<logicalId[^>]*>(.*?)</logicalId>`),
	}
	euNameCleanup = regexp.MustCompile(`[^\w\s\-.]`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

func ingestEURegex(raw string) []Record {
	var items []Record
	for _, block := range euBlockPatterns {
		for _, m := range block.FindAllStringSubmatch(raw, -1) {
			content := m[1]
			var found []string
			for _, p := range euNamePatterns {
				if sm := p.FindStringSubmatch(content); sm != nil {
					if v := strings.TrimSpace(sm[1]); v != "" {
						found = append(found, v)
					}
				}
			}
			if len(found) == 0 {
				continue
			}
			name := strings.Join(found, " ")
			name = euNameCleanup.ReplaceAllString(name, " ")
			name = strings.TrimSpace(spaceRuns.ReplaceAllString(name, " "))
			if name == "" {
				continue
			}
			items = append(items, Record{
				Source:  SourceUE,
				Name:    name,
				Program: firstPatternMatch(content, euProgramPatterns...),
				Ref:     firstPatternMatch(content, euRefPatterns...),
			})
		}
	}
	return items
}
