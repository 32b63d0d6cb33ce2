package watch

import "testing"

func TestIngestONUWellFormed(t *testing.T) {
	doc := `<?xml version="1.0"?>
<CONSOLIDATED_LIST>
  <INDIVIDUALS>
    <INDIVIDUAL>
      <REFERENCE_NUMBER>QDi.001</REFERENCE_NUMBER>
      <DATAID>6908555</DATAID>
      <FIRST_NAME>JOHN</FIRST_NAME>
      <SECOND_NAME>DOE</SECOND_NAME>
      <UN_LIST_TYPE>Al-Qaida</UN_LIST_TYPE>
      <INDIVIDUAL_ALIAS>
        <ALIAS_NAME>JD</ALIAS_NAME>
      </INDIVIDUAL_ALIAS>
    </INDIVIDUAL>
  </INDIVIDUALS>
  <ENTITIES>
    <ENTITY>
      <FIRST_NAME>ACME HOLDINGS</FIRST_NAME>
      <UN_LIST_TYPE>Taliban</UN_LIST_TYPE>
    </ENTITY>
    <ENTITY>
      <COMMENTS1>no name here</COMMENTS1>
    </ENTITY>
  </ENTITIES>
</CONSOLIDATED_LIST>`
	items, fellBack := IngestONU(doc)
	if fellBack {
		t.Fatalf("well-formed document must not fall back")
	}
	if len(items) != 2 {
		t.Fatalf("got %d records, want 2 (nameless entity skipped)", len(items))
	}
	r := items[0]
	if r.Source != SourceONU || r.Name != "JOHN DOE" || r.AKA != "JD" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.Ref != "QDi.001" {
		t.Fatalf("Ref = %q, want first reference-id in document order", r.Ref)
	}
	if r.Program != "Al-Qaida" {
		t.Fatalf("Program = %q", r.Program)
	}
	if items[1].Name != "ACME HOLDINGS" || items[1].Program != "Taliban" {
		t.Fatalf("unexpected entity record: %+v", items[1])
	}
}

func TestIngestONUMultipleAliases(t *testing.T) {
	doc := `<L><INDIVIDUAL>
  <FIRST_NAME>ABU</FIRST_NAME>
  <INDIVIDUAL_ALIAS><ALIAS_NAME>ONE</ALIAS_NAME></INDIVIDUAL_ALIAS>
  <INDIVIDUAL_ALIAS><ALIAS_NAME>TWO</ALIAS_NAME></INDIVIDUAL_ALIAS>
</INDIVIDUAL></L>`
	items, _ := IngestONU(doc)
	if len(items) != 1 || items[0].AKA != "ONE | TWO" {
		t.Fatalf("aliases not joined: %+v", items)
	}
}

func TestIngestONUFallback(t *testing.T) {
	// Unbalanced markup forces the pattern-based path.
	doc := `<CONSOLIDATED_LIST>
<INDIVIDUAL>
  <FIRST_NAME>JANE</FIRST_NAME>
  <SECOND_NAME>ROE</SECOND_NAME>
  <REFERENCE_NUMBER>QDi.002</REFERENCE_NUMBER>
  <UN_LIST_TYPE>Al-Qaida</UN_LIST_TYPE>
</INDIVIDUAL>
<ENTITY>
  <NAME>BROKEN CORP</NAME>
</ENTITY>
<UNCLOSED>`
	items, fellBack := IngestONU(doc)
	if !fellBack {
		t.Fatalf("expected fallback on unparsable markup")
	}
	if len(items) != 2 {
		t.Fatalf("fallback recovered %d records, want 2", len(items))
	}
	if items[0].Name != "JANE ROE" || items[0].Ref != "QDi.002" || items[0].Program != "Al-Qaida" {
		t.Fatalf("unexpected fallback record: %+v", items[0])
	}
	if items[0].AKA != "" {
		t.Fatalf("aliases are not recoverable on the fallback path")
	}
	if items[1].Name != "BROKEN CORP" {
		t.Fatalf("unexpected entity record: %+v", items[1])
	}
}

func TestIngestONUFallbackDocumentOrder(t *testing.T) {
	// An entity ahead of an individual must come out first, even though the
	// two kinds are extracted by separate patterns.
	doc := `<CONSOLIDATED_LIST>
<ENTITY>
  <NAME>FIRST CORP</NAME>
</ENTITY>
<INDIVIDUAL>
  <FIRST_NAME>SECOND</FIRST_NAME>
  <SECOND_NAME>PERSON</SECOND_NAME>
</INDIVIDUAL>
<UNCLOSED>`
	items, fellBack := IngestONU(doc)
	if !fellBack {
		t.Fatalf("expected fallback on unparsable markup")
	}
	if len(items) != 2 {
		t.Fatalf("fallback recovered %d records, want 2", len(items))
	}
	if items[0].Name != "FIRST CORP" || items[1].Name != "SECOND PERSON" {
		t.Fatalf("document order not preserved: %+v", items)
	}
}

func TestIngestONUNeverPanics(t *testing.T) {
	for _, doc := range []string{"", "garbage", "<", "<INDIVIDUAL>", "&&&&"} {
		items, _ := IngestONU(doc)
		if len(items) != 0 {
			t.Fatalf("unexpected records from %q: %+v", doc, items)
		}
	}
}
