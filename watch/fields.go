package watch

import "strings"

// Candidate field names per logical field, evaluated in order with the
// first non-empty value winning. Kept as plain data so each source's
// resolution policy stays auditable.
var (
	ofacNameFields    = []string{"name", "sdnName", "SDN_NAME", "SDN Name", "Entity Name", "entityName", "fullName", "lastName", "firstName"}
	ofacAKAFields     = []string{"akaList", "AKA", "aka", "AKA List", "aliases", "alias"}
	ofacProgramFields = []string{"program", "Program", "programList", "Program List", "sanctions"}
	ofacRefFields     = []string{"uid", "ent_num", "ID", "sdnId", "id", "uniqueID"}

	euNameFields    = []string{"name", "Name", "Whole Name", "NAME", "logicalId", "subject"}
	euAKAFields     = []string{"Alias", "alias", "Alias Type", "Name Alias"}
	euProgramFields = []string{"Regime", "Programme", "Regulation", "Remark", "reason"}
	euRefFields     = []string{"EU.IdentificationNumber", "Number", "Reference Number", "Group ID"}
)

// pickField returns the first non-empty value among the candidate keys.
func pickField(r Row, candidates []string) string {
	for _, key := range candidates {
		if v := strings.TrimSpace(r[key]); v != "" {
			return v
		}
	}
	return ""
}

// pickNameLike scans the columns in header order for one whose name
// contains "name" case-insensitively. Used when none of the exact
// candidates resolves.
func pickNameLike(r Row, headers []string) string {
	for _, key := range headers {
		if !strings.Contains(strings.ToLower(key), "name") {
			continue
		}
		if v := strings.TrimSpace(r[key]); v != "" {
			return v
		}
	}
	return ""
}
