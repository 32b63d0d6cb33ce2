package watch

// Source identifies which watchlist a record came from.
type Source string

const (
	SourceONU  Source = "ONU"
	SourceOFAC Source = "OFAC"
	SourceUE   Source = "UE"
)

// Sources lists the three watchlists in aggregation order.
var Sources = []Source{SourceONU, SourceOFAC, SourceUE}

// AliasSep joins multiple alias or program values into a single field.
const AliasSep = " | "

// Record is the uniform shape every source document is mapped into. All
// fields are plain strings so downstream comparisons stay total; Name is
// never empty once a record has been retained.
type Record struct {
	Source  Source `json:"source" msgpack:"source"`
	Name    string `json:"name" msgpack:"name"`
	AKA     string `json:"aka" msgpack:"aka"`
	Program string `json:"program" msgpack:"program"`
	Ref     string `json:"ref" msgpack:"ref"`
}

// MatchResult pairs a record with its query score and a human-readable
// explanation. Results are ephemeral, produced per search.
type MatchResult struct {
	Record
	Score     int    `json:"score"`
	MatchText string `json:"matchText"`
}
