package watch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Mode selects the name-matching strategy for a search.
type Mode string

const (
	ModeStrict Mode = "strict"
	ModeSmart  Mode = "smart"
	ModeFuzzy  Mode = "fuzzy"
)

// ParseMode validates an operator-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeSmart, ModeFuzzy:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown match mode: %q", s)
}

// ErrEmptyQuery is returned when a search carries neither a name nor a
// reference to look for.
var ErrEmptyQuery = errors.New("ingresa al menos un nombre o documento")

const (
	// scoreThreshold is the minimum final score for a candidate to be
	// retained.
	scoreThreshold = 85
	// tokenScore is assigned on token containment in smart mode.
	tokenScore = 95
	// refBoostScore is the floor applied when the query reference appears
	// inside a candidate's aliases or reference.
	refBoostScore = 97
	// maxResults caps the returned list; Total still counts every
	// retained candidate.
	maxResults = 300
)

// SearchOutcome carries the retained matches, capped for presentation,
// plus the size of the full retained set.
type SearchOutcome struct {
	Results []MatchResult `json:"results"`
	Total   int           `json:"total"`
}

// Search scans the aggregated records for a name and/or reference under
// the given mode, scoring each candidate and keeping those at or above
// the threshold, ranked by score with ties in aggregation order. The scan
// is deterministic for fixed store contents.
func (s *Store) Search(queryName, queryRef string, mode Mode) (SearchOutcome, error) {
	queryName = strings.TrimSpace(queryName)
	queryRef = strings.TrimSpace(queryRef)
	if queryName == "" && queryRef == "" {
		return SearchOutcome{}, ErrEmptyQuery
	}
	normName := Normalize(queryName)
	normRef := Normalize(queryRef)

	var results []MatchResult
	for _, rec := range s.All() {
		score := 0
		matchText := ""
		if queryName != "" {
			switch mode {
			case ModeStrict:
				if Normalize(rec.Name) == normName {
					score = 100
					matchText = "Coincidencia exacta por nombre"
				}
			case ModeSmart:
				if TokenContainsAll(queryName, rec.Name) || TokenContainsAll(rec.Name, queryName) {
					score = tokenScore
					matchText = "Incluye todos los tokens"
				} else if sim := Similarity(queryName, rec.Name); sim >= scoreThreshold {
					score = sim
					matchText = fmt.Sprintf("Similitud %d%%", sim)
				}
			case ModeFuzzy:
				sim := Similarity(queryName, rec.Name)
				score = sim
				matchText = fmt.Sprintf("Similitud %d%%", sim)
			}
		}
		if queryRef != "" {
			inAKA := strings.Contains(Normalize(rec.AKA), normRef)
			inRef := strings.Contains(Normalize(rec.Ref), normRef)
			if inAKA || inRef {
				if refBoostScore > score {
					score = refBoostScore
				}
				if matchText != "" {
					matchText += " + posible ID en alias/ref"
				} else {
					matchText = "posible ID en alias/ref"
				}
			}
		}
		if score >= scoreThreshold {
			results = append(results, MatchResult{Record: rec, Score: score, MatchText: matchText})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	total := len(results)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return SearchOutcome{Results: results, Total: total}, nil
}
