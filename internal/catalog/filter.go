package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// MaxSearchTerms bounds how many comma-separated terms take part in matching.
// Extra terms are dropped silently.
const MaxSearchTerms = 5

// ParseTerms lowercases raw, splits it on commas, trims each piece, drops empty
// pieces and keeps at most MaxSearchTerms of them. Repeated terms are kept.
func ParseTerms(raw string) []string {
	pieces := strings.Split(strings.ToLower(raw), ",")
	terms := make([]string, 0, MaxSearchTerms)
	for _, piece := range pieces {
		term := strings.TrimSpace(piece)
		if term == "" {
			continue
		}
		terms = append(terms, term)
		if len(terms) == MaxSearchTerms {
			break
		}
	}
	return terms
}

// Filter ranks items against the search text. With no effective terms every
// item is returned in catalog order. Otherwise only items matching at least one
// term are kept, ordered by match count with ties in catalog order.
func Filter(raw string, items []Item) []RankedItem {
	terms := ParseTerms(raw)
	if len(terms) == 0 {
		all := make([]RankedItem, len(items))
		for i, item := range items {
			all[i] = RankedItem{Item: item.clone()}
		}
		return all
	}

	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		if n := countMatches(item, terms); n > 0 {
			ranked = append(ranked, RankedItem{Item: item.clone(), MatchCount: n})
		}
	}

	slices.SortStableFunc(ranked, func(a, b RankedItem) int {
		return cmp.Compare(b.MatchCount, a.MatchCount)
	})
	return ranked
}

// countMatches counts terms found in the name or any note; a term counts once.
func countMatches(item Item, terms []string) int {
	name := strings.ToLower(item.Name)
	notes := make([]string, len(item.Notes))
	for i, note := range item.Notes {
		notes[i] = strings.ToLower(note)
	}

	count := 0
	for _, term := range terms {
		if strings.Contains(name, term) || slices.ContainsFunc(notes, func(note string) bool {
			return strings.Contains(note, term)
		}) {
			count++
		}
	}
	return count
}
