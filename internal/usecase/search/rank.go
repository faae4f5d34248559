package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
)

// Score weights.
const (
	phraseWeight    = 100
	wordWeight      = 50
	typeWeight      = 25
	specialtyWeight = 30

	// minWordLength is the shortest query word that counts (runes).
	minWordLength = 3
)

// typeBonuses maps a literal query substring to the content kind it rewards.
// Image has no entry.
var typeBonuses = []struct {
	needle string
	kind   content.Kind
}{
	{"video", content.Video},
	{"guideline", content.Guideline},
	{"document", content.Document},
}

// Rank scores every item against query and returns the items with a positive
// score, best first. Ties keep their input order. items is not modified.
//
// query must be non-empty. Every item must have a title; otherwise
// Rank returns a domain.ErrInvalidContent error without scoring anything.
func Rank(query string, items []content.Item) ([]result.Scored, error) {
	for i := range items {
		if items[i].Title() == "" {
			return nil, domain.NewContentValidation(items[i].ID(), i, "title is required")
		}
	}

	queryLower := strings.ToLower(query)
	words := queryWords(queryLower)

	ranked := make([]result.Scored, 0, len(items))
	for i := range items {
		score, matched := scoreItem(queryLower, words, items[i])
		if score > 0 {
			ranked = append(ranked, result.New(items[i], score, matched))
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score() > ranked[b].Score()
	})

	return ranked, nil
}

// queryWords splits the lowercased query on whitespace and drops short words.
func queryWords(queryLower string) []string {
	fields := strings.Fields(queryLower)
	words := fields[:0]
	for _, w := range fields {
		if utf8.RuneCountInString(w) >= minWordLength {
			words = append(words, w)
		}
	}
	return words
}

// scoreItem applies the additive scoring rules. A single-word query that
// appears in the title is counted both as a phrase and as a word.
func scoreItem(queryLower string, words []string, item content.Item) (int, []string) {
	titleLower := strings.ToLower(item.Title())

	score := 0
	var matched []string

	if strings.Contains(titleLower, queryLower) {
		score += phraseWeight
		matched = append(matched, queryLower)
	}

	for _, w := range words {
		if strings.Contains(titleLower, w) {
			score += wordWeight
			matched = append(matched, w)
		}
	}

	for _, tb := range typeBonuses {
		if strings.Contains(queryLower, tb.needle) && item.Kind() == tb.kind {
			score += typeWeight
		}
	}

	// Specialty is matched as stored, without lowercasing.
	if item.HasSpecialty() && strings.Contains(queryLower, item.Specialty()) {
		score += specialtyWeight
		matched = append(matched, item.Specialty())
	}

	return score, matched
}
