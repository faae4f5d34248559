package result

import "github.com/kailas-cloud/medspace/internal/domain/content"

// Scored is a content item with its keyword relevance score.
type Scored struct {
	item            content.Item
	score           int
	matchedKeywords []string
}

// New creates a scored result. matched is kept as-is, duplicates included.
func New(item content.Item, score int, matched []string) Scored {
	return Scored{item: item, score: score, matchedKeywords: matched}
}

// Item returns the ranked content item.
func (r Scored) Item() content.Item { return r.item }

// ID returns the item identifier.
func (r Scored) ID() string { return r.item.ID() }

// Score returns the accumulated relevance score.
func (r Scored) Score() int { return r.score }

// MatchedKeywords returns the strings that contributed to the score, in match order.
func (r Scored) MatchedKeywords() []string { return r.matchedKeywords }
