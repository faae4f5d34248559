package medspace

// ContentType is the kind of a catalog item.
type ContentType string

// Content type constants.
const (
	TypeVideo     ContentType = "video"
	TypeDocument  ContentType = "document"
	TypeGuideline ContentType = "guideline"
	TypeImage     ContentType = "image"
)

// Item is a catalog entry.
type Item struct {
	ID          string
	Title       string
	Type        ContentType
	Specialty   string
	Description string
	MediaKey    string
}

// Hit is a ranked item with its relevance score.
type Hit struct {
	Item
	Score           int
	MatchedKeywords []string
}

// SearchPage is one ranked page of the catalog.
type SearchPage struct {
	Query      string
	Hits       []Hit
	TotalFound int // items with a positive score
	TotalItems int // catalog size
}
