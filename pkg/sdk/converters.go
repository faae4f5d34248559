package medspace

import (
	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
)

func itemToDraft(it Item) contentuc.Draft {
	return contentuc.Draft{
		ID:          it.ID,
		Title:       it.Title,
		Type:        string(it.Type),
		Specialty:   it.Specialty,
		Description: it.Description,
		MediaKey:    it.MediaKey,
	}
}

func itemFromDomain(it domcontent.Item) Item {
	return Item{
		ID:          it.ID(),
		Title:       it.Title(),
		Type:        ContentType(it.Kind()),
		Specialty:   it.Specialty(),
		Description: it.Description(),
		MediaKey:    it.MediaKey(),
	}
}

// itemToDomain hydrates without validation so the ranker sees the item as given.
func itemToDomain(it Item) domcontent.Item {
	return domcontent.Reconstruct(
		it.ID, it.Title, domcontent.Kind(it.Type), it.Specialty, it.Description, it.MediaKey,
	)
}

func hitFromDomain(r result.Scored) Hit {
	matched := r.MatchedKeywords()
	if matched == nil {
		matched = []string{}
	}
	return Hit{
		Item:            itemFromDomain(r.Item()),
		Score:           r.Score(),
		MatchedKeywords: matched,
	}
}

func hitsFromDomain(rs []result.Scored) []Hit {
	out := make([]Hit, len(rs))
	for i, r := range rs {
		out[i] = hitFromDomain(r)
	}
	return out
}
