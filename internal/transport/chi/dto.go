package chi

import (
	"time"

	domcontent "github.com/kailas-cloud/medspace/internal/domain/content"
	dommedia "github.com/kailas-cloud/medspace/internal/domain/media"
	"github.com/kailas-cloud/medspace/internal/domain/search/result"
	domusage "github.com/kailas-cloud/medspace/internal/domain/usage"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
)

type errorResponse struct {
	Error string `json:"error"`
}

type queryRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type speechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

type contentItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Specialty   string `json:"specialty,omitempty"`
	Description string `json:"description,omitempty"`
	MediaKey    string `json:"mediaKey,omitempty"`
}

type scoredItem struct {
	contentItem
	RelevanceScore  int      `json:"relevanceScore"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

type searchResponse struct {
	Query      string       `json:"query"`
	Results    []scoredItem `json:"results"`
	TotalFound int          `json:"totalFound"`
	TotalItems int          `json:"totalItems"`
}

type assistantResponse struct {
	Query      string       `json:"query"`
	Answer     string       `json:"answer"`
	Results    []scoredItem `json:"results"`
	TotalFound int          `json:"totalFound"`
	TotalItems int          `json:"totalItems"`
}

type contentListResponse struct {
	Items []contentItem `json:"items"`
	Total int           `json:"total"`
}

type mediaObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	Kind         string    `json:"kind"`
}

type mediaListResponse struct {
	Prefix  string        `json:"prefix"`
	Objects []mediaObject `json:"objects"`
}

type signedURLResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type usageResponse struct {
	Period        string       `json:"period"`
	PeriodStartAt time.Time    `json:"periodStartAt"`
	PeriodEndAt   time.Time    `json:"periodEndAt"`
	Usage         usageMetrics `json:"usage"`
	Budget        budgetStatus `json:"budget"`
}

type usageMetrics struct {
	Requests int `json:"requests"`
	Tokens   int `json:"tokens"`
}

type budgetStatus struct {
	TokensLimit     int64      `json:"tokensLimit"`
	TokensUsed      int64      `json:"tokensUsed"`
	TokensRemaining int64      `json:"tokensRemaining"`
	IsExhausted     bool       `json:"isExhausted"`
	ResetsAt        *time.Time `json:"resetsAt,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func contentToDTO(it domcontent.Item) contentItem {
	return contentItem{
		ID:          it.ID(),
		Title:       it.Title(),
		Type:        string(it.Kind()),
		Specialty:   it.Specialty(),
		Description: it.Description(),
		MediaKey:    it.MediaKey(),
	}
}

func contentFromDTO(c contentItem) contentuc.Draft {
	return contentuc.Draft{
		ID:          c.ID,
		Title:       c.Title,
		Type:        c.Type,
		Specialty:   c.Specialty,
		Description: c.Description,
		MediaKey:    c.MediaKey,
	}
}

func scoredToDTO(results []result.Scored) []scoredItem {
	out := make([]scoredItem, len(results))
	for i, r := range results {
		matched := r.MatchedKeywords()
		if matched == nil {
			matched = []string{}
		}
		out[i] = scoredItem{
			contentItem:     contentToDTO(r.Item()),
			RelevanceScore:  r.Score(),
			MatchedKeywords: matched,
		}
	}
	return out
}

func mediaToDTO(objects []dommedia.Object) []mediaObject {
	out := make([]mediaObject, len(objects))
	for i, o := range objects {
		out[i] = mediaObject{Key: o.Key, Size: o.Size, LastModified: o.LastModified.UTC(), Kind: string(o.Kind)}
	}
	return out
}

func usageToDTO(r domusage.Report) usageResponse {
	b := r.Budget()
	resp := usageResponse{
		Period:        string(r.Period()),
		PeriodStartAt: time.UnixMilli(r.PeriodStart()).UTC(),
		PeriodEndAt:   time.UnixMilli(r.PeriodEnd()).UTC(),
		Usage: usageMetrics{
			Requests: r.Metrics().Requests(),
			Tokens:   r.Metrics().Tokens(),
		},
		Budget: budgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensUsed:      b.TokensUsed(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
		},
	}
	if !b.Unlimited() && b.ResetsAt() > 0 {
		resetsAt := time.UnixMilli(b.ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}
	return resp
}
