package chi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/medspace/internal/domain"
	"github.com/kailas-cloud/medspace/internal/domain/search/request"
	domusage "github.com/kailas-cloud/medspace/internal/domain/usage"
	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
)

// AISearch handles POST /ai-search.
func (s *Server) AISearch(w http.ResponseWriter, r *http.Request) {
	var body queryRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := body.Limit
	if limit <= 0 {
		limit = s.searchLimit
	}
	req, err := request.New(body.Query, limit)
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err))
		return
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:      resp.Query,
		Results:    scoredToDTO(resp.Results),
		TotalFound: resp.TotalFound,
		TotalItems: resp.TotalItems,
	})
}

// AIAssistant handles POST /ai-assistant.
func (s *Server) AIAssistant(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeError(w, http.StatusNotImplemented, "assistant not configured")
		return
	}

	var body queryRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	ans, err := s.assistant.Ask(ctx, body.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setAssistantHeaders(w, usage)
	writeJSON(w, http.StatusOK, assistantResponse{
		Query:      ans.Query,
		Answer:     ans.Text,
		Results:    scoredToDTO(ans.Results),
		TotalFound: ans.TotalFound,
		TotalItems: ans.TotalItems,
	})
}

// AISpeech handles POST /ai-assistant/speech. Responds with audio/mpeg.
func (s *Server) AISpeech(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeError(w, http.StatusNotImplemented, "assistant not configured")
		return
	}

	var body speechRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	audio, err := s.assistant.Speak(r.Context(), body.Text, body.Voice)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// ListContent handles GET /content.
func (s *Server) ListContent(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out := make([]contentItem, len(items))
	for i, it := range items {
		out[i] = contentToDTO(it)
	}
	writeJSON(w, http.StatusOK, contentListResponse{Items: out, Total: len(out)})
}

// CreateContent handles POST /content.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	var body contentItem
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.catalog.Create(r.Context(), contentFromDTO(body))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/content/"+item.ID())
	writeJSON(w, http.StatusCreated, contentToDTO(item))
}

// GetContent handles GET /content/{id}.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contentToDTO(item))
}

// UpsertContent handles PUT /content/{id}.
func (s *Server) UpsertContent(w http.ResponseWriter, r *http.Request) {
	var body contentItem
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	item, created, err := s.catalog.Upsert(r.Context(), id, contentFromDTO(body))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/content/"+id)
	}
	writeJSON(w, status, contentToDTO(item))
}

// DeleteContent handles DELETE /content/{id}.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMedia handles GET /media?prefix=.
func (s *Server) ListMedia(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	objects, err := s.media.List(r.Context(), prefix)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mediaListResponse{Prefix: prefix, Objects: mediaToDTO(objects)})
}

// SignMedia handles GET /media/sign?key=.
func (s *Server) SignMedia(w http.ResponseWriter, r *http.Request) {
	signed, err := s.media.Sign(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, signedURLResponse{URL: signed.URL, Key: signed.Key, ExpiresAt: signed.ExpiresAt.UTC()})
}

// GetUsage handles GET /usage?period=day|month.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period, err := domusage.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, usageToDTO(s.usage.GetReport(r.Context(), period)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}
