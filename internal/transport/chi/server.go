// Package chi exposes the medspace use cases over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/medspace/internal/domain"
	logpkg "github.com/kailas-cloud/medspace/internal/logger"
	assistantuc "github.com/kailas-cloud/medspace/internal/usecase/assistant"
	contentuc "github.com/kailas-cloud/medspace/internal/usecase/content"
	healthuc "github.com/kailas-cloud/medspace/internal/usecase/health"
	mediauc "github.com/kailas-cloud/medspace/internal/usecase/media"
	searchuc "github.com/kailas-cloud/medspace/internal/usecase/search"
	usageuc "github.com/kailas-cloud/medspace/internal/usecase/usage"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers. assistant and media may be disabled.
type Server struct {
	search        *searchuc.Service
	searchLimit   int
	catalog       *contentuc.Service
	assistant     *assistantuc.Service
	media         *mediauc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// Services groups the use cases served over HTTP.
type Services struct {
	Search      *searchuc.Service
	SearchLimit int
	Catalog     *contentuc.Service
	Assistant   *assistantuc.Service
	Media       *mediauc.Service
	Usage       *usageuc.Service
	Health      *healthuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{
		search:      svc.Search,
		searchLimit: svc.SearchLimit,
		catalog:     svc.Catalog,
		assistant:   svc.Assistant,
		media:       svc.Media,
		usage:       svc.Usage,
		health:      svc.Health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		catalogIntegrityHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, true),
		sentinelHandler(domain.ErrInvalidContent, http.StatusBadRequest, true),
		sentinelHandler(domain.ErrInvalidMediaKey, http.StatusBadRequest, true),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, false),
		sentinelHandler(domain.ErrAssistantQuotaExceeded, http.StatusPaymentRequired, false),
		sentinelHandler(domain.ErrAssistantProviderError, http.StatusBadGateway, false),
		sentinelHandler(domain.ErrMediaDisabled, http.StatusNotImplemented, false),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ai-search", s.AISearch)
	r.Route("/ai-assistant", func(r chi.Router) {
		r.Post("/", s.AIAssistant)
		r.Post("/speech", s.AISpeech)
	})
	r.Route("/content", func(r chi.Router) {
		r.Get("/", s.ListContent)
		r.Post("/", s.CreateContent)
		r.Get("/{id}", s.GetContent)
		r.Put("/{id}", s.UpsertContent)
		r.Delete("/{id}", s.DeleteContent)
	})
	r.Get("/media", s.ListMedia)
	r.Get("/media/sign", s.SignMedia)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func setAssistantHeaders(w http.ResponseWriter, usage *domain.ChatUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Assistant-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler maps a sentinel to a status. Validation sentinels expose the
// wrapped detail; the rest expose only the sentinel text.
func sentinelHandler(sentinel error, status int, detailed bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if detailed {
			msg = err.Error()
		}
		writeError(w, status, msg)
		return true
	}
}

// catalogIntegrityHandler reports a stored item that cannot be ranked.
// It is a server-side data problem, not a bad request.
func catalogIntegrityHandler(w http.ResponseWriter, err error) bool {
	var cve *domain.ContentValidationError
	if !errors.As(err, &cve) {
		return false
	}
	writeError(w, http.StatusInternalServerError, cve.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
