package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shortlog/internal/eventlog"
	"shortlog/internal/urlservice/domain"
	"shortlog/internal/urlservice/usecase"
	"shortlog/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for URL operations
type Handler struct {
	service *usecase.URLService
	events  usecase.EventLogger
	logger  *zap.Logger
	db      *sql.DB
	rdb     *redis.Client // nil when no cache is configured
}

// NewHandler creates a new Handler
func NewHandler(service *usecase.URLService, events usecase.EventLogger, logger *zap.Logger, db *sql.DB, rdb *redis.Client) *Handler {
	return &Handler{
		service: service,
		events:  events,
		logger:  logger,
		db:      db,
		rdb:     rdb,
	}
}

// CreateShortURLRequest represents the request body for creating a short URL
type CreateShortURLRequest struct {
	OriginalURL string `json:"original_url"`
}

// URLResponse represents the response for URL operations
type URLResponse struct {
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handler) toResponse(u *domain.URL) URLResponse {
	return URLResponse{
		ShortCode:   u.ShortCode,
		ShortURL:    h.service.ShortURL(u),
		OriginalURL: u.OriginalURL,
		CreatedAt:   u.CreatedAt,
	}
}

// CreateShortURL handles POST /api/v1/urls
func (h *Handler) CreateShortURL(w http.ResponseWriter, r *http.Request) {
	var req CreateShortURLRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logEvent(eventlog.LevelWarn, "Create short URL rejected: malformed JSON body")
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'original_url' field",
		))
		return
	}

	if req.OriginalURL == "" {
		h.logEvent(eventlog.LevelWarn, "Create short URL rejected: original_url is required")
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidURL,
			"Invalid URL",
			"original_url is required",
		))
		return
	}

	u, err := h.service.CreateShortURL(r.Context(), req.OriginalURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidURL):
			writeProblem(w, problemdetails.New(
				http.StatusBadRequest,
				problemdetails.TypeInvalidURL,
				"Invalid URL",
				err.Error(),
			))
		case errors.Is(err, domain.ErrShortCodeConflict):
			h.logEvent(eventlog.LevelError, "Create short URL failed: could not generate a unique code")
			internalError(w, "Failed to generate short code")
		default:
			h.logger.Error("create short url failed", zap.Error(err))
			h.logEvent(eventlog.LevelError, "Create short URL failed: "+err.Error())
			internalError(w, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(u))
}

// Redirect handles GET /{code}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	u, err := h.service.GetByShortCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrURLNotFound) {
			h.logEvent(eventlog.LevelWarn, "No URL found for code "+code)
			notFound(w, code)
			return
		}
		h.logger.Error("redirect lookup failed", zap.String("short_code", code), zap.Error(err))
		internalError(w, "Internal server error")
		return
	}

	http.Redirect(w, r, u.OriginalURL, http.StatusFound)
	h.logEvent(eventlog.LevelInfo, fmt.Sprintf("Redirected: %s -> %s", code, u.OriginalURL))
}

// GetURLDetails handles GET /api/v1/urls/{code}
func (h *Handler) GetURLDetails(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	u, err := h.service.GetByShortCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrURLNotFound) {
			notFound(w, code)
			return
		}
		internalError(w, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(u))
}

func (h *Handler) logEvent(level eventlog.Level, message string) {
	h.events.Log(string(eventlog.StackBackend), string(level), string(eventlog.PackageHandler), message)
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Healthz handles GET /healthz (liveness probe)
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz (readiness probe)
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Reason: "database unavailable: " + err.Error(),
		})
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "unavailable",
				Reason: "redis unavailable: " + err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
