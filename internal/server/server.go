// Package server implements the HTTP figure service.
//
// The server accepts datasets and plot options over JSON, runs the shared
// plotting pipeline, and stores rendered figures under opaque IDs so that
// clients can fetch them later. It is intentionally stateless apart from the
// figure store, which sits on the same cache backend the pipeline uses.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/maflot/diceplot/pkg/buildinfo"
	"github.com/maflot/diceplot/pkg/cache"
	"github.com/maflot/diceplot/pkg/dataset"
	"github.com/maflot/diceplot/pkg/errors"
	"github.com/maflot/diceplot/pkg/pipeline"
)

// DefaultFigureTTL is how long stored figures remain fetchable.
const DefaultFigureTTL = 24 * time.Hour

// maxRequestBytes bounds the render request body size.
const maxRequestBytes = 32 << 20 // 32 MiB

// Server serves the figure rendering API.
type Server struct {
	runner *pipeline.Runner
	store  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithFigureTTL overrides how long rendered figures stay fetchable.
func WithFigureTTL(ttl time.Duration) Option { return func(s *Server) { s.ttl = ttl } }

// New creates a server. The store holds rendered figures; it may be the same
// cache the runner uses. A nil logger falls back to the default logger.
func New(runner *pipeline.Runner, store cache.Cache, logger *log.Logger, opts ...Option) *Server {
	if store == nil {
		store = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		ttl:    DefaultFigureTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routing table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	r.Get("/figures/{id}.{format}", s.handleFigure)
	return r
}

// renderRequest is the POST /api/render payload. Plot options are the same
// as the pipeline's; the dataset travels inline as CSV text because the
// server never reads files on behalf of clients.
type renderRequest struct {
	pipeline.Options

	// DatasetCSV is the dataset content, headers included.
	DatasetCSV string `json:"dataset_csv"`
}

// renderResponse describes a stored figure set.
type renderResponse struct {
	FigureID    string            `json:"figure_id"`
	DatasetHash string            `json:"dataset_hash"`
	URLs        map[string]string `json:"urls"`
	Warnings    []string          `json:"warnings,omitempty"`
	RowCount    int               `json:"row_count"`
	Cached      bool              `json:"cached"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req renderRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decoding request body"))
		return
	}

	// The server renders client-supplied data only. Local paths stay a CLI
	// affordance.
	if req.Input != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidDataset,
			"input paths are not accepted; send the dataset inline as dataset_csv"))
		return
	}
	if req.DatasetCSV == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidDataset, "dataset_csv is required"))
		return
	}

	tbl, err := dataset.ReadCSV(bytes.NewReader([]byte(req.DatasetCSV)))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := req.Options
	opts.Dataset = tbl
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id := uuid.NewString()
	urls := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		if err := s.store.Set(ctx, figureKey(id, format), data, s.ttl); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "storing figure"))
			return
		}
		urls[format] = path.Join("/figures", fmt.Sprintf("%s.%s", id, format))
	}

	writeJSON(w, http.StatusOK, renderResponse{
		FigureID:    id,
		DatasetHash: result.DatasetHash,
		URLs:        urls,
		Warnings:    result.Warnings,
		RowCount:    result.Stats.RowCount,
		Cached:      result.CacheInfo.AllHit(),
	})
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")

	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeFigureNotFound, "unknown figure %q", id))
		return
	}

	data, ok, err := s.store.Get(r.Context(), figureKey(id, format))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "reading figure store"))
		return
	}
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeFigureNotFound, "unknown figure %q", id))
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func figureKey(id, format string) string {
	return fmt.Sprintf("figure-store:%s:%s", id, format)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// statusFor maps structured error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidColumn, errors.ErrCodeInvalidDataset,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidBackend,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidTheme,
		errors.ErrCodeInvalidOrder, errors.ErrCodeMissingColor,
		errors.ErrCodeLayoutOverflow:
		return http.StatusBadRequest
	case errors.ErrCodeFigureNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
