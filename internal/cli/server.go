package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boxflow/pkg/buildinfo"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/errors"
	"github.com/matzehuels/boxflow/pkg/observability"
	"github.com/matzehuels/boxflow/pkg/pipeline"
	"github.com/matzehuels/boxflow/pkg/storage"
)

// server serves the layout pipeline over HTTP.
type server struct {
	runner   *pipeline.Runner
	store    storage.Store
	logger   *log.Logger
	defaults pipeline.Options
	ttl      time.Duration
	maxBody  int64
	timeout  time.Duration
}

// layoutSummary is one entry of GET /api/v1/layouts.
type layoutSummary struct {
	ID           string    `json:"id"`
	DocumentHash string    `json:"document_hash"`
	Nodes        int       `json:"nodes"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layouts", s.handleListLayouts)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
		r.Post("/render", s.handleRender)
	})

	return r
}

// logRequests logs every request with its status and duration and reports
// it to the HTTP observability hooks. Handlers find a logger carrying the
// request ID in their context.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ctx := withLogger(r.Context(), logger)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, route, status, time.Since(start))

		logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// handleLayout lays out the posted document, stores the snapshot and
// returns it with its new ID.
func (s *server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, r, http.StatusOK, buildinfo.Get())
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	l, err := s.runner.Layout(ctx, doc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rec := storage.NewRecord(l.Snapshot, doc.Hash(), s.ttl)
	if err := s.store.Put(ctx, rec); err != nil {
		s.respondError(w, r, err)
		return
	}
	loggerFromContext(ctx).Debug("stored layout", "id", rec.ID, "nodes", len(rec.Snapshot.Nodes))

	w.Header().Set("Location", "/api/v1/layouts/"+rec.ID)
	s.respondJSON(w, r, http.StatusCreated, rec.Snapshot)
}

func (s *server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out := make([]layoutSummary, 0, len(recs))
	for _, rec := range recs {
		sum := layoutSummary{
			ID:           rec.ID,
			DocumentHash: rec.DocumentHash,
			CreatedAt:    rec.CreatedAt,
			ExpiresAt:    rec.ExpiresAt,
		}
		if rec.Snapshot != nil {
			sum.Nodes = len(rec.Snapshot.Nodes)
		}
		out = append(out, sum)
	}
	s.respondJSON(w, r, http.StatusOK, out)
}

func (s *server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, rec.Snapshot)
}

func (s *server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRender lays out the posted document and returns one artifact in the
// format named by the format query parameter.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.ExecuteDocument(ctx, doc, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Layout-Cache", cacheStatus(result.CacheInfo.LayoutHit))
	w.Header().Set("X-Render-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		loggerFromContext(ctx).Warn("write response", "error", err)
	}
}

// decodeRequest reads the document body and the option query parameters.
// It writes the error response itself and reports false on failure.
func (s *server) decodeRequest(w http.ResponseWriter, r *http.Request) (*document.Document, pipeline.Options, bool) {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)
	opts.Logger = loggerFromContext(r.Context())

	if err := queryOptions(r, &opts); err != nil {
		s.respondError(w, r, err)
		return nil, opts, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.respondJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Code:  errors.ErrCodeInvalidInput,
			})
			return nil, opts, false
		}
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return nil, opts, false
	}

	doc, err := s.runner.DecodeReader(r.Context(), bytes.NewReader(body), requestFormat(r))
	if err != nil {
		s.respondError(w, r, err)
		return nil, opts, false
	}
	return doc, opts, true
}

// requestFormat picks the document encoding from the Content-Type header.
func requestFormat(r *http.Request) document.Format {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/toml", "text/toml", "text/x-toml":
		return document.FormatTOML
	}
	return document.FormatJSON
}

// queryOptions applies the layout and render query parameters to opts.
func queryOptions(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"rem", &opts.RootFontSize},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", f.name, v)
		}
		*f.dst = n
	}

	bools := []struct {
		name string
		set  func(bool)
	}{
		{"detailed", func(b bool) { opts.Detailed = b }},
		{"refresh", func(b bool) { opts.Refresh = b }},
		{"embed_fonts", func(b bool) { opts.EmbedFonts = b }},
		{"scrollbars", func(b bool) { opts.Scrollbars = &b }},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", b.name, v)
		}
		b.set(on)
	}

	if v := q.Get("measurer"); v != "" {
		opts.Measurer = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	return opts.ValidateAndSetDefaults()
}

// statusOf maps error codes to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeTimeout), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func (s *server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	resp := errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	if status == http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		loggerFromContext(r.Context()).Error("request failed", "error", err)
		resp.Error = "internal error"
		if resp.Code == "" {
			resp.Code = errors.ErrCodeInternal
		}
	}
	s.respondJSON(w, r, status, resp)
}

func (s *server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFromContext(r.Context()).Warn("encode response", "error", err)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
