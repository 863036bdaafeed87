package frontend

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/log"
)

// Handler serves the fixtures as read-only JSON plus the static web build.
// The dataset can be swapped while serving, for the fixtures watcher.
type Handler struct {
	data    atomic.Pointer[fixtures.Dataset]
	static  fs.FS
	version string
}

// NewHandler creates a handler over ds. static is the web build with any
// "dist/" prefix already stripped; nil serves the API only.
func NewHandler(ds *fixtures.Dataset, static fs.FS, version string) *Handler {
	h := &Handler{static: static, version: version}
	h.data.Store(ds)
	return h
}

// SetDataset replaces the served data.
func (h *Handler) SetDataset(ds *fixtures.Dataset) {
	if ds != nil {
		h.data.Store(ds)
	}
}

// Dataset returns the data currently served.
func (h *Handler) Dataset() *fixtures.Dataset {
	return h.data.Load()
}

// Routes builds the complete mux: API routes first, the static catch-all
// last.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterAPIRoutes(mux)
	h.RegisterSPAHandler(mux)
	return ReadOnly(mux)
}

// RegisterAPIRoutes registers the /api endpoints on mux.
func (h *Handler) RegisterAPIRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api", h.handleIndex)
	mux.HandleFunc("/api/health", h.handleHealth)
	mux.HandleFunc("/api/applications", h.handleApplications)
	mux.HandleFunc("/api/applications/{id}", h.handleApplication)
	mux.HandleFunc("/api/contacts", h.handleContacts)
	mux.HandleFunc("/api/timeline", h.handleTimeline)
	mux.HandleFunc("/api/analytics", h.handleAnalytics)
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no endpoint at %s", r.URL.Path))
	})
}

// RegisterSPAHandler registers the static catch-all. Without a web build
// "/" answers with the API index instead.
func (h *Handler) RegisterSPAHandler(mux *http.ServeMux) {
	if h.static == nil {
		mux.HandleFunc("/{$}", h.handleIndex)
		return
	}
	mux.Handle("/", NewSPAHandler(h.static))
}

// ReadOnly rejects every method except GET and HEAD.
func ReadOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported, the data is read-only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Name:    "applytrack",
		Version: h.version,
		Source:  h.Dataset().Source(),
		Endpoints: []string{
			"/api/applications",
			"/api/applications/{id}",
			"/api/contacts",
			"/api/timeline",
			"/api/analytics",
			"/api/health",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Applications: len(h.Dataset().Applications())})
}

func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	company := r.URL.Query().Get("company")
	if status != "" && !fixtures.KnownStatus(status) {
		writeError(w, http.StatusBadRequest, "invalid_status", fmt.Sprintf("unknown status %q", status))
		return
	}

	apps := h.Dataset().ApplicationsWhere(status, company)
	writeJSON(w, http.StatusOK, ApplicationListResponse{
		Count:        len(apps),
		Status:       status,
		Company:      company,
		Applications: apps,
	})
}

func (h *Handler) handleApplication(w http.ResponseWriter, r *http.Request) {
	ds := h.Dataset()
	id := r.PathValue("id")
	app, ok := ds.Application(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no application %q", id))
		return
	}

	contacts := make([]fixtures.Contact, 0, len(app.ContactIDs))
	for _, cid := range app.ContactIDs {
		if c, ok := ds.Contact(cid); ok {
			contacts = append(contacts, c)
		}
	}
	writeJSON(w, http.StatusOK, ApplicationResponse{
		Application: app,
		Contacts:    contacts,
		Timeline:    nonNil(ds.TimelineFor(id)),
	})
}

func (h *Handler) handleContacts(w http.ResponseWriter, _ *http.Request) {
	contacts := h.Dataset().Contacts()
	writeJSON(w, http.StatusOK, ContactListResponse{Count: len(contacts), Contacts: nonNil(contacts)})
}

func (h *Handler) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	events := h.Dataset().Timeline()
	writeJSON(w, http.StatusOK, TimelineResponse{Count: len(events), Events: nonNil(events)})
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, AnalyticsResponse{Analytics: h.Dataset().Analytics()})
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorErr(log.CatServer, "writing response", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, APIError{Error: http.StatusText(status), Code: code, Details: details})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LogRequests logs one line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info(log.CatServer, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// Trace wraps each request in a server span named after the matched route.
func Trace(tracer trace.Tracer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			))
		defer span.End()

		req := r.WithContext(ctx)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		// ServeMux records the matched pattern on the request it was given.
		if req.Pattern != "" {
			span.SetName(r.Method + " " + req.Pattern)
			span.SetAttributes(attribute.String("http.route", req.Pattern))
		}
		span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	})
}
