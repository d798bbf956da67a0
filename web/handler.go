package web

import (
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tranvictor/claimview/claim"
)

//go:embed card.html
var cardHTML string

var cardTemplate = template.Must(template.New("card").Parse(cardHTML))

// SessionFactory opens the session of one page load. Every request gets its
// own; nothing is shared between requests.
type SessionFactory func(rawQuery string, logger *slog.Logger) *claim.Session

type Options struct {
	NewSession SessionFactory
	Gateway    string
	Logger     *slog.Logger
	// Ready backs /readyz. Nil means always ready.
	Ready func(ctx context.Context) (*Readiness, error)
}

// Readiness describes the provider a page load would use right now.
type Readiness struct {
	Source  string `json:"source"`
	ChainID string `json:"chainId"`
	Block   uint64 `json:"block,omitempty"`
}

type Handler struct {
	newSession SessionFactory
	gateway    string
	logger     *slog.Logger
	ready      func(ctx context.Context) (*Readiness, error)
}

func NewHandler(opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{
		newSession: opts.NewSession,
		gateway:    opts.Gateway,
		logger:     opts.Logger,
		ready:      opts.Ready,
	}
}

// NewRouter registers the widget routes and the middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.recoverMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Get("/claim", h.claimPage)
	r.Get("/claim.json", h.claimJSON)
	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}
	report, err := h.ready(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "NOT_READY", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*Readiness
	}{Status: "ready", Readiness: report})
}

func (h *Handler) resolve(r *http.Request) claim.View {
	logger := h.logger.With("request_id", requestIDFromContext(r.Context()))
	s := h.newSession(r.URL.RawQuery, logger)
	defer func() {
		if err := s.Close(); err != nil {
			logger.WarnContext(r.Context(), "couldn't close session providers", "error", err)
		}
	}()
	s.Run(r.Context())
	return s.View()
}

type cardData struct {
	State         string
	Error         *claim.ErrorState
	ProviderError string
	Fields        []claim.Field
}

// claimPage renders the embeddable card. The raw query string is the JSON
// payload. Failures are part of the card, so the status is always 200.
func (h *Handler) claimPage(w http.ResponseWriter, r *http.Request) {
	v := h.resolve(r)
	data := cardData{
		State:         v.State.String(),
		Error:         v.Error,
		ProviderError: v.ProviderError,
	}
	if v.Record != nil {
		data.Fields = v.Record.Fields(h.gateway)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := cardTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "couldn't render claim card",
			"request_id", requestIDFromContext(r.Context()), "error", err)
	}
}

func (h *Handler) claimJSON(w http.ResponseWriter, r *http.Request) {
	v := h.resolve(r)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, toViewJSON(v, h.gateway))
}
