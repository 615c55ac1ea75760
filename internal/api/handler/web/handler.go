// internal/api/handler/web/handler.go
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/newthinker/treasury/internal/api/session"
	"github.com/newthinker/treasury/internal/dashboard"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// Links builds backend download addresses.
type Links interface {
	FinancialsURL(ticker, statementType string, years []string, format string) string
	RatesURL(format string) string
}

// Recorder receives web metrics. *metrics.Registry implements it.
type Recorder interface {
	RecordExport(kind, status string)
}

type nopRecorder struct{}

func (nopRecorder) RecordExport(string, string) {}

// Options configures a Handler.
type Options struct {
	Sessions *session.Store
	// NewController builds the controller of a new session.
	NewController func() *dashboard.Controller
	// DefaultTicker is loaded when a new session first opens the dashboard.
	DefaultTicker string
	RecentSince   int
	Links         Links
	Recorder      Recorder
	Logger        *zap.Logger
	// TemplatesDir overrides the embedded templates when set.
	TemplatesDir string
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// page holds layout.html + dashboard.html
	page          *template.Template
	sessions      *session.Store
	newController func() *dashboard.Controller
	defaultTicker string
	recentSince   int
	links         Links
	recorder      Recorder
	logger        *zap.Logger
}

// NewHandler creates a new web handler. Templates are loaded from
// opts.TemplatesDir, falling back to the embedded templates.
func NewHandler(opts Options) (*Handler, error) {
	var fsys fs.FS
	if opts.TemplatesDir != "" {
		fsys = os.DirFS(opts.TemplatesDir)
	} else {
		subFS, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("accessing embedded templates: %w", err)
		}
		fsys = subFS
	}
	return NewHandlerWithFS(fsys, opts)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
// This is useful for testing or custom template sources.
func NewHandlerWithFS(fsys fs.FS, opts Options) (*Handler, error) {
	if opts.Sessions == nil || opts.NewController == nil || opts.Links == nil {
		return nil, fmt.Errorf("web handler requires sessions, controller factory and links")
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	// Parse layout first, then the page template
	page, err := template.ParseFS(fsys, "layout.html", "dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}

	return &Handler{
		page:          page,
		sessions:      opts.Sessions,
		newController: opts.NewController,
		defaultTicker: opts.DefaultTicker,
		recentSince:   opts.RecentSince,
		links:         opts.Links,
		recorder:      opts.Recorder,
		logger:        opts.Logger,
	}, nil
}

// Register adds the dashboard routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("POST /search", h.Search)
	mux.HandleFunc("GET /ratios", h.Ratios)
	mux.HandleFunc("GET /tab/{name}", h.Tab)
	mux.HandleFunc("POST /export/years/{preset}", h.YearPreset)
	mux.HandleFunc("GET /export/financials", h.Financials)
	mux.HandleFunc("GET /export/rates", h.Rates)
}

// render executes the page template with the given data
func (h *Handler) render(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// session returns the caller's session, creating one and setting its
// cookie when the request carries none. created reports a new session.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (sess *session.Session, created bool) {
	sess, err := h.sessions.FromRequest(r)
	if err == nil {
		return sess, false
	}

	sess = h.sessions.Create(h.newController())
	h.sessions.SetCookie(w, sess)
	h.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess, true
}

// backToDashboard ends a form action with a redirect to the page.
func backToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
