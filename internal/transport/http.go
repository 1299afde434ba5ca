package transport

import (
	"context"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ProjectLookup reads projects from the store cache.
type ProjectLookup interface {
	FetchAll(ctx context.Context) []project.Project
	Get(id string) (project.Project, bool)
}

// SessionStore holds the per-session risk flags.
type SessionStore interface {
	RiskFlags(sessionID, projectID string) map[string]bool
	Close(sessionID string) error
}

// Deps holds what the non-MCP routes read from.
type Deps struct {
	Projects ProjectLookup
	Sessions SessionStore
	Logger   *slog.Logger
	// Now stamps downloaded reports. Defaults to time.Now.
	Now func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	deps Deps
}

// NewServer creates an HTTP server router. The health check is always open;
// the MCP endpoint and report downloads sit behind authMiddleware when it is
// non-nil.
func NewServer(mcpHandler http.Handler, deps Deps, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	srv := &Server{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Use(SessionMiddleware)

		if mcpHandler != nil {
			r.Handle("/mcp", srv.endSession(mcpHandler))
		}
		if deps.Projects != nil {
			r.Get("/projects/{id}/report", srv.handleReport)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReport serves the plain-text report as a download. Risk flags come
// from the comma separated risk query parameter, or from the caller's MCP
// session when the parameter is absent.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.deps.Projects.Get(id)
	if !ok {
		s.deps.Projects.FetchAll(r.Context())
		p, ok = s.deps.Projects.Get(id)
	}
	if !ok {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	var flags report.RiskFlags
	if r.URL.Query().Has("risk") {
		flags = parseRiskParam(r.URL.Query().Get("risk"))
	} else if sessionID, ok := SessionIDFromContext(r.Context()); ok && s.deps.Sessions != nil {
		flags = s.deps.Sessions.RiskFlags(sessionID, p.ID)
	}

	now := s.deps.Now()
	body := report.Generate(p, flags, now)
	filename := report.Filename(p, now)

	s.deps.Logger.Debug("report downloaded", "project_id", p.ID, "high_risk", flags.Count())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// endSession drops the risk flags of a session the client terminates with
// DELETE /mcp.
func (s *Server) endSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if r.Method != http.MethodDelete || s.deps.Sessions == nil {
			return
		}
		if sessionID, ok := SessionIDFromContext(r.Context()); ok {
			if err := s.deps.Sessions.Close(sessionID); err == nil {
				s.deps.Logger.Debug("session closed", "session_id", sessionID)
			}
		}
	})
}

func parseRiskParam(raw string) report.RiskFlags {
	flags := report.RiskFlags{}
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			flags[id] = true
		}
	}
	return flags
}
