package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectStore defines the project store operations needed by MCP.
type ProjectStore interface {
	FetchAll(ctx context.Context) []project.Project
	Loading() bool
	Get(id string) (project.Project, bool)
	Create(ctx context.Context, name, description string, t project.Type) (*project.Project, error)
	Delete(ctx context.Context, id string) error
	ToggleItem(ctx context.Context, projectID, categoryID, itemID string) error
	SetItemComment(ctx context.Context, projectID, categoryID, itemID, comment string) error
}

// RiskTracker defines the per-session risk flag operations needed by MCP.
type RiskTracker interface {
	ToggleRisk(sessionID, projectID, categoryID string) (bool, error)
	RiskFlags(sessionID, projectID string) map[string]bool
	Forget(projectID string)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects  ProjectStore
	Sessions  RiskTracker
	Activity  ActivityService
	Templates TemplateCatalog
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      OwnerResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
	// Now stamps generated reports. Defaults to time.Now.
	Now func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) (*sdkmcp.Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "checkvault",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)
	if err := registerTemplateResources(server, cfg.Services.Templates); err != nil {
		return nil, err
	}

	// Each call wraps the handlers added before it, so auth runs first and
	// traffic logging sees the resolved actor and session.
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddReceivingMiddleware(sessionMiddleware())
	// Stdio is local only and never authenticated.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled || cfg.Resolver == nil {
		server.AddReceivingMiddleware(noAuthMiddleware(activity.DefaultActor))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		services: cfg.Services,
		now:      cfg.Now,
		logger:   cfg.Logger,
	})

	return server, nil
}
