package mcp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/report"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type tools struct {
	services Services
	now      func() time.Time
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *tools) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "Reload and list every checklist project with its overall progress",
	}, t.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project's categories, items, progress and this session's risk flags",
	}, t.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project from the security-audit or web-development checklist template",
	}, t.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project permanently",
	}, t.deleteProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_item",
		Description: "Flip the checked state of one checklist item",
	}, t.toggleItem)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_item_comment",
		Description: "Replace the comment of one checklist item; the text is stored verbatim",
	}, t.setItemComment)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_category_risk",
		Description: "Flip the high-risk flag of a category for this session (not persisted)",
	}, t.toggleCategoryRisk)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_report",
		Description: "Render the plain-text audit report for a project using this session's risk flags",
	}, t.generateReport)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent checklist changes, newest first",
	}, t.getRecentActivity)
}

func (t *tools) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResponse, error) {
	projects := t.services.Projects.FetchAll(ctx)
	resp := ListProjectsResponse{
		Projects: make([]ProjectSummary, 0, len(projects)),
		Loading:  t.services.Projects.Loading(),
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, summarize(p))
	}
	return nil, resp, nil
}

func (t *tools) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
	p, err := t.lookup(ctx, in.ID)
	if err != nil {
		return nil, ProjectResponse{}, toolError(err)
	}
	return nil, projectView(p, t.services.Sessions.RiskFlags(getSessionID(ctx), p.ID)), nil
}

func (t *tools) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
	req, typ, err := project.ValidateCreateInput(project.CreateRequest{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
	})
	if err != nil {
		return nil, ProjectResponse{}, toolError(err)
	}
	created, err := t.services.Projects.Create(ctx, req.Name, req.Description, typ)
	if err != nil {
		return nil, ProjectResponse{}, toolError(err)
	}
	return nil, projectView(*created, nil), nil
}

func (t *tools) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteProjectParams) (*sdkmcp.CallToolResult, DeleteProjectResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, DeleteProjectResponse{}, toolError(project.ErrInvalidInput)
	}
	if err := t.services.Projects.Delete(ctx, in.ID); err != nil {
		return nil, DeleteProjectResponse{}, toolError(err)
	}
	t.services.Sessions.Forget(in.ID)
	return nil, DeleteProjectResponse{ID: in.ID, Deleted: true}, nil
}

func (t *tools) toggleItem(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleItemParams) (*sdkmcp.CallToolResult, ItemResponse, error) {
	if _, err := t.lookupItem(ctx, in.ProjectID, in.CategoryID, in.ItemID); err != nil {
		return nil, ItemResponse{}, toolError(err)
	}
	if err := t.services.Projects.ToggleItem(ctx, in.ProjectID, in.CategoryID, in.ItemID); err != nil {
		return nil, ItemResponse{}, toolError(err)
	}
	return t.itemResponse(in.ProjectID, in.CategoryID, in.ItemID)
}

func (t *tools) setItemComment(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetItemCommentParams) (*sdkmcp.CallToolResult, ItemResponse, error) {
	if _, err := t.lookupItem(ctx, in.ProjectID, in.CategoryID, in.ItemID); err != nil {
		return nil, ItemResponse{}, toolError(err)
	}
	if err := t.services.Projects.SetItemComment(ctx, in.ProjectID, in.CategoryID, in.ItemID, in.Comment); err != nil {
		return nil, ItemResponse{}, toolError(err)
	}
	return t.itemResponse(in.ProjectID, in.CategoryID, in.ItemID)
}

func (t *tools) toggleCategoryRisk(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleCategoryRiskParams) (*sdkmcp.CallToolResult, ToggleCategoryRiskResponse, error) {
	p, err := t.lookup(ctx, in.ProjectID)
	if err != nil {
		return nil, ToggleCategoryRiskResponse{}, toolError(err)
	}
	if _, ok := p.Category(in.CategoryID); !ok {
		return nil, ToggleCategoryRiskResponse{}, toolError(project.ErrItemNotFound)
	}

	sessionID := getSessionID(ctx)
	flagged, err := t.services.Sessions.ToggleRisk(sessionID, p.ID, in.CategoryID)
	if err != nil {
		return nil, ToggleCategoryRiskResponse{}, toolError(err)
	}
	return nil, ToggleCategoryRiskResponse{
		ProjectID:    p.ID,
		CategoryID:   in.CategoryID,
		HighRisk:     flagged,
		FlaggedCount: report.RiskFlags(t.services.Sessions.RiskFlags(sessionID, p.ID)).Count(),
	}, nil
}

func (t *tools) generateReport(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateReportParams) (*sdkmcp.CallToolResult, GenerateReportResponse, error) {
	p, err := t.lookup(ctx, in.ProjectID)
	if err != nil {
		return nil, GenerateReportResponse{}, toolError(err)
	}

	var flags report.RiskFlags
	if in.HighRiskCategories != nil {
		flags = make(report.RiskFlags, len(in.HighRiskCategories))
		for _, id := range in.HighRiskCategories {
			flags[id] = true
		}
	} else {
		flags = t.services.Sessions.RiskFlags(getSessionID(ctx), p.ID)
	}

	now := t.now()
	text := report.Generate(p, flags, now)
	findings := 0
	for _, f := range report.Findings(p, flags) {
		findings += len(f.Items)
	}
	t.logger.Debug("report generated", "project_id", p.ID, "high_risk", flags.Count(), "findings", findings)

	return nil, GenerateReportResponse{
		Filename:      report.Filename(p, now),
		HighRiskCount: flags.Count(),
		FindingCount:  findings,
		Report:        text,
	}, nil
}

func (t *tools) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResponse, error) {
	opts := activity.ListActivityOptions{
		ProjectID: in.ProjectID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Type != "" {
		kind, err := activity.ParseActivityType(in.Type)
		if err != nil {
			return nil, GetRecentActivityResponse{}, toolError(err)
		}
		opts.ActivityType = &kind
	}

	entries, err := t.services.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, GetRecentActivityResponse{}, toolError(err)
	}
	resp := GetRecentActivityResponse{Entries: make([]ActivityEntryView, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, activityView(e))
	}
	return nil, resp, nil
}

// lookup returns a cached project, reloading the cache once on a miss.
func (t *tools) lookup(ctx context.Context, id string) (project.Project, error) {
	if strings.TrimSpace(id) == "" {
		return project.Project{}, project.ErrInvalidInput
	}
	if p, ok := t.services.Projects.Get(id); ok {
		return p, nil
	}
	t.services.Projects.FetchAll(ctx)
	if p, ok := t.services.Projects.Get(id); ok {
		return p, nil
	}
	return project.Project{}, project.ErrProjectNotFound
}

func (t *tools) lookupItem(ctx context.Context, projectID, categoryID, itemID string) (project.Item, error) {
	p, err := t.lookup(ctx, projectID)
	if err != nil {
		return project.Item{}, err
	}
	item, ok := p.Find(categoryID, itemID)
	if !ok {
		return project.Item{}, project.ErrItemNotFound
	}
	return item, nil
}

func (t *tools) itemResponse(projectID, categoryID, itemID string) (*sdkmcp.CallToolResult, ItemResponse, error) {
	p, ok := t.services.Projects.Get(projectID)
	if !ok {
		return nil, ItemResponse{}, toolError(project.ErrProjectNotFound)
	}
	cat, _ := p.Category(categoryID)
	item, _ := p.Find(categoryID, itemID)
	return nil, ItemResponse{
		ProjectID:        projectID,
		CategoryID:       categoryID,
		Item:             itemView(item),
		CategoryProgress: cat.Progress(),
		ProjectProgress:  p.Progress(),
	}, nil
}
