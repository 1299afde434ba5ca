package mcp

import (
	"time"

	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
)

type ListProjectsParams struct{}

type ProjectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TypeLabel   string `json:"type_label"`
	CreatedAt   string `json:"created_at"`
	Progress    int    `json:"progress"`
}

type ListProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
	Loading  bool             `json:"loading"`
}

type GetProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type ItemView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Checked bool   `json:"checked"`
	Comment string `json:"comment"`
}

type CategoryView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Progress int        `json:"progress"`
	HighRisk bool       `json:"high_risk"`
	Items    []ItemView `json:"items"`
}

type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	TypeLabel   string         `json:"type_label"`
	CreatedAt   string         `json:"created_at"`
	Progress    int            `json:"progress"`
	Categories  []CategoryView `json:"categories"`
}

type CreateProjectParams struct {
	Name        string `json:"name" jsonschema:"project display name"`
	Description string `json:"description" jsonschema:"what is being audited or built"`
	Type        string `json:"type" jsonschema:"template to copy: security-audit or web-development"`
}

type DeleteProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type DeleteProjectResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ToggleItemParams struct {
	ProjectID  string `json:"project_id"`
	CategoryID string `json:"category_id"`
	ItemID     string `json:"item_id"`
}

type SetItemCommentParams struct {
	ProjectID  string `json:"project_id"`
	CategoryID string `json:"category_id"`
	ItemID     string `json:"item_id"`
	Comment    string `json:"comment" jsonschema:"stored verbatim; empty clears the comment"`
}

type ItemResponse struct {
	ProjectID        string   `json:"project_id"`
	CategoryID       string   `json:"category_id"`
	Item             ItemView `json:"item"`
	CategoryProgress int      `json:"category_progress"`
	ProjectProgress  int      `json:"project_progress"`
}

type ToggleCategoryRiskParams struct {
	ProjectID  string `json:"project_id"`
	CategoryID string `json:"category_id"`
}

type ToggleCategoryRiskResponse struct {
	ProjectID    string `json:"project_id"`
	CategoryID   string `json:"category_id"`
	HighRisk     bool   `json:"high_risk"`
	FlaggedCount int    `json:"flagged_count"`
}

type GenerateReportParams struct {
	ProjectID          string   `json:"project_id"`
	HighRiskCategories []string `json:"high_risk_categories,omitempty" jsonschema:"overrides the session's risk flags when set"`
}

type GenerateReportResponse struct {
	Filename      string `json:"filename"`
	HighRiskCount int    `json:"high_risk_count"`
	FindingCount  int    `json:"finding_count"`
	Report        string `json:"report"`
}

type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type,omitempty" jsonschema:"project_created, project_deleted, item_toggled or item_commented"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type ActivityEntryView struct {
	ID         int64  `json:"id"`
	ProjectID  string `json:"project_id"`
	CategoryID string `json:"category_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	Actor      string `json:"actor"`
	Type       string `json:"type"`
	Summary    string `json:"summary"`
	CreatedAt  string `json:"created_at"`
}

type GetRecentActivityResponse struct {
	Entries []ActivityEntryView `json:"entries"`
}

func summarize(p project.Project) ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		TypeLabel:   p.Type.Label(),
		CreatedAt:   formatTime(p.CreatedAt),
		Progress:    p.Progress(),
	}
}

func projectView(p project.Project, flags map[string]bool) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		TypeLabel:   p.Type.Label(),
		CreatedAt:   formatTime(p.CreatedAt),
		Progress:    p.Progress(),
		Categories:  make([]CategoryView, 0, len(p.Categories)),
	}
	for _, cat := range p.Categories {
		view := CategoryView{
			ID:       cat.ID,
			Name:     cat.Name,
			Progress: cat.Progress(),
			HighRisk: flags[cat.ID],
			Items:    make([]ItemView, 0, len(cat.Items)),
		}
		for _, item := range cat.Items {
			view.Items = append(view.Items, itemView(item))
		}
		resp.Categories = append(resp.Categories, view)
	}
	return resp
}

func itemView(item project.Item) ItemView {
	return ItemView{ID: item.ID, Title: item.Title, Checked: item.Checked, Comment: item.Comment}
}

func activityView(e activity.ActivityEntry) ActivityEntryView {
	return ActivityEntryView{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		CategoryID: e.CategoryID,
		ItemID:     e.ItemID,
		Actor:      e.Actor,
		Type:       string(e.ActivityType),
		Summary:    e.Summary,
		CreatedAt:  formatTime(e.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
