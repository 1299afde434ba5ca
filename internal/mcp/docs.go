package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/ganot/checkvault/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `checkvault keeps checklist projects: each project is created from a fixed template (security-audit or web-development) and holds ordered categories of check items.

Core concepts:
- Project: name, description, type and creation time, plus its categories.
- Category: a named group of items with a progress percentage (checked / total, rounded).
- Item: a checkable unit with a free-text comment.
- Risk flag: a per-session, per-category "high risk" marker. Flags are never persisted; they only shape the report you generate in this session.

Default workflow:
1) list_projects to see what exists (or create_project with name, description and type).
2) get_project to read categories, item ids and your current risk flags.
3) toggle_item / set_item_comment to record progress and findings.
4) toggle_category_risk on categories that need remediation.
5) generate_report for the plain-text audit report; findings list checked, commented items of flagged categories.

Docs:
- checkvault://docs/workflow
- checkvault://templates/security-audit
- checkvault://templates/web-development
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "checkvault://docs/workflow",
		Name:        "docs_workflow",
		Title:       "checkvault workflow",
		Description: "How projects, items, comments and risk flags combine into a report.",
		Content: `# checkvault workflow

## Projects

Projects are created from a template and never change shape afterwards: categories and items keep the ids and order of the template. Only the checked flag and the comment of an item change.

## Progress

Category progress is round(100 * checked / items). A category without items reports 0%.

## Risk flags and reports

Risk flags live in your session. They are not saved with the project, so a new session starts with every category at low risk.

A report lists, under HIGH-RISK FINDINGS, every item that is checked and has a comment in a flagged category. Every category appears under DETAILED ASSESSMENT with its progress and status; flagged categories are repeated under RECOMMENDATIONS.

## Failure modes

- PROJECT_NOT_FOUND: the id is unknown. Call list_projects to refresh.
- ITEM_NOT_FOUND: the category or item id is not part of the project. Call get_project for valid ids.
- PERSISTENCE_ERROR: the backing store rejected the write. Nothing changed; retry later.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		addMarkdownResource(server, doc)
	}
}

// TemplateCatalog lists the checklist templates served as resources.
type TemplateCatalog interface {
	Types() []project.Type
	For(t project.Type) ([]project.Category, error)
}

func registerTemplateResources(server *sdkmcp.Server, templates TemplateCatalog) error {
	if templates == nil {
		return nil
	}
	for _, t := range templates.Types() {
		categories, err := templates.For(t)
		if err != nil {
			return fmt.Errorf("loading template %s: %w", t, err)
		}
		addMarkdownResource(server, docResource{
			URI:         "checkvault://templates/" + string(t),
			Name:        "template_" + strings.ReplaceAll(string(t), "-", "_"),
			Title:       t.Label() + " checklist",
			Description: fmt.Sprintf("Categories and item ids of the %s template.", t.Label()),
			Content:     renderTemplate(t, categories),
		})
	}
	return nil
}

func renderTemplate(t project.Type, categories []project.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s checklist\n", t.Label())
	for _, cat := range categories {
		fmt.Fprintf(&b, "\n## %s (`%s`)\n\n", cat.Name, cat.ID)
		for _, item := range cat.Items {
			fmt.Fprintf(&b, "- [ ] %s (`%s`)\n", item.Title, item.ID)
		}
	}
	return b.String()
}

func addMarkdownResource(server *sdkmcp.Server, doc docResource) {
	server.AddResource(&sdkmcp.Resource{
		URI:         doc.URI,
		Name:        doc.Name,
		Title:       doc.Title,
		Description: doc.Description,
		MIMEType:    "text/markdown",
		Size:        int64(len(doc.Content)),
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		uri := doc.URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     doc.Content,
			}},
		}, nil
	})
}
