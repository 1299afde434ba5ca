// Package template holds the built-in checklist templates copied into new projects.
package template

import "github.com/ganot/checkvault/internal/domain/project"

// Registry serves immutable checklist templates by project type.
type Registry struct {
	templates map[project.Type][]project.Category
	order     []project.Type
}

// NewRegistry returns a registry holding the built-in templates.
func NewRegistry() *Registry {
	return &Registry{
		templates: map[project.Type][]project.Category{
			project.TypeSecurityAudit:  securityAudit,
			project.TypeWebDevelopment: webDevelopment,
		},
		order: []project.Type{project.TypeSecurityAudit, project.TypeWebDevelopment},
	}
}

// For returns a fresh deep copy of the template for t. Mutating the result
// never affects the registry or other callers.
func (r *Registry) For(t project.Type) ([]project.Category, error) {
	tmpl, ok := r.templates[t]
	if !ok {
		return nil, project.ErrUnknownType
	}
	return project.CloneCategories(tmpl), nil
}

// Types lists the known project types in declaration order.
func (r *Registry) Types() []project.Type {
	out := make([]project.Type, len(r.order))
	copy(out, r.order)
	return out
}
