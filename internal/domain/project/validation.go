package project

import (
	"fmt"
	"strings"
)

// CreateRequest describes a project creation request as submitted by a caller.
type CreateRequest struct {
	Name        string
	Description string
	Type        string
}

// ValidateCreateInput trims and validates the fields required to create a project.
// The Store itself does not validate; callers run this before Create.
func ValidateCreateInput(req CreateRequest) (CreateRequest, Type, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		return req, "", ErrInvalidInput
	}
	t, err := ParseType(req.Type)
	if err != nil {
		return req, "", err
	}
	return req, t, nil
}

// Validate checks the structural invariants of a project: at least one
// category, unique category IDs, and unique item IDs within each category.
func Validate(p Project) error {
	if len(p.Categories) == 0 {
		return fmt.Errorf("%w: project %q has no categories", ErrInvalidStructure, p.ID)
	}
	categories := make(map[string]struct{}, len(p.Categories))
	for _, cat := range p.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: empty category id", ErrInvalidStructure)
		}
		if _, dup := categories[cat.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidStructure, cat.ID)
		}
		categories[cat.ID] = struct{}{}

		items := make(map[string]struct{}, len(cat.Items))
		for _, item := range cat.Items {
			if item.ID == "" {
				return fmt.Errorf("%w: empty item id in category %q", ErrInvalidStructure, cat.ID)
			}
			if _, dup := items[item.ID]; dup {
				return fmt.Errorf("%w: duplicate item %q in category %q", ErrInvalidStructure, item.ID, cat.ID)
			}
			items[item.ID] = struct{}{}
		}
	}
	return nil
}
