package project

import (
	"math"
	"time"
)

// Type selects which checklist template a project was created from.
type Type string

const (
	TypeSecurityAudit  Type = "security-audit"
	TypeWebDevelopment Type = "web-development"
)

// Label returns the human-readable name of the project type.
func (t Type) Label() string {
	switch t {
	case TypeSecurityAudit:
		return "Security Audit"
	case TypeWebDevelopment:
		return "Web Development"
	default:
		return string(t)
	}
}

// ParseType validates a project type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeSecurityAudit, TypeWebDevelopment:
		return Type(s), nil
	default:
		return "", ErrUnknownType
	}
}

// Item is a single checkable unit within a category.
type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Checked bool   `json:"checked"`
	Comment string `json:"comment"`
}

// Category groups check items. Item order is display order.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Progress returns the rounded percentage of checked items, 0 for an empty category.
func (c Category) Progress() int {
	checked := 0
	for _, item := range c.Items {
		if item.Checked {
			checked++
		}
	}
	return percent(checked, len(c.Items))
}

// Project is a named checklist instance of a fixed type.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	CreatedAt   time.Time  `json:"createdAt"`
	Categories  []Category `json:"categories"`
}

// Progress returns the rounded percentage of checked items across all categories.
func (p Project) Progress() int {
	checked, total := 0, 0
	for _, cat := range p.Categories {
		for _, item := range cat.Items {
			total++
			if item.Checked {
				checked++
			}
		}
	}
	return percent(checked, total)
}

// Category returns the category with the given ID.
func (p Project) Category(categoryID string) (Category, bool) {
	for _, cat := range p.Categories {
		if cat.ID == categoryID {
			return cat, true
		}
	}
	return Category{}, false
}

// Find returns the item addressed by category and item ID.
func (p Project) Find(categoryID, itemID string) (Item, bool) {
	cat, ok := p.Category(categoryID)
	if !ok {
		return Item{}, false
	}
	for _, item := range cat.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy of the project.
func (p Project) Clone() Project {
	p.Categories = CloneCategories(p.Categories)
	return p
}

// CloneCategories deep copies a category list.
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, cat := range categories {
		out[i] = cat
		if cat.Items != nil {
			out[i].Items = make([]Item, len(cat.Items))
			copy(out[i].Items, cat.Items)
		}
	}
	return out
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
