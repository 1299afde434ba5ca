package project

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ganot/checkvault/internal/repository"
)

// Collection is the document collection holding projects.
const Collection = "projects"

// document is the stored shape of a project. The ID is the document key and
// never a field.
type document struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	CreatedAt   string     `json:"createdAt"`
	Categories  []Category `json:"categories"`
}

func encodeProject(p Project) (json.RawMessage, error) {
	data, err := json.Marshal(document{
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		Categories:  p.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return data, nil
}

func decodeProject(doc repository.Document) (Project, error) {
	var d document
	if err := json.Unmarshal(doc.Body, &d); err != nil {
		return Project{}, fmt.Errorf("decoding project %s: %w", doc.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return Project{}, fmt.Errorf("decoding project %s createdAt: %w", doc.ID, err)
	}
	p := Project{
		ID:          doc.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        d.Type,
		CreatedAt:   createdAt,
		Categories:  d.Categories,
	}
	for i := range p.Categories {
		if p.Categories[i].Items == nil {
			p.Categories[i].Items = []Item{}
		}
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return Project{}, fmt.Errorf("decoding project %s: %w", doc.ID, err)
	}
	if err := Validate(p); err != nil {
		return Project{}, err
	}
	return p, nil
}
