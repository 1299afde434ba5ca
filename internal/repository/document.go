package repository

import "encoding/json"

// Document is a schemaless JSON document keyed by ID within a collection.
// The ID is never stored inside Body.
type Document struct {
	ID   string
	Body json.RawMessage
}
