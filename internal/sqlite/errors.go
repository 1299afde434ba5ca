package sqlite

import (
	"strings"

	"github.com/ganot/checkvault/internal/repository"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func persistenceError(op, collection, id string, err error) error {
	return &repository.PersistenceError{Op: op, Collection: collection, ID: id, Err: err}
}
