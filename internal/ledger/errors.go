package ledger

import (
	"fmt"
	"strings"
)

// ValidationError enumerates the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
