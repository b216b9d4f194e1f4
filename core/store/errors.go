package store

import (
	"errors"
	"fmt"
)

// ErrKeyConflict is matched by every *KeyConflictError.
var ErrKeyConflict = errors.New("key conflict")

// KeyConflictError aborts a write that would break the uniqueness tuple or
// reuse an id. Nothing of the write is persisted.
type KeyConflictError struct {
	AppID string
	Err   error
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("write for app %s violates a unique key: %v", e.AppID, e.Err)
}

func (e *KeyConflictError) Unwrap() error {
	return e.Err
}

func (e *KeyConflictError) Is(target error) bool {
	return target == ErrKeyConflict
}

// SchemaError reports a table that does not match the model.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("table %s does not exist", e.Table)
	}
	return fmt.Sprintf("table %s is missing columns %v", e.Table, e.Missing)
}
