package core

import "fmt"

// ValidationError reports a malformed or missing field on a write. It carries
// enough detail for the caller to identify the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an update or delete addressed at a nonexistent id.
// It is distinct from ValidationError so callers can tell bad input from a
// stale reference.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("expense %d not found", e.ID)
}

// DataCorruptionError reports a stored record that violates a write-time
// invariant, such as a date that no longer parses. Aggregations fail fast
// with it instead of silently excluding the record, since exclusion would
// produce an incorrect total.
type DataCorruptionError struct {
	ID     int64
	Field  string
	Detail string
}

func (e *DataCorruptionError) Error() string {
	return fmt.Sprintf("corrupt expense %d: %s %s", e.ID, e.Field, e.Detail)
}
