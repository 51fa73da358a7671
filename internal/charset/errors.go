package charset

import (
	"errors"
	"fmt"
)

// UnknownSetError is returned when a set name was never registered.
type UnknownSetError struct {
	Name string
}

func (e *UnknownSetError) Error() string {
	return fmt.Sprintf("character set %q does not exist", e.Name)
}

// FetchError is returned when loading a source-backed set fails. The failed
// load is not cached, so calling Resolve again retries it.
type FetchError struct {
	Name    string
	Locator string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch character set %q from %s: %v", e.Name, e.Locator, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedEntryError describes an entry that does not match the schema.
// Index is the entry's position in its resource, or -1 when unknown.
type MalformedEntryError struct {
	Index  int
	ID     string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	switch {
	case e.ID != "" && e.Index >= 0:
		return fmt.Sprintf("malformed entry %q at index %d: %s", e.ID, e.Index, e.Reason)
	case e.ID != "":
		return fmt.Sprintf("malformed entry %q: %s", e.ID, e.Reason)
	case e.Index >= 0:
		return fmt.Sprintf("malformed entry at index %d: %s", e.Index, e.Reason)
	default:
		return "malformed entry: " + e.Reason
	}
}

// IsRetryable reports whether resolving the same set again may succeed.
func IsRetryable(err error) bool {
	var unknown *UnknownSetError
	if errors.As(err, &unknown) {
		return false
	}
	var fetch *FetchError
	return errors.As(err, &fetch)
}
