package tree

import "fmt"

// RootFetchError is the only failure Build surfaces to callers: the
// root item could not be fetched, so there is no tree to degrade.
type RootFetchError struct {
	ID  int
	Err error
}

func (e *RootFetchError) Error() string {
	return fmt.Sprintf("fetch root item %d: %v", e.ID, e.Err)
}

func (e *RootFetchError) Unwrap() error {
	return e.Err
}
