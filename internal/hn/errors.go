package hn

import (
	"errors"
	"fmt"
)

// ErrMissingID marks an item payload that decoded but carries no id,
// so it cannot be minimally represented.
var ErrMissingID = errors.New("item has no id")

// FetchError is returned when fetching a single item fails. An absent
// item (null body from the API) is not a FetchError; GetItem returns
// (nil, nil) for that case so callers can tell the two apart.
type FetchError struct {
	ID  int
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch item %d: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
