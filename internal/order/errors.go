package order

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedOrder means the payload is not an order at all: no items
	// sequence was present.
	ErrMalformedOrder = errors.New("malformed order: missing items")
	// ErrInvalidOrder means the payload has the right shape but cannot be
	// priced: empty item list or an item with no usable price.
	ErrInvalidOrder = errors.New("invalid order")
)

// UpstreamError reports a failed call to the persistence API.
type UpstreamError struct {
	Op     string // e.g. "create_order"
	Status int    // HTTP status, 0 when the call never completed
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
