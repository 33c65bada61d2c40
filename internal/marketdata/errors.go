package marketdata

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse marks a provider payload whose shape deviates
	// from the documented chart format.
	ErrInvalidResponse = errors.New("invalid chart response")

	// ErrNoData marks a symbol that resolved but produced zero usable
	// observations.
	ErrNoData = errors.New("no usable price data")
)

// FetchError wraps any failure of the fetch-and-normalize pipeline with the
// symbol it was fetching.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
