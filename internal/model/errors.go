package model

import (
	"errors"
	"fmt"
)

// Error kinds. Only ErrNoData aborts a report.
var (
	ErrNoData              = errors.New("no price data")
	ErrInvalidSeries       = errors.New("invalid price series")
	ErrInsufficientWindow  = errors.New("insufficient history for window")
	ErrPeerFetch           = errors.New("peer fetch failed")
	ErrFundamentalsMissing = errors.New("fundamentals unavailable")
)

// AnalysisError ties an error kind to the symbol it happened on.
// errors.Is matches both the kind and the underlying cause.
type AnalysisError struct {
	Kind   error
	Symbol string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Symbol, e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NoDataError reports that no usable price history exists for symbol.
func NoDataError(symbol string, cause error) error {
	return &AnalysisError{Kind: ErrNoData, Symbol: symbol, Err: cause}
}

// PeerFetchError records a skipped peer. It is never fatal.
type PeerFetchError struct {
	Peer string
	Err  error
}

func (e *PeerFetchError) Error() string {
	return fmt.Sprintf("peer %s: %v", e.Peer, e.Err)
}

func (e *PeerFetchError) Unwrap() []error { return []error{ErrPeerFetch, e.Err} }
