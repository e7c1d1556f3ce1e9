package models

import "errors"

var (
	// ErrMarketClosed rejects a window that falls inside the weekly halt
	// while the closure guard is on.
	ErrMarketClosed = errors.New("market is closed for the requested window")

	// ErrUnsupportedInterval rejects an interval outside the accepted
	// vocabulary.
	ErrUnsupportedInterval = errors.New("unsupported interval")

	// ErrUpstreamUnavailable wraps network or auth failures talking to the
	// brokerage API.
	ErrUpstreamUnavailable = errors.New("upstream data service unavailable")

	// ErrContractNotFound means no contract matched the requested symbol.
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoBars means the upstream returned zero bars for the resolved
	// window. Distinct from ErrUpstreamUnavailable: the fetch succeeded.
	ErrNoBars = errors.New("no bars in requested range")

	// ErrInvalidRequest flags request parameters that pass binding but fail
	// semantic checks, like an unparseable timestamp.
	ErrInvalidRequest = errors.New("invalid request")
)
