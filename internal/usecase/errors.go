package usecase

import crerr "github.com/cockroachdb/errors"

var (
	// ErrSourceUnavailable marks any upstream fetch that failed or returned an unusable payload.
	ErrSourceUnavailable = crerr.New("battle source unavailable")
	ErrMalformedPayload  = crerr.New("malformed upstream payload")
)
