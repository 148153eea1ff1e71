package httpclient

import (
	ierr "github.com/seatstack/seatstack/internal/errors"
)

// NewError builds an error for a non-2xx upstream response
func NewError(statusCode int, body []byte) error {
	return ierr.NewError("upstream request failed").
		WithHint("Upstream service returned an error").
		WithReportableDetails(map[string]any{
			"status_code": statusCode,
			"body":        string(body),
		}).
		Mark(ierr.ErrHTTPClient)
}
