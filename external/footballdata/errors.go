package footballdata

import (
	stderrors "errors"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrUnauthorized       = crerr.New("football-data: unauthorized")
	ErrNotFound           = crerr.New("football-data: resource not found")
	ErrServiceUnavailable = crerr.New("football-data: service unavailable")
	ErrServer             = crerr.New("football-data: server error")
	ErrUnknownAPI         = crerr.New("football-data: unexpected api error")
	ErrParse              = crerr.New("football-data: unparseable response")
	ErrConnection         = crerr.New("football-data: connection failed")
)

var errTransient = crerr.New("football-data transient failure")

// RateLimitError is returned for HTTP 429. RetryAfter comes from the
// X-RequestCounter-Reset header when present.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "football-data: rate limited"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (status=%d retry_after=%s)", msg, e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
}

func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if stderrors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsTransient reports whether a request failing with err may succeed when
// retried.
func IsTransient(err error) bool {
	return crerr.Is(err, errTransient)
}
