package image

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrRetriesExhausted is surfaced when the retry budget is spent without a
// single attempt running.
var ErrRetriesExhausted = errors.New("image generation retries exhausted")

// ProviderError is a non-2xx answer from the image provider. Server-side
// statuses are worth retrying, client-side ones are not.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("image provider returned %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Transient() bool {
	return e.StatusCode >= 500
}

// Transient reports whether a generation failure may succeed on a retry:
// server-side provider errors and transport timeouts. Everything else,
// client-side rejections included, is permanent.
func Transient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
