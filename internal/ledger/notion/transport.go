package notion

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBackoff = time.Second

// RetryTransport retries requests answered with a transient 5xx status,
// waiting Backoff, then twice that, and so on between attempts. Rate
// limiting (429) is left to the SDK.
type RetryTransport struct {
	Next    http.RoundTripper
	Retries int
	Backoff time.Duration
}

func NewRetryTransport(next http.RoundTripper, retries int) *RetryTransport {
	if next == nil {
		next = http.DefaultTransport
	}

	return &RetryTransport{Next: next, Retries: retries, Backoff: defaultBackoff}
}

func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	delay := t.Backoff
	try := req

	for attempt := 0; ; attempt++ {
		if attempt > 0 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return nil, fmt.Errorf("retry %s %s: request body cannot be replayed", req.Method, req.URL.Path)
			}

			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("retry %s %s: %w", req.Method, req.URL.Path, err)
			}

			try = req.Clone(req.Context())
			try.Body = body
		}

		resp, err := t.Next.RoundTrip(try)
		if err != nil || !retryable(resp.StatusCode) || attempt >= t.Retries {
			return resp, err
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		timer := time.NewTimer(delay)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}

		delay *= 2
	}
}

func retryable(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}

	return false
}
