package bangumi

import (
	"errors"
	"time"

	"github.com/PizzaHomicide/sedai/internal/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

// newCircuitBreaker builds the breaker that stops hammering Bangumi while it is down.
// It opens after 5 consecutive failures and probes again after 30 seconds.  Only transport errors and 5xx responses
// count as failures: a 404 for an unknown user is a perfectly healthy answer.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state transition", "name", name, "from", stateToString(from), "to", stateToString(to))
		},
	})
}

// isBreakerRejection reports whether err came from the breaker refusing a request
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
