package serpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/kirillkom/shopping-assistant/internal/infrastructure/resilience"
)

type statusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *statusError) Error() string {
	if e == nil {
		return "serpapi status error"
	}
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("serpapi status: %s", e.Status)
	}
	return fmt.Sprintf("serpapi status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

func classifySearchError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		default:
			return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
