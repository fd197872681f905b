package ports

import (
	"context"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

// ShoppingAssistant is the inbound contract consumed by the HTTP adapter.
//
// A populated Error field inside the result is a soft failure: the pipeline
// short-circuited on a known stage fault and the stored session reflects it.
// Returned Go errors are reserved for faults outside the pipeline itself
// (invalid request, session store unavailable).
type ShoppingAssistant interface {
	ProcessSearch(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
	RefineSearch(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
}
