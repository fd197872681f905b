package ports

import (
	"context"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

// Completer is the language-model collaborator: opaque text in, raw text out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// ProductSearcher retrieves candidate products for a textual query.
type ProductSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]domain.Product, error)
}

// ReviewSource yields review texts for one product. Acquisition strategy
// (synthesis, scraping, cached feeds) is an adapter concern.
type ReviewSource interface {
	Reviews(ctx context.Context, product domain.Product) ([]string, error)
}

// SentimentScorer classifies one review text into a polarity in [-1, 1].
type SentimentScorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// SessionStore persists the latest pipeline state per session.
// Get returns domain.ErrSessionNotFound for unknown session ids.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.PipelineState, error)
	Put(ctx context.Context, state domain.PipelineState) error
}

// EventPublisher emits best-effort notifications about completed runs.
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, event domain.SearchEvent) error
}
