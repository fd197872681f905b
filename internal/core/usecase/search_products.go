package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
)

const defaultMaxResults = 10

// Retriever resolves candidate products for a parsed intent. It prefers the
// primary collaborator and degrades to the fixture-backed fallback searcher
// when the collaborator is absent or fails.
type Retriever struct {
	primary  ports.ProductSearcher
	fallback ports.ProductSearcher
	observer PipelineObserver
}

func NewRetriever(primary, fallback ports.ProductSearcher, observer PipelineObserver) *Retriever {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Retriever{
		primary:  primary,
		fallback: fallback,
		observer: observer,
	}
}

// Search builds the textual query from the intent and the price bounds and
// retrieves at most maxResults candidates.
func (r *Retriever) Search(ctx context.Context, intent domain.Intent, priceRange *domain.PriceRange, maxResults int) ([]domain.Product, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	query := BuildSearchQuery(intent, priceRange)

	if r.primary != nil {
		products, err := r.primary.Search(ctx, query, maxResults)
		if err == nil {
			return clipProducts(products, maxResults), nil
		}
		slog.Warn("retrieval_fallback", "query", query, "error", err)
		r.observer.RetrievalFallback()
	}

	// Fixture lookup keys off the product type; the full query would bury
	// the category term under feature and price words.
	fallbackQuery := strings.TrimSpace(intent.ProductType)
	if fallbackQuery == "" {
		fallbackQuery = query
	}
	products, err := r.fallback.Search(ctx, fallbackQuery, maxResults)
	if err != nil {
		return nil, fmt.Errorf("fallback search: %w", err)
	}
	return clipProducts(products, maxResults), nil
}

// BuildSearchQuery concatenates the product type, features, and price bound
// phrases into the retrieval query text.
func BuildSearchQuery(intent domain.Intent, priceRange *domain.PriceRange) string {
	parts := make([]string, 0, 2+len(intent.Features))
	if intent.ProductType != "" {
		parts = append(parts, intent.ProductType)
	}
	parts = append(parts, intent.Features...)

	bounds := priceRange
	if bounds == nil {
		bounds = intent.PriceConstraint
	}
	if bounds != nil {
		if bounds.Min != nil {
			parts = append(parts, fmt.Sprintf("over $%g", *bounds.Min))
		}
		if bounds.Max != nil {
			parts = append(parts, fmt.Sprintf("under $%g", *bounds.Max))
		}
	}
	return strings.Join(parts, " ")
}

func clipProducts(products []domain.Product, maxResults int) []domain.Product {
	if len(products) > maxResults {
		return products[:maxResults]
	}
	return products
}
