package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

const topResults = 3

// Composite score weights. They sum to 1; price and purchase terms
// contribute nothing when the underlying signal is absent.
const (
	weightReviewScore  = 0.4
	weightPriceScore   = 0.2
	weightFeatureMatch = 0.3
	weightPurchases    = 0.1

	priceCeiling    = 1000.0
	purchaseCeiling = 1000.0
)

// Ranker scores candidates against the inferred intent, explains each
// score, and selects the shortlist.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Score computes the composite relevance score in [0, 1].
func (r *Ranker) Score(product domain.Product, intent domain.Intent) float64 {
	score := product.ReviewScore * weightReviewScore

	if product.PriceNumeric > 0 {
		priceScore := 1 - product.PriceNumeric/priceCeiling
		if priceScore < 0 {
			priceScore = 0
		}
		score += priceScore * weightPriceScore
	}

	if len(intent.Features) > 0 {
		title := strings.ToLower(product.Title)
		matches := 0
		for _, feature := range intent.Features {
			if strings.Contains(title, strings.ToLower(feature)) {
				matches++
			}
		}
		score += float64(matches) / float64(len(intent.Features)) * weightFeatureMatch
	}

	if product.Purchases > 0 {
		purchaseScore := float64(product.Purchases) / purchaseCeiling
		if purchaseScore > 1 {
			purchaseScore = 1
		}
		score += purchaseScore * weightPurchases
	}

	return clamp(score, 0, 1)
}

// Explain produces the human-readable reasoning for a scored product.
func (r *Ranker) Explain(product domain.Product, score float64) string {
	reasons := make([]string, 0, 3)
	switch {
	case score > 0.8:
		reasons = append(reasons, "Excellent match for your requirements")
	case score > 0.6:
		reasons = append(reasons, "Good match with minor trade-offs")
	default:
		reasons = append(reasons, "Decent option but may not meet all criteria")
	}
	if product.ReviewScore > 0.7 {
		reasons = append(reasons, "highly rated by customers")
	}
	if product.Purchases > 100 {
		reasons = append(reasons, "popular choice with many purchases")
	}
	return strings.Join(reasons, ". ") + "."
}

// Rank scores every candidate and returns the top results sorted by score
// descending. The sort is stable: equal scores keep retrieval order.
func (r *Ranker) Rank(products []domain.Product, intent domain.Intent) ([]domain.Product, error) {
	scored := make([]domain.Product, len(products))
	for i, product := range products {
		if !product.Reviewed {
			return nil, fmt.Errorf("product %q reached ranking without review enrichment", product.Title)
		}
		product.Score = r.Score(product, intent)
		product.Reasoning = r.Explain(product, product.Score)
		scored[i] = product
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topResults {
		scored = scored[:topResults]
	}
	return scored, nil
}

// Suggest returns up to three refinement prompts for the caller to offer.
func (r *Ranker) Suggest(intent domain.Intent) []string {
	suggestions := []string{
		"Adjust price range",
		"Add specific brand preference",
		"Include additional features",
		"Focus on higher-rated products",
	}
	if intent.HasKnownProductType() {
		suggestions = append(suggestions, fmt.Sprintf("Search for different %s styles", intent.ProductType))
	}
	if len(suggestions) > topResults {
		suggestions = suggestions[:topResults]
	}
	return suggestions
}
