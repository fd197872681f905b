package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
)

const (
	positivePolarityThreshold = 0.1
	negativePolarityThreshold = -0.1
	noReviewsDigest           = "No reviews available"
)

var positiveDigestPhrases = []string{
	"great quality", "excellent", "perfect", "love", "amazing",
	"highly recommend", "worth", "satisfied", "exceeded expectations",
	"fast shipping", "good value", "sturdy", "comfortable",
}

var negativeDigestPhrases = []string{
	"poor quality", "broke", "disappointed", "not as described",
	"overpriced", "cheap", "waste of money", "poor build",
	"arrived damaged", "doesn't work", "uncomfortable",
}

// ReviewAggregator attaches a sentiment summary to each candidate. Sentiment
// scoring failures on individual reviews degrade to a neutral polarity
// rather than failing the product.
type ReviewAggregator struct {
	source    ports.ReviewSource
	sentiment ports.SentimentScorer

	mu  sync.Mutex
	rng *rand.Rand
}

func NewReviewAggregator(source ports.ReviewSource, sentiment ports.SentimentScorer, rng *rand.Rand) *ReviewAggregator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ReviewAggregator{
		source:    source,
		sentiment: sentiment,
		rng:       rng,
	}
}

// Summarize fetches reviews for one product, scores each, and folds them
// into a review score in [0, 1] plus positive/negative digests.
func (a *ReviewAggregator) Summarize(ctx context.Context, product domain.Product) (domain.ReviewSummary, error) {
	reviews, err := a.source.Reviews(ctx, product)
	if err != nil {
		return domain.ReviewSummary{}, fmt.Errorf("fetch reviews: %w", err)
	}
	if len(reviews) == 0 {
		return domain.ReviewSummary{
			ReviewScore: 0.5,
			GoodReviews: noReviewsDigest,
			BadReviews:  noReviewsDigest,
		}, nil
	}

	var (
		total    float64
		positive []string
		negative []string
	)
	for _, review := range reviews {
		polarity, err := a.sentiment.Polarity(ctx, review)
		if err != nil {
			slog.Warn("sentiment_degraded", "error", err)
			polarity = 0
		}
		polarity = clamp(polarity, -1, 1)
		total += polarity

		switch {
		case polarity > positivePolarityThreshold:
			positive = append(positive, review)
		case polarity < negativePolarityThreshold:
			negative = append(negative, review)
		}
	}

	mean := total / float64(len(reviews))
	return domain.ReviewSummary{
		ReviewScore: clamp((mean+1)/2, 0, 1),
		GoodReviews: summarizePositive(positive),
		BadReviews:  summarizeNegative(negative),
		Purchases:   a.estimatePurchases(product, len(reviews)),
	}, nil
}

// estimatePurchases derives a purchase count from review volume when the
// retriever did not provide one. The randomness is a stand-in for data the
// retrieval backend does not expose.
func (a *ReviewAggregator) estimatePurchases(product domain.Product, reviewCount int) int {
	if product.Purchases > 0 {
		return product.Purchases
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return reviewCount * (10 + a.rng.Intn(41))
}

func summarizePositive(reviews []string) string {
	if len(reviews) == 0 {
		return "No positive reviews found"
	}
	found := scanPhrases(reviews, positiveDigestPhrases, 3)
	if len(found) == 0 {
		return "Customers generally report positive experiences."
	}
	return fmt.Sprintf("Customers praise the %s.", strings.Join(found, ", "))
}

func summarizeNegative(reviews []string) string {
	if len(reviews) == 0 {
		return "No significant negative feedback"
	}
	found := scanPhrases(reviews, negativeDigestPhrases, 2)
	if len(found) == 0 {
		return "Minor complaints about quality and durability."
	}
	return fmt.Sprintf("Some customers reported issues with %s.", strings.Join(found, ", "))
}

// scanPhrases returns up to limit distinct vocabulary phrases found in the
// reviews, in first-seen order.
func scanPhrases(reviews, vocabulary []string, limit int) []string {
	found := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, review := range reviews {
		lower := strings.ToLower(review)
		for _, phrase := range vocabulary {
			if _, ok := seen[phrase]; ok {
				continue
			}
			if strings.Contains(lower, phrase) {
				seen[phrase] = struct{}{}
				found = append(found, phrase)
				if len(found) == limit {
					return found
				}
			}
		}
	}
	return found
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
