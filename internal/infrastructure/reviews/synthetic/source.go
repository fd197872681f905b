package synthetic

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

var positiveTemplates = []string{
	"Great quality! Exactly what I was looking for.",
	"Excellent value for money. Highly recommend!",
	"Perfect fit and finish. Very satisfied with this purchase.",
	"Fast shipping and great product. Will buy again.",
	"Sturdy build quality and works as expected.",
	"Love the design and functionality. 5 stars!",
	"Best purchase I've made in a while. Worth every penny.",
	"Exceeded my expectations. Great customer service too.",
	"High quality materials and excellent craftsmanship.",
	"Perfect for my needs. Great product overall.",
}

var negativeTemplates = []string{
	"Poor quality materials. Broke after a few uses.",
	"Not as described. Disappointed with this purchase.",
	"Overpriced for what you get. Look elsewhere.",
	"Cheap construction. Would not recommend.",
	"Arrived damaged and customer service was unhelpful.",
	"Doesn't work as advertised. Waste of money.",
	"Poor build quality. Expected much better.",
	"Misleading product description. Not worth it.",
	"Broke within a week of normal use.",
	"Terrible experience. Save your money.",
}

type categoryDetail struct {
	positive string
	negative string
}

var categoryDetails = map[string]categoryDetail{
	"wallet": {
		positive: " The leather feels premium and the card slots are perfect.",
		negative: " The leather started peeling after a month.",
	},
	"mouse": {
		positive: " Great DPI settings and comfortable grip.",
		negative: " The buttons feel mushy and tracking is inconsistent.",
	},
	"headphones": {
		positive: " Amazing sound quality and comfortable fit.",
		negative: " Uncomfortable after wearing for more than an hour.",
	},
}

// Source synthesizes review texts for a product. Real review acquisition
// (scraping, feeds) sits behind the same port; this implementation stands
// in for data no retrieval backend exposes and keeps the pipeline testable.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSource(rng *rand.Rand) *Source {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Source{rng: rng}
}

// Reviews produces 10 to 30 reviews with a positive share proportional to
// the product rating, plus a category-specific clause when the title
// mentions a known category.
func (s *Source) Reviews(_ context.Context, product domain.Product) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rating := product.Rating
	if rating <= 0 {
		rating = 4.0
	}
	positiveProb := rating / 5.0
	detail := detailFor(product.Title)

	count := 10 + s.rng.Intn(21)
	reviews := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if s.rng.Float64() < positiveProb {
			reviews = append(reviews, positiveTemplates[s.rng.Intn(len(positiveTemplates))]+detail.positive)
		} else {
			reviews = append(reviews, negativeTemplates[s.rng.Intn(len(negativeTemplates))]+detail.negative)
		}
	}
	return reviews, nil
}

func detailFor(title string) categoryDetail {
	lower := strings.ToLower(title)
	for key, detail := range categoryDetails {
		if strings.Contains(lower, key) {
			return detail
		}
	}
	return categoryDetail{}
}
