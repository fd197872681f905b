package domain

// Product is a retrieved candidate, progressively enriched as it moves
// through the pipeline: the retriever fills the listing fields, the review
// aggregator attaches the sentiment summary, the ranker attaches score and
// reasoning.
type Product struct {
	Title        string  `json:"title"`
	Price        string  `json:"price"`
	PriceNumeric float64 `json:"price_numeric"`
	ImageURL     string  `json:"image_url"`
	ProductURL   string  `json:"product_url"`
	Source       string  `json:"source"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviews_count"`
	Purchases    int     `json:"purchases"`

	ReviewScore float64 `json:"review_score"`
	GoodReviews string  `json:"good_reviews"`
	BadReviews  string  `json:"bad_reviews"`
	Reviewed    bool    `json:"reviewed"`

	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// ReviewSummary is the aggregation result for one product.
type ReviewSummary struct {
	ReviewScore float64
	GoodReviews string
	BadReviews  string
	Purchases   int
}

// Apply merges an aggregation result into the product and marks it reviewed.
// A product that was never reviewed must not reach the ranker.
func (p *Product) Apply(summary ReviewSummary) {
	p.ReviewScore = summary.ReviewScore
	p.GoodReviews = summary.GoodReviews
	p.BadReviews = summary.BadReviews
	if summary.Purchases > 0 {
		p.Purchases = summary.Purchases
	}
	p.Reviewed = true
}
