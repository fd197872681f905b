package domain

import "math"

// SearchRequest is a process_search or refine_search invocation.
type SearchRequest struct {
	Query            string      `json:"query"`
	SessionID        string      `json:"session_id,omitempty"`
	PriceRange       *PriceRange `json:"price_range,omitempty"`
	FeaturesToAdd    []string    `json:"features_to_add,omitempty"`
	FeaturesToRemove []string    `json:"features_to_remove,omitempty"`
}

// ProductView is the externally surfaced slice of a ranked product.
type ProductView struct {
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	ImageURL    string  `json:"image_url"`
	ProductURL  string  `json:"product_url"`
	Purchases   int     `json:"purchases"`
	GoodReviews string  `json:"good_reviews"`
	BadReviews  string  `json:"bad_reviews"`
	Score       float64 `json:"score"`
	Reasoning   string  `json:"reasoning"`
}

// SearchResult is the boundary response shape for both search and refine.
type SearchResult struct {
	Products       []ProductView `json:"products"`
	SessionID      string        `json:"session_id"`
	QueryProcessed string        `json:"query_processed"`
	Suggestions    []string      `json:"suggestions"`
	Error          string        `json:"error,omitempty"`
}

// ViewOf projects a ranked product into its external shape, rounding the
// score to two decimals.
func ViewOf(p Product) ProductView {
	return ProductView{
		Title:       p.Title,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		ProductURL:  p.ProductURL,
		Purchases:   p.Purchases,
		GoodReviews: p.GoodReviews,
		BadReviews:  p.BadReviews,
		Score:       math.Round(p.Score*100) / 100,
		Reasoning:   p.Reasoning,
	}
}

// SearchEvent is published after a pipeline run has been persisted.
type SearchEvent struct {
	SessionID    string `json:"session_id"`
	Query        string `json:"query"`
	Kind         string `json:"kind"`
	ProductCount int    `json:"product_count"`
	Error        string `json:"error,omitempty"`
}
