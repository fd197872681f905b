package domain

import "time"

// Stage identifies one step of the search pipeline state machine.
type Stage string

const (
	StageParseQuery       Stage = "parse_query"
	StageSearchProducts   Stage = "search_products"
	StageSummarizeReviews Stage = "summarize_reviews"
	StageReturnResults    Stage = "return_results"
	StageRefineSearch     Stage = "refine_search"
)

// PipelineState is the single mutable record shared by all pipeline stages.
// One instance exists per session; it is persisted after every run, whether
// the run succeeded or short-circuited on Error.
type PipelineState struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`

	Intent       Intent `json:"intent"`
	IntentParsed bool   `json:"intent_parsed"`

	Products []Product `json:"products"`
	Ranked   []Product `json:"ranked"`

	PriceRange       *PriceRange `json:"price_range,omitempty"`
	FeaturesToAdd    []string    `json:"features_to_add,omitempty"`
	FeaturesToRemove []string    `json:"features_to_remove,omitempty"`

	Suggestions []string `json:"suggestions"`

	// Error short-circuits the remaining stages when non-empty. It is a
	// soft failure surfaced to the caller, never a raised fault.
	Error string `json:"error,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewPipelineState builds the initial state for a fresh session run.
func NewPipelineState(query, sessionID string, priceRange *PriceRange, featuresToAdd, featuresToRemove []string) PipelineState {
	return PipelineState{
		Query:            query,
		SessionID:        sessionID,
		Products:         []Product{},
		Ranked:           []Product{},
		PriceRange:       priceRange,
		FeaturesToAdd:    featuresToAdd,
		FeaturesToRemove: featuresToRemove,
		Suggestions:      []string{},
	}
}

// Failed reports whether a prior stage short-circuited the pipeline.
func (s PipelineState) Failed() bool {
	return s.Error != ""
}
