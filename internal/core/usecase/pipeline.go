package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

// PipelineObserver receives pipeline-level observations. Implementations
// must be safe for concurrent use.
type PipelineObserver interface {
	StageCompleted(stage domain.Stage, duration time.Duration)
	RetrievalFallback()
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) StageCompleted(domain.Stage, time.Duration) {}
func (NopObserver) RetrievalFallback()                         {}

// Pipeline is the search-and-rank state machine. Each stage is a pure-ish
// transition on PipelineState; the driver loop skips every remaining stage
// once Error is set, so a known failure propagates as state instead of a
// raised fault.
type Pipeline struct {
	parser     *IntentParser
	retriever  *Retriever
	aggregator *ReviewAggregator
	ranker     *Ranker
	observer   PipelineObserver

	maxResults int
}

func NewPipeline(parser *IntentParser, retriever *Retriever, aggregator *ReviewAggregator, ranker *Ranker, maxResults int, observer PipelineObserver) *Pipeline {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Pipeline{
		parser:     parser,
		retriever:  retriever,
		aggregator: aggregator,
		ranker:     ranker,
		observer:   observer,
		maxResults: maxResults,
	}
}

type transition struct {
	stage domain.Stage
	apply func(context.Context, domain.PipelineState) domain.PipelineState
}

// Run drives the state machine from parse_query through return_results.
func (p *Pipeline) Run(ctx context.Context, state domain.PipelineState) domain.PipelineState {
	transitions := []transition{
		{domain.StageParseQuery, p.parseQuery},
		{domain.StageSearchProducts, p.searchProducts},
		{domain.StageSummarizeReviews, p.summarizeReviews},
		{domain.StageReturnResults, p.returnResults},
	}

	for _, tr := range transitions {
		if state.Failed() {
			continue
		}
		start := time.Now()
		state = tr.apply(ctx, state)
		p.observer.StageCompleted(tr.stage, time.Since(start))
	}

	state.UpdatedAt = time.Now().UTC()
	return state
}

// Refine mutates the stored query per the refinement parameters, clears all
// downstream fields, and re-runs the pipeline from parse_query.
//
// Feature removal is a literal substring strike; it can clip unrelated text
// when a feature word appears inside another term. Kept for compatibility
// with the established refinement semantics.
func (p *Pipeline) Refine(ctx context.Context, state domain.PipelineState) domain.PipelineState {
	for _, feature := range state.FeaturesToAdd {
		state.Query += " with " + feature
	}
	for _, feature := range state.FeaturesToRemove {
		state.Query = strings.ReplaceAll(state.Query, feature, "")
	}
	state.Query = strings.Join(strings.Fields(state.Query), " ")

	state.Intent = domain.Intent{}
	state.IntentParsed = false
	state.Products = []domain.Product{}
	state.Ranked = []domain.Product{}
	state.Suggestions = []string{}
	state.Error = ""

	return p.Run(ctx, state)
}

func (p *Pipeline) parseQuery(ctx context.Context, state domain.PipelineState) domain.PipelineState {
	intent, err := p.parser.Parse(ctx, state.Query)
	if err != nil {
		state.Error = fmt.Sprintf("failed to parse query: %v", err)
		return state
	}
	state.Intent = intent
	state.IntentParsed = true
	return state
}

func (p *Pipeline) searchProducts(ctx context.Context, state domain.PipelineState) domain.PipelineState {
	products, err := p.retriever.Search(ctx, state.Intent, state.PriceRange, p.maxResults)
	if err != nil {
		state.Error = fmt.Sprintf("failed to search products: %v", err)
		return state
	}
	state.Products = products
	return state
}

// summarizeReviews enriches every candidate concurrently. Each result is
// written back by index, so completion order cannot reshuffle candidates.
func (p *Pipeline) summarizeReviews(ctx context.Context, state domain.PipelineState) domain.PipelineState {
	if len(state.Products) == 0 {
		return state
	}

	summaries := make([]domain.ReviewSummary, len(state.Products))
	errs := make([]error, len(state.Products))

	var wg sync.WaitGroup
	for i := range state.Products {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			summaries[idx], errs[idx] = p.aggregator.Summarize(ctx, state.Products[idx])
		}(i)
	}
	wg.Wait()

	for i := range state.Products {
		if errs[i] != nil {
			// Degrade the single candidate to a neutral summary instead of
			// failing the whole run.
			slog.Warn("review_aggregation_degraded", "title", state.Products[i].Title, "error", errs[i])
			summaries[i] = domain.ReviewSummary{
				ReviewScore: 0.5,
				GoodReviews: noReviewsDigest,
				BadReviews:  noReviewsDigest,
			}
		}
		state.Products[i].Apply(summaries[i])
	}
	return state
}

func (p *Pipeline) returnResults(_ context.Context, state domain.PipelineState) domain.PipelineState {
	if len(state.Products) == 0 {
		// Empty retrieval is a valid "no strong match" outcome: no error,
		// empty shortlist, suggestions still offered.
		state.Ranked = []domain.Product{}
		state.Suggestions = p.ranker.Suggest(state.Intent)
		return state
	}

	ranked, err := p.ranker.Rank(state.Products, state.Intent)
	if err != nil {
		state.Error = fmt.Sprintf("failed to rank results: %v", err)
		return state
	}
	state.Ranked = ranked
	state.Suggestions = p.ranker.Suggest(state.Intent)
	return state
}
