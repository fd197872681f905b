package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
	"github.com/kirillkom/shopping-assistant/internal/core/ports"
)

// ShoppingUseCase is the pipeline controller: it owns per-session state,
// runs the pipeline for new searches, and re-enters it for refinements.
type ShoppingUseCase struct {
	pipeline  *Pipeline
	sessions  ports.SessionStore
	publisher ports.EventPublisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewShoppingUseCase(pipeline *Pipeline, sessions ports.SessionStore, publisher ports.EventPublisher) *ShoppingUseCase {
	return &ShoppingUseCase{
		pipeline:  pipeline,
		sessions:  sessions,
		publisher: publisher,
		locks:     make(map[string]*sync.Mutex),
	}
}

// ProcessSearch runs the full pipeline for a new search. A missing session
// id gets a fresh one; the resulting state is persisted whether the run
// succeeded or short-circuited.
func (uc *ShoppingUseCase) ProcessSearch(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "process search", fmt.Errorf("query is required"))
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := uc.lockSession(sessionID)
	defer unlock()

	state := domain.NewPipelineState(req.Query, sessionID, req.PriceRange, req.FeaturesToAdd, req.FeaturesToRemove)
	state = uc.pipeline.Run(ctx, state)

	return uc.finishRun(ctx, "search", state)
}

// RefineSearch mutates the stored session state and re-enters the pipeline
// at parse_query. An unknown session id is treated as a fresh search.
func (uc *ShoppingUseCase) RefineSearch(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "refine search", fmt.Errorf("query is required"))
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return uc.ProcessSearch(ctx, req)
	}

	unlock := uc.lockSession(sessionID)

	prior, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		unlock()
		if domain.IsKind(err, domain.ErrSessionNotFound) {
			return uc.ProcessSearch(ctx, req)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer unlock()

	state := *prior
	state.Query = req.Query
	state.PriceRange = req.PriceRange
	state.FeaturesToAdd = req.FeaturesToAdd
	state.FeaturesToRemove = req.FeaturesToRemove

	state = uc.pipeline.Refine(ctx, state)

	return uc.finishRun(ctx, "refine", state)
}

// finishRun persists the state, publishes the completion event, and shapes
// the boundary result.
func (uc *ShoppingUseCase) finishRun(ctx context.Context, kind string, state domain.PipelineState) (*domain.SearchResult, error) {
	if err := uc.sessions.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	if uc.publisher != nil {
		event := domain.SearchEvent{
			SessionID:    state.SessionID,
			Query:        state.Query,
			Kind:         kind,
			ProductCount: len(state.Ranked),
			Error:        state.Error,
		}
		if err := uc.publisher.PublishSearchCompleted(ctx, event); err != nil {
			slog.Warn("search_event_publish_failed", "session_id", state.SessionID, "error", err)
		}
	}

	views := make([]domain.ProductView, 0, len(state.Ranked))
	for _, product := range state.Ranked {
		views = append(views, domain.ViewOf(product))
	}

	queryProcessed := state.Query
	if state.IntentParsed && state.Intent.HasKnownProductType() {
		queryProcessed = state.Intent.ProductType
	}

	return &domain.SearchResult{
		Products:       views,
		SessionID:      state.SessionID,
		QueryProcessed: queryProcessed,
		Suggestions:    state.Suggestions,
		Error:          state.Error,
	}, nil
}

// lockSession serializes pipeline runs for one session so a refinement
// always observes the prior run's persisted state.
func (uc *ShoppingUseCase) lockSession(sessionID string) func() {
	uc.mu.Lock()
	lock, ok := uc.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		uc.locks[sessionID] = lock
	}
	uc.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
