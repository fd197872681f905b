package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/kirillkom/shopping-assistant/internal/core/domain"
)

// Store keeps pipeline states in process memory. It is the default backend
// for single-instance deployments and tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]domain.PipelineState
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]domain.PipelineState)}
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.PipelineState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.WrapError(domain.ErrSessionNotFound, "memory session get", fmt.Errorf("session %q", sessionID))
	}
	// Copy so callers cannot mutate the stored record through slices.
	out := state
	out.Products = append([]domain.Product(nil), state.Products...)
	out.Ranked = append([]domain.Product(nil), state.Ranked...)
	out.Suggestions = append([]string(nil), state.Suggestions...)
	return &out, nil
}

func (s *Store) Put(_ context.Context, state domain.PipelineState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.SessionID] = state
	return nil
}
