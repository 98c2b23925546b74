package cart

import (
	"context"
	"sync"

	"github.com/jerseystore/jerseystore-backend/pkg/kv"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// KeyFunc maps a session id to the durable storage key for its cart.
type KeyFunc func(sessionID string) string

// Sessions hands out one engine per session id. The first request for a
// session hydrates its engine from storage; subsequent requests share the
// same instance so concurrent tabs observe a single source of truth.
type Sessions struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   kv.Store
	keyFn   KeyFunc
	logg    *logger.Logger
}

// NewSessions builds the registry backed by the provided store.
func NewSessions(store kv.Store, keyFn KeyFunc, logg *logger.Logger) *Sessions {
	if keyFn == nil {
		keyFn = func(sessionID string) string { return "jerseystore:cart:" + sessionID }
	}
	return &Sessions{
		engines: map[string]*Engine{},
		store:   store,
		keyFn:   keyFn,
		logg:    logg,
	}
}

// Engine returns the session's cart engine, creating and hydrating it on
// first use.
func (s *Sessions) Engine(ctx context.Context, sessionID string) *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	if engine, ok := s.engines[sessionID]; ok {
		return engine
	}
	engine := NewEngine(ctx, s.store, s.keyFn(sessionID), s.logg)
	s.engines[sessionID] = engine
	return engine
}

// Drop forgets the in-process engine for a session. Persisted state is left
// untouched; the next request re-hydrates.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, sessionID)
}
