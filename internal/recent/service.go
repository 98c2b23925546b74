package recent

import (
	"context"
	"encoding/json"

	"github.com/jerseystore/jerseystore-backend/internal/catalog"
	"github.com/jerseystore/jerseystore-backend/pkg/kv"
	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// MaxEntries bounds the recently-viewed list per session.
const MaxEntries = 6

// KeyFunc maps a session id to the durable key for its recent-product ids.
type KeyFunc func(sessionID string) string

// Service tracks the most recently viewed product ids per session,
// most-recent-first and deduplicated. Storage failures degrade silently to
// an empty list; this feature is never worth failing a request over.
type Service struct {
	store kv.Store
	keyFn KeyFunc
	logg  *logger.Logger
}

func NewService(store kv.Store, keyFn KeyFunc, logg *logger.Logger) *Service {
	if keyFn == nil {
		keyFn = func(sessionID string) string { return "jerseystore:recent:" + sessionID }
	}
	return &Service{store: store, keyFn: keyFn, logg: logg}
}

// Touch records a product view. Re-viewing an id moves it to the front
// rather than duplicating it; the list is capped at MaxEntries.
func (s *Service) Touch(ctx context.Context, sessionID, productID string) {
	if productID == "" {
		return
	}
	ids := s.load(ctx, sessionID)

	updated := make([]string, 0, MaxEntries)
	updated = append(updated, productID)
	for _, id := range ids {
		if id == productID {
			continue
		}
		updated = append(updated, id)
		if len(updated) == MaxEntries {
			break
		}
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, s.keyFn(sessionID), string(raw)); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "recent products persist failed")
	}
}

// IDs returns the stored ids, most-recent-first.
func (s *Service) IDs(ctx context.Context, sessionID string) []string {
	return s.load(ctx, sessionID)
}

// Products resolves the stored ids against the catalog, dropping ids the
// catalog no longer knows.
func (s *Service) Products(ctx context.Context, sessionID string, store *catalog.Store) []catalog.Product {
	ids := s.load(ctx, sessionID)
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := store.ByID(id); err == nil {
			out = append(out, *p)
		}
	}
	return out
}

func (s *Service) load(ctx context.Context, sessionID string) []string {
	raw, err := s.store.Get(ctx, s.keyFn(sessionID))
	if err != nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding malformed recent products entry")
		}
		_ = s.store.Del(ctx, s.keyFn(sessionID))
		return nil
	}
	return ids
}
