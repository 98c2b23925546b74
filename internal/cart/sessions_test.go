package cart

import (
	"context"
	"testing"

	"github.com/jerseystore/jerseystore-backend/pkg/kv"
)

func TestSessionsReturnsSameEngine(t *testing.T) {
	sessions := NewSessions(kv.NewMemory(), nil, nil)
	ctx := context.Background()

	a := sessions.Engine(ctx, "s1")
	b := sessions.Engine(ctx, "s1")
	if a != b {
		t.Fatal("expected the same engine instance for one session")
	}

	other := sessions.Engine(ctx, "s2")
	if other == a {
		t.Fatal("expected distinct engines per session")
	}
}

func TestSessionsHydrateFromStore(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	seed := NewSessions(store, nil, nil)
	engine := seed.Engine(ctx, "s1")
	p := testProduct("p1", 700, map[string]int{"M": 4})
	if _, err := engine.AddItem(ctx, p, "M", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := NewSessions(store, nil, nil)
	reloaded := fresh.Engine(ctx, "s1")
	if reloaded.TotalItems() != 2 {
		t.Fatalf("expected hydrated engine with 2 items, got %d", reloaded.TotalItems())
	}
}

func TestSessionsDropForcesRehydrate(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	sessions := NewSessions(store, nil, nil)

	engine := sessions.Engine(ctx, "s1")
	p := testProduct("p1", 700, map[string]int{"M": 4})
	if _, err := engine.AddItem(ctx, p, "M", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sessions.Drop("s1")
	fresh := sessions.Engine(ctx, "s1")
	if fresh == engine {
		t.Fatal("expected a new engine after drop")
	}
	if fresh.TotalItems() != 1 {
		t.Fatalf("expected persisted state to survive drop, got %d", fresh.TotalItems())
	}
}
