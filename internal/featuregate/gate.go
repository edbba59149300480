package featuregate

import (
	"context"
	"errors"
	"sync"
	"time"

	"fayclick/internal/domain"
)

type subscriptionRepo interface {
	GetByStructure(ctx context.Context, structureID string) (*domain.Subscription, error)
}

// Gate answers "may this structure sell right now?". Subscription rows
// change rarely, so answers are cached with a TTL instead of hitting the
// database on every sale action.
type Gate struct {
	repo subscriptionRepo
	ttl  time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	sub       domain.Subscription
	expiresAt time.Time
}

func New(repo subscriptionRepo, ttl time.Duration) *Gate {
	return &Gate{
		repo:  repo,
		ttl:   ttl,
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

// CanSell reports whether the structure's subscription currently allows
// sale actions. A structure without a subscription row cannot sell.
func (g *Gate) CanSell(ctx context.Context, structureID string) (bool, error) {
	sub, err := g.resolve(ctx, structureID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.Valid(g.now()), nil
}

// Subscription returns the (possibly cached) subscription record, for
// the renewal prompt shown when the gate refuses.
func (g *Gate) Subscription(ctx context.Context, structureID string) (*domain.Subscription, error) {
	sub, err := g.resolve(ctx, structureID)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Invalidate drops the cached entry, used after a renewal.
func (g *Gate) Invalidate(structureID string) {
	g.mu.Lock()
	delete(g.cache, structureID)
	g.mu.Unlock()
}

func (g *Gate) resolve(ctx context.Context, structureID string) (domain.Subscription, error) {
	g.mu.RLock()
	entry, ok := g.cache[structureID]
	g.mu.RUnlock()
	if ok && g.now().Before(entry.expiresAt) {
		return entry.sub, nil
	}

	sub, err := g.repo.GetByStructure(ctx, structureID)
	if err != nil {
		return domain.Subscription{}, err
	}

	g.mu.Lock()
	g.cache[structureID] = cacheEntry{sub: *sub, expiresAt: g.now().Add(g.ttl)}
	g.mu.Unlock()
	return *sub, nil
}
