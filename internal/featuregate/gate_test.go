package featuregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"fayclick/internal/domain"
)

type stubSubRepo struct {
	sub   *domain.Subscription
	err   error
	calls int
}

func (s *stubSubRepo) GetByStructure(_ context.Context, _ string) (*domain.Subscription, error) {
	s.calls++
	return s.sub, s.err
}

func TestCanSellActiveSubscription(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      true,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}}
	g := New(repo, time.Minute)

	ok, err := g.CanSell(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected sale allowed")
	}
}

func TestCanSellExpired(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      true,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}}
	g := New(repo, time.Minute)

	ok, err := g.CanSell(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected sale refused for expired subscription")
	}
}

func TestCanSellInactive(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      false,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}}
	g := New(repo, time.Minute)

	if ok, _ := g.CanSell(context.Background(), "s1"); ok {
		t.Fatalf("expected sale refused for inactive subscription")
	}
}

func TestCanSellMissingSubscription(t *testing.T) {
	repo := &stubSubRepo{err: domain.ErrNotFound}
	g := New(repo, time.Minute)

	ok, err := g.CanSell(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected sale refused without subscription")
	}
}

func TestCanSellRepoError(t *testing.T) {
	repo := &stubSubRepo{err: errors.New("db down")}
	g := New(repo, time.Minute)

	if _, err := g.CanSell(context.Background(), "s1"); err == nil {
		t.Fatalf("expected error propagated")
	}
}

func TestCacheAvoidsRepeatedLookups(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      true,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}}
	g := New(repo, time.Minute)

	for i := 0; i < 5; i++ {
		if _, err := g.CanSell(context.Background(), "s1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      true,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}}
	g := New(repo, time.Minute)

	current := time.Now()
	g.now = func() time.Time { return current }

	_, _ = g.CanSell(context.Background(), "s1")
	current = current.Add(2 * time.Minute)
	_, _ = g.CanSell(context.Background(), "s1")

	if repo.calls != 2 {
		t.Fatalf("expected refresh after ttl, got %d calls", repo.calls)
	}
}

func TestInvalidate(t *testing.T) {
	repo := &stubSubRepo{sub: &domain.Subscription{
		StructureID: "s1",
		Active:      true,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}}
	g := New(repo, time.Minute)

	_, _ = g.CanSell(context.Background(), "s1")
	g.Invalidate("s1")
	_, _ = g.CanSell(context.Background(), "s1")

	if repo.calls != 2 {
		t.Fatalf("expected repo hit after invalidate, got %d calls", repo.calls)
	}
}
