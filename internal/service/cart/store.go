package cart

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"fayclick/internal/domain"
)

// Store owns all live cart sessions. It replaces the ambient singleton
// the web client kept per page: each sale gets its own session, created
// on page entry and destroyed on cancel, expiry or successful checkout.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type session struct {
	cart        *Cart
	structureID string
	lastSeen    time.Time
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go s.sweep()
	return s
}

// Create opens a new empty cart session for a structure and returns its id.
func (s *Store) Create(structureID string) (string, error) {
	id, err := randomSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[id] = &session{
		cart:        &Cart{},
		structureID: structureID,
		lastSeen:    s.now(),
	}
	s.mu.Unlock()
	return id, nil
}

// Get returns the cart for a session owned by the given structure and
// refreshes its expiry. Unknown or foreign sessions yield ErrNotFound.
func (s *Store) Get(structureID, id string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.structureID != structureID {
		return nil, domain.ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess.cart, nil
}

// Destroy removes a session. Removing an unknown session is a no-op.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the expiry sweeper.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.expire()
		}
	}
}

func (s *Store) expire() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
}

func randomSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
