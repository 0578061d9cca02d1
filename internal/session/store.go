// Package session owns the per-session storefront state: one cart plus, once
// checkout has started, one wizard. Each session has a single active client;
// the store only guards its own registry map.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evergreenmarket/storefront-service-go/internal/cart"
	"github.com/evergreenmarket/storefront-service-go/internal/checkout"
)

type Session struct {
	ID        string
	Cart      *cart.Cart
	Checkout  *checkout.Wizard // nil until StartCheckout
	CreatedAt time.Time

	mu sync.Mutex
}

// Lock serializes mutations on the session. Handlers take it for the span of
// one request; within a session requests are issued one at a time anyway.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// StartCheckout creates the wizard if none is running and returns it.
func (s *Session) StartCheckout() *checkout.Wizard {
	if s.Checkout == nil {
		s.Checkout = checkout.NewWizard()
	}
	return s.Checkout
}

// FinishCheckout discards the wizard, on completion or abandonment alike.
func (s *Session) FinishCheckout() {
	s.Checkout = nil
}

// Store is the in-memory session registry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session with the given id, creating it on first
// use. An empty id gets a fresh uuid.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := &Session{
		ID:        id,
		Cart:      cart.New(),
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[id] = sess
	return sess
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Drop removes the session outright, e.g. when a client abandons it.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
