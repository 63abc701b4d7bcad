package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/core/domain"
	"github.com/jerrymart/quickmart/internal/port"
)

// CheckoutService creates register sessions and owns the artifact queue the
// persistence workers drain. Each session decodes its own inventory from
// the configured catalog text, so sessions never contaminate one another.
type CheckoutService struct {
	catalogText string
	taxRate     decimal.Decimal
	codec       port.CatalogCodec
	seq         port.SequenceRepository
	queue       chan Artifact

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewCheckoutService wires a service over the given catalog text. queueSize
// bounds how many completed sales may await persistence.
func NewCheckoutService(catalogText string, taxRate decimal.Decimal, codec port.CatalogCodec, seq port.SequenceRepository, queueSize int) *CheckoutService {
	return &CheckoutService{
		catalogText: catalogText,
		taxRate:     taxRate,
		codec:       codec,
		seq:         seq,
		queue:       make(chan Artifact, queueSize),
		sessions:    make(map[string]*Session),
	}
}

// CreateSession opens a new register session with a fresh inventory decoded
// from the catalog text.
func (s *CheckoutService) CreateSession() (*Session, error) {
	inv, err := s.codec.Decode(s.catalogText)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	sess := &Session{
		id:        uuid.NewString(),
		taxRate:   s.taxRate,
		inventory: inv,
		cart:      &domain.Cart{},
		seq:       s.seq,
		codec:     s.codec,
		queue:     s.queue,
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess, nil
}

// Session looks up an open session by id.
func (s *CheckoutService) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

// Artifacts exposes the persistence queue for the worker pool.
func (s *CheckoutService) Artifacts() <-chan Artifact {
	return s.queue
}

// Close stops accepting artifacts; workers drain what remains.
func (s *CheckoutService) Close() {
	close(s.queue)
}
