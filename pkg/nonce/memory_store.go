package nonce

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// sweepInterval bounds how often MarkUsed scans for expired entries.
const sweepInterval = time.Minute

// MemoryStore is a process-local Store for single-instance deployments and
// for running without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]time.Time

	// next time MarkUsed drops expired entries
	nextSweep time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store. A non-positive ttl selects
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Reserve(_ context.Context, signer common.Address, digest common.Hash) error {
	key := buildKey(signer, digest)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiry, ok := s.entries[key]; ok && now.Before(expiry) {
		return ErrAlreadyUsed
	}
	s.entries[key] = now.Add(s.ttl)
	return nil
}

func (s *MemoryStore) MarkUsed(_ context.Context, signer common.Address, digest common.Hash) error {
	key := buildKey(signer, digest)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = now.Add(s.ttl)
	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(sweepInterval)
	}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, signer common.Address, digest common.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, buildKey(signer, digest))
	return nil
}

// sweepLocked drops expired entries. Caller holds mu.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for k, expiry := range s.entries {
		if !now.Before(expiry) {
			delete(s.entries, k)
		}
	}
}
