// Package memory holds the process-lifetime claim ledger. Claims do not
// survive a restart; see the sqlite adapter for the durable variant.
package memory

import (
	"sync"

	"github.com/soundforge/seller/internal/port"
)

var _ port.ClaimStore = (*ClaimStore)(nil)

type ClaimStore struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

func NewClaimStore() *ClaimStore {
	return &ClaimStore{claimed: make(map[string]struct{})}
}

// TryClaim atomically tests and inserts jobID. It returns true exactly once
// per identifier for the lifetime of the store.
func (s *ClaimStore) TryClaim(jobID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claimed[jobID]; exists {
		return false, nil
	}
	s.claimed[jobID] = struct{}{}
	return true, nil
}
