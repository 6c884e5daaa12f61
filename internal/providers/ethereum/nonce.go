package ethereum

import (
	"context"
	"sync"
)

// nonceManager hands out escrow nonces locally so concurrent builds never reuse one.
// The counter is re-read from the node after any submission failure.
type nonceManager struct {
	mu    sync.Mutex
	next  uint64
	valid bool
}

// Next returns the next nonce, fetching from the node when the local counter is unknown
func (m *nonceManager) Next(ctx context.Context, fetch func(ctx context.Context) (uint64, error)) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.valid {
		nonce, err := fetch(ctx)
		if err != nil {
			return 0, err
		}
		m.next = nonce
		m.valid = true
	}

	nonce := m.next
	m.next++
	return nonce, nil
}

// Reset forces the next call to re-read the nonce from the node
func (m *nonceManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
}
