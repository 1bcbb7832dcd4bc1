package gatewaymock

import (
	"context"
	"sync"

	domain "peerlend-backend/internal/domain/disbursement"
)

var _ domain.Gateway = (*Gateway)(nil)

// Gateway is a function-backed mock of the payment rail. It also counts
// transfers per offer id so retry-safety tests can assert exactly-once
// execution against a deduping rail.
type Gateway struct {
	TransferFn func(ctx context.Context, req domain.TransferRequest) error

	mu    sync.Mutex
	calls map[string]int
}

func (m *Gateway) Transfer(ctx context.Context, req domain.TransferRequest) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[req.OfferID]++
	m.mu.Unlock()

	if m.TransferFn != nil {
		return m.TransferFn(ctx, req)
	}
	return nil
}

// Calls returns how many times Transfer was invoked for the offer.
func (m *Gateway) Calls(offerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[offerID]
}
