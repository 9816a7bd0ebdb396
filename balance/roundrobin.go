package balance

import (
	"fmt"
	"sync/atomic"

	"jsonrpc-client/registry"
)

// RoundRobin distributes calls evenly across all endpoints in order, using
// an atomic counter so Pick stays lock-free under concurrent calls.
type RoundRobin struct {
	counter atomic.Int64
}

func (b *RoundRobin) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}
	index := b.counter.Add(1) % int64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobin) Name() string {
	return "RoundRobin"
}
