// Package balance picks one endpoint out of a discovered set before each
// call.
//
// Two strategies are implemented:
//   - RoundRobin:      equal-capacity servers
//   - WeightedRandom:  heterogeneous servers (weight comes from the registry entry)
package balance

import "jsonrpc-client/registry"

// Balancer selects a target endpoint. Pick runs before every call and must
// be goroutine-safe.
type Balancer interface {
	Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error)

	// Name returns the strategy name, for logging.
	Name() string
}
