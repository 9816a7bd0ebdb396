package balance

import (
	"fmt"
	"math/rand"

	"jsonrpc-client/registry"
)

// WeightedRandom picks endpoints with probability proportional to their
// registry weight. Endpoints with zero weight are never chosen unless every
// weight is zero, in which case selection falls back to uniform.
type WeightedRandom struct{}

func (b *WeightedRandom) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	totalWeight := 0
	for _, ep := range endpoints {
		totalWeight += ep.Weight
	}
	if totalWeight <= 0 {
		return &endpoints[rand.Intn(len(endpoints))], nil
	}

	r := rand.Intn(totalWeight)
	for i := range endpoints {
		r -= endpoints[i].Weight
		if r < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandom) Name() string {
	return "WeightedRandom"
}
