package registry

import "context"

// Endpoint describes one reachable JSON-RPC server instance. Addr is the
// full base address a transport can dial, e.g. "http://10.0.0.7:8332".
type Endpoint struct {
	Addr    string
	Weight  int // weight for load balancing
	Version string
}

// Registry is the discovery interface transports resolve endpoints through.
type Registry interface {
	// Register announces an endpoint under a service name with a TTL lease.
	Register(ctx context.Context, service string, ep Endpoint, ttl int64) error

	// Deregister removes an endpoint, typically during graceful shutdown.
	Deregister(ctx context.Context, service, addr string) error

	// Discover returns all currently registered endpoints for a service.
	Discover(ctx context.Context, service string) ([]Endpoint, error)

	// Watch emits the full endpoint list whenever it changes. The channel
	// closes when ctx ends.
	Watch(ctx context.Context, service string) <-chan []Endpoint
}
