// Package client implements the call path of a JSON-RPC 2.0 client: id
// assignment, envelope encode/decode, response correlation, and the
// funneling of every failure mode into one generic Error type.
//
// Each call is strictly linear — encode → send → decode → correlate →
// classify — with no retries and no branching back. Retry policy belongs to
// the transport; see the middleware package.
//
// A typed per-service client is a thin struct over Invoke, one method per
// remote procedure:
//
//	type mathClient struct{ rpc *client.Client[*httptransport.Error] }
//
//	func (m *mathClient) Add(ctx context.Context, a, b int) (int, error) {
//		return client.Invoke[int](ctx, m.rpc, "add", a, b)
//	}
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"jsonrpc-client/protocol"
	"jsonrpc-client/transport"
)

// ErrIDMismatch marks a response whose id does not match the request that
// was sent. It classifies as KindSerialization — the peer violated the
// framing contract — but stays distinguishable from a structurally malformed
// envelope via errors.Is.
var ErrIDMismatch = errors.New("jsonrpc: response id does not match request id")

// Client issues JSON-RPC calls over a Transport. The only state shared
// between concurrent calls is the atomic id counter; ids start at 1 and are
// unique within the client's lifetime, so calls may be issued from any
// number of goroutines.
type Client[C transport.ErrorType] struct {
	transport transport.Transport[C]
	version   string
	seq       atomic.Int64
}

// Option configures a Client.
type Option func(*options)

type options struct {
	version string
}

// WithVersion overrides the protocol version stamped on outgoing requests.
// Defaults to protocol.V2; protocol.V1 talks to legacy servers.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// New assembles a client around a transport. This is the point where the
// transport error type C is fixed: a C without an Error() string method
// fails the transport.ErrorType constraint and is rejected by the compiler
// here, before any call can be attempted.
func New[C transport.ErrorType](t transport.Transport[C], opts ...Option) *Client[C] {
	o := options{version: protocol.V2}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client[C]{transport: t, version: o.version}
}

// Call invokes a remote method and decodes its result into result, which
// must be a pointer, or nil to discard the result. Every non-nil return is a
// *Error[C].
func (c *Client[C]) Call(ctx context.Context, method string, result any, params ...any) error {
	raw, cerr := c.roundTrip(ctx, method, params)
	if cerr != nil {
		return cerr
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return SerializationError[C](fmt.Errorf("decode %q result: %w", method, err))
	}
	return nil
}

// Invoke is the typed surface over Call: one call, one typed result.
func Invoke[R any, C transport.ErrorType](ctx context.Context, c *Client[C], method string, params ...any) (R, error) {
	var out R
	if err := c.Call(ctx, method, &out, params...); err != nil {
		var zero R
		return zero, err
	}
	return out, nil
}

// roundTrip performs one full exchange and classifies every failure.
func (c *Client[C]) roundTrip(ctx context.Context, method string, params []any) (json.RawMessage, *Error[C]) {
	id := c.seq.Add(1)

	req := protocol.NewRequest(c.version, id, method, params)
	body, err := req.Encode()
	if err != nil {
		return nil, SerializationError[C](err)
	}

	// One exchange on the wire. The zero value of C means the transport
	// succeeded; anything else is preserved as-is in the Transport variant.
	raw, terr := c.transport.Send(ctx, body)
	var zero C
	if terr != zero {
		return nil, TransportError[C](terr)
	}

	resp, err := protocol.DecodeResponse(raw)
	if err != nil {
		return nil, SerializationError[C](err)
	}
	if resp.ID != id {
		return nil, SerializationError[C](fmt.Errorf("%w: sent %d, received %d", ErrIDMismatch, id, resp.ID))
	}

	result, perr := resp.Payload()
	if perr != nil {
		return nil, ProtocolError[C](perr)
	}
	return result, nil
}
