// Package transport defines the capability a JSON-RPC client needs from the
// wire: deliver the encoded request, hand back the raw response.
//
// The interface is generic over the implementation's own error type C. That
// is the load-bearing choice of the whole library: the client's unified
// error type stores C directly, so a transport failure survives
// classification without being flattened into a string or an opaque error
// interface. The ErrorType constraint is also where the integrator's
// obligation is enforced — a transport error type that does not implement
// error cannot instantiate Transport, Client, or client.Error, and the
// program does not compile.
package transport

import "context"

// ErrorType constrains the error type an integrator picks for their
// transport. It must implement error, and it must be comparable so callers
// can recognise "no error": Send reports success by returning the zero value
// of C. In practice C is a pointer type (*httptransport.Error and friends)
// whose zero value is nil.
type ErrorType interface {
	comparable
	error
}

// Transport delivers one encoded request and produces exactly one outcome:
// the raw response bytes, or a transport-level failure of type C.
//
// Retries, timeouts, pooling and cancellation are the implementation's
// business; the dispatcher above treats Send as a single opaque exchange.
type Transport[C ErrorType] interface {
	Send(ctx context.Context, req []byte) ([]byte, C)
}

// Func adapts a plain function to the Transport interface, for tests and for
// middleware that wraps an existing transport.
type Func[C ErrorType] func(ctx context.Context, req []byte) ([]byte, C)

func (f Func[C]) Send(ctx context.Context, req []byte) ([]byte, C) {
	return f(ctx, req)
}
