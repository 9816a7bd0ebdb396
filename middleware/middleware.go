// Package middleware provides transport decorators: each middleware wraps a
// Transport and returns a Transport, so decorators compose with Chain and
// the concrete transport error type C survives the whole stack unchanged.
package middleware

import "jsonrpc-client/transport"

type Middleware[C transport.ErrorType] func(next transport.Transport[C]) transport.Transport[C]

// Chain combines middlewares into one; the first argument is the outermost
// layer.
func Chain[C transport.ErrorType](middlewares ...Middleware[C]) Middleware[C] {
	return func(next transport.Transport[C]) transport.Transport[C] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
