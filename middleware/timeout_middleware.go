package middleware

import (
	"context"
	"time"

	"jsonrpc-client/transport"
)

// Timeout bounds each exchange with a context deadline. The transport
// reports the expiry through its own error type, so the failure still
// classifies as a transport error upstream.
func Timeout[C transport.ErrorType](timeout time.Duration) Middleware[C] {
	return func(next transport.Transport[C]) transport.Transport[C] {
		return transport.Func[C](func(ctx context.Context, req []byte) ([]byte, C) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next.Send(ctx, req)
		})
	}
}
