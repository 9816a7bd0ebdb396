package middleware

import (
	"context"
	"time"

	"jsonrpc-client/transport"
)

// Retry re-sends a request when the transport fails with an error the
// retryable predicate accepts, sleeping baseDelay*2^attempt between tries.
// Protocol-level errors never reach this layer: the server answered, and
// whether to repeat such a call is the caller's decision.
func Retry[C transport.ErrorType](maxRetries int, baseDelay time.Duration, retryable func(C) bool) Middleware[C] {
	return func(next transport.Transport[C]) transport.Transport[C] {
		return transport.Func[C](func(ctx context.Context, req []byte) ([]byte, C) {
			resp, terr := next.Send(ctx, req)

			var zero C
			for i := 0; i < maxRetries; i++ {
				if terr == zero || !retryable(terr) {
					return resp, terr
				}
				// Exponential backoff, abandoned if the context ends first.
				select {
				case <-time.After(baseDelay * time.Duration(1<<i)):
				case <-ctx.Done():
					return resp, terr
				}
				resp, terr = next.Send(ctx, req)
			}
			return resp, terr
		})
	}
}
