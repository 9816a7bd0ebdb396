package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"jsonrpc-client/transport"
)

// RateLimit applies a token-bucket limiter in front of the transport. A
// rejected exchange never reaches the wire; reject mints the error value the
// transport's error type uses for it, keeping the failure inside C.
func RateLimit[C transport.ErrorType](r float64, burst int, reject func() C) Middleware[C] {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next transport.Transport[C]) transport.Transport[C] {
		return transport.Func[C](func(ctx context.Context, req []byte) ([]byte, C) {
			if !limiter.Allow() {
				return nil, reject()
			}
			return next.Send(ctx, req)
		})
	}
}
