package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jsonrpc-client/transport"
)

// Logging records one entry per exchange: payload sizes, duration, and the
// transport error if any. The middleware sees only bytes — method names live
// inside the envelope and are the client layer's business.
func Logging[C transport.ErrorType](logger *zap.Logger) Middleware[C] {
	return func(next transport.Transport[C]) transport.Transport[C] {
		return transport.Func[C](func(ctx context.Context, req []byte) ([]byte, C) {
			start := time.Now()
			resp, terr := next.Send(ctx, req)

			var zero C
			if terr != zero {
				logger.Warn("jsonrpc send failed",
					zap.Int("request_bytes", len(req)),
					zap.Duration("duration", time.Since(start)),
					zap.Error(terr),
				)
				return resp, terr
			}
			logger.Debug("jsonrpc send",
				zap.Int("request_bytes", len(req)),
				zap.Int("response_bytes", len(resp)),
				zap.Duration("duration", time.Since(start)),
			)
			return resp, terr
		})
	}
}
