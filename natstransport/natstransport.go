// Package natstransport carries JSON-RPC exchanges over NATS request/reply.
// NATS handles reply-subject plumbing and correlation itself, so each call
// is a single RequestWithContext on a fixed subject.
package natstransport

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"jsonrpc-client/transport"
)

// Error is the transport error type NATS exchanges fail with.
type Error struct {
	Subject string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("nats transport: request on %s: %v", e.Subject, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var _ transport.Transport[*Error] = (*Transport)(nil)

// Transport issues each call as a NATS request; the responder's message body
// is the response envelope.
type Transport struct {
	conn    *nats.Conn
	subject string
}

// New wraps an established NATS connection. The caller keeps ownership of
// the connection and closes it when done.
func New(conn *nats.Conn, subject string) *Transport {
	return &Transport{conn: conn, subject: subject}
}

// Send implements transport.Transport[*Error].
func (t *Transport) Send(ctx context.Context, req []byte) ([]byte, *Error) {
	msg, err := t.conn.RequestWithContext(ctx, t.subject, req)
	if err != nil {
		return nil, &Error{Subject: t.subject, Err: err}
	}
	return msg.Data, nil
}
