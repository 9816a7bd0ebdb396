// Package amqptransport carries JSON-RPC exchanges over an AMQP broker using
// the request/reply pattern: each Send declares an exclusive reply queue,
// publishes the request with a fresh correlation id and ReplyTo, then waits
// for the matching delivery.
package amqptransport

import (
	"context"
	"fmt"

	"github.com/pborman/uuid"
	"github.com/streadway/amqp"

	"jsonrpc-client/transport"
)

// Error is the transport error type AMQP exchanges fail with. Op names the
// broker operation that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("amqp transport: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var _ transport.Transport[*Error] = (*Transport)(nil)

// Transport publishes requests to a fixed routing key (the queue the server
// consumes from) and collects replies on per-call exclusive queues.
type Transport struct {
	conn       *amqp.Connection
	ch         *amqp.Channel
	routingKey string
}

// Dial connects to the broker and opens a channel.
func Dial(uri, routingKey string) (*Transport, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Transport{conn: conn, ch: ch, routingKey: routingKey}, nil
}

// Send implements transport.Transport[*Error].
func (t *Transport) Send(ctx context.Context, req []byte) ([]byte, *Error) {
	// Exclusive auto-delete queue: the broker routes our reply here and
	// drops the queue when the consumer goes away.
	q, err := t.ch.QueueDeclare("", false, false, true, false, nil)
	if err != nil {
		return nil, &Error{Op: "declare reply queue", Err: err}
	}

	deliveries, err := t.ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return nil, &Error{Op: "consume", Err: err}
	}

	corrID := uuid.New()
	err = t.ch.Publish("", t.routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: corrID,
		ReplyTo:       q.Name,
		Body:          req,
	})
	if err != nil {
		return nil, &Error{Op: "publish", Err: err}
	}

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return nil, &Error{Op: "await reply", Err: fmt.Errorf("delivery channel closed")}
			}
			if d.CorrelationId != corrID {
				continue // stale reply from an earlier, abandoned call
			}
			return d.Body, nil
		case <-ctx.Done():
			return nil, &Error{Op: "await reply", Err: ctx.Err()}
		}
	}
}

// Close tears down the channel and the connection.
func (t *Transport) Close() {
	t.ch.Close()
	t.conn.Close()
}
