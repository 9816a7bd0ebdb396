package client

import (
	"jsonrpc-client/protocol"
	"jsonrpc-client/transport"
)

// Kind classifies a call failure. Callers branch on it to decide whether an
// error is worth retrying (transport), carries a remote diagnostic
// (protocol), or points at a bug on one side of the contract (serialization).
type Kind int

const (
	// KindTransport: the transport could not complete the exchange. The
	// original error value is preserved unchanged.
	KindTransport Kind = iota
	// KindProtocol: the server answered with a well-formed JSON-RPC error
	// object.
	KindProtocol
	// KindSerialization: the envelope itself is broken — encode failure,
	// malformed response, id mismatch, or a result that does not fit the
	// declared return type. Not a remote failure.
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	default:
		return "serialization"
	}
}

// Error is the single failure type every call funnels into, generic over the
// transport's error type C.
//
// The library supplies the protocol and serialization conversions itself.
// The transport conversion is the integrator's side of the bargain: it
// exists only for C satisfying transport.ErrorType, so assembling a client
// around an unconvertible error type is a compile error, not a runtime
// surprise.
type Error[C transport.ErrorType] struct {
	kind      Kind
	transport C
	protocol  *protocol.Error
	cause     error
}

// TransportError lifts a transport failure into the unified error type.
func TransportError[C transport.ErrorType](terr C) *Error[C] {
	return &Error[C]{kind: KindTransport, transport: terr}
}

// ProtocolError wraps a server-reported JSON-RPC error object.
func ProtocolError[C transport.ErrorType](perr *protocol.Error) *Error[C] {
	return &Error[C]{kind: KindProtocol, protocol: perr}
}

// SerializationError wraps an envelope encode/decode failure.
func SerializationError[C transport.ErrorType](cause error) *Error[C] {
	return &Error[C]{kind: KindSerialization, cause: cause}
}

// Kind reports which variant this error is.
func (e *Error[C]) Kind() Kind { return e.kind }

// Transport returns the preserved transport error. The bool is false when
// the error is not a transport failure.
func (e *Error[C]) Transport() (C, bool) {
	if e.kind != KindTransport {
		var zero C
		return zero, false
	}
	return e.transport, true
}

// Protocol returns the server-reported error object, or false when the error
// is not a protocol failure.
func (e *Error[C]) Protocol() (*protocol.Error, bool) {
	if e.kind != KindProtocol {
		return nil, false
	}
	return e.protocol, true
}

func (e *Error[C]) Error() string {
	return e.Unwrap().Error()
}

// Unwrap exposes the underlying error so errors.Is and errors.As see through
// the classification.
func (e *Error[C]) Unwrap() error {
	switch e.kind {
	case KindTransport:
		return e.transport
	case KindProtocol:
		return e.protocol
	default:
		return e.cause
	}
}
