// Package protocol implements the JSON-RPC 2.0 envelope layer.
//
// It covers exactly two jobs: turning a method call into request bytes, and
// turning response bytes into either a result payload or a server-reported
// error. Everything stateful — id assignment, correlation, transport — lives
// above this package.
//
// Wire shapes:
//
//	request:  {"jsonrpc":"2.0","id":1,"method":"subtract","params":[42,23]}
//	success:  {"jsonrpc":"2.0","id":1,"result":19}
//	failure:  {"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}
package protocol

import (
	"encoding/json"
	"fmt"
)

// Protocol version strings. V2 is the default everywhere; V1 exists because
// some widely deployed servers (bitcoind among them) still speak 1.0.
const (
	V1 = "1.0"
	V2 = "2.0"
)

// Request is a single JSON-RPC request envelope.
// Params is always a positional array — by-name parameters are not supported.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// NewRequest builds the envelope for one call.
// A nil params slice is normalized to the empty array so the wire form always
// carries "params":[].
func NewRequest(version string, id int64, method string, params []any) *Request {
	if params == nil {
		params = []any{}
	}
	return &Request{JSONRPC: version, ID: id, Method: method, Params: params}
}

// Encode serializes the request envelope.
// It fails only when a parameter value has no JSON representation.
func (r *Request) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode request %q: %w", r.Method, err)
	}
	return data, nil
}

// Error is the JSON-RPC error object carried inside a failure response.
// Code and Message come from the server verbatim; Data is optional and kept
// raw so callers can decode it into whatever shape the server documents.
type Error struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: request failed with code %d: %s", e.Code, e.Message)
}

// Response is a decoded response envelope.
// Exactly one of Result and Err is set; DecodeResponse enforces that.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Err     *Error          `json:"error,omitempty"`
}

// Payload splits the envelope into the result|error union.
func (r *Response) Payload() (json.RawMessage, *Error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Result, nil
}

// DecodeResponse parses response bytes into an envelope.
//
// A response must carry exactly one of the "result" and "error" keys: both
// present is ambiguous and neither present is empty, and either way the peer
// violated the envelope contract, so decoding fails instead of guessing.
// Note that "result":null is a present result — a method may legitimately
// return null.
//
// The id is parsed but not checked against anything here; correlation against
// the outbound request is the dispatcher's job, so a stale response can be
// rejected distinctly from a malformed one.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hasResult := len(resp.Result) > 0
	hasError := resp.Err != nil
	if hasResult && hasError {
		return nil, fmt.Errorf("decode response: envelope carries both result and error")
	}
	if !hasResult && !hasError {
		return nil, fmt.Errorf("decode response: envelope carries neither result nor error")
	}

	return &resp, nil
}
