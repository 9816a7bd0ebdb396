package test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"jsonrpc-client/client"
	"jsonrpc-client/httptransport"
	"jsonrpc-client/middleware"
	"jsonrpc-client/protocol"
)

// arithServer is a minimal JSON-RPC 2.0 HTTP server understanding "add".
func arithServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req protocol.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch req.Method {
		case "add":
			sum := int(req.Params[0].(float64)) + int(req.Params[1].(float64))
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%d}`, req.ID, sum)
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"not found"}}`, req.ID)
		}
	}))
}

// arithClient is the typed surface an integrator assembles: the transport
// error type is fixed to *httptransport.Error right here, and a type without
// an Error() string method would not get past the compiler.
type arithClient struct {
	rpc *client.Client[*httptransport.Error]
}

func (a *arithClient) Add(ctx context.Context, x, y int) (int, error) {
	return client.Invoke[int](ctx, a.rpc, "add", x, y)
}

func (a *arithClient) Multiply(ctx context.Context, x, y int) (int, error) {
	return client.Invoke[int](ctx, a.rpc, "multiply", x, y)
}

func newArithClient(t *testing.T, url string) *arithClient {
	t.Helper()

	base, err := httptransport.New(url)
	if err != nil {
		t.Fatal(err)
	}

	retryable := func(e *httptransport.Error) bool { return e.StatusCode == 0 }
	stack := middleware.Chain(
		middleware.Logging[*httptransport.Error](zap.NewNop()),
		middleware.Timeout[*httptransport.Error](2*time.Second),
		middleware.Retry(2, 10*time.Millisecond, retryable),
	)(base)

	return &arithClient{rpc: client.New[*httptransport.Error](stack)}
}

func TestEndToEndSuccess(t *testing.T) {
	srv := arithServer()
	defer srv.Close()

	arith := newArithClient(t, srv.URL)

	sum, err := arith.Add(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum != 3 {
		t.Fatalf("expect 3, got %d", sum)
	}
}

func TestEndToEndProtocolError(t *testing.T) {
	srv := arithServer()
	defer srv.Close()

	arith := newArithClient(t, srv.URL)

	_, err := arith.Multiply(context.Background(), 2, 3)
	if err == nil {
		t.Fatal("expect error for unknown method")
	}

	var cerr *client.Error[*httptransport.Error]
	if !errors.As(err, &cerr) {
		t.Fatalf("expect *client.Error, got %T", err)
	}
	if cerr.Kind() != client.KindProtocol {
		t.Fatalf("expect protocol kind, got %s", cerr.Kind())
	}
	perr, _ := cerr.Protocol()
	if perr.Code != -32601 || perr.Message != "not found" {
		t.Fatalf("server diagnostics must survive: code %d message %q", perr.Code, perr.Message)
	}
}

func TestEndToEndTransportError(t *testing.T) {
	srv := arithServer()
	url := srv.URL
	srv.Close()

	arith := newArithClient(t, url)

	_, err := arith.Add(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("expect transport failure against closed server")
	}

	var cerr *client.Error[*httptransport.Error]
	if !errors.As(err, &cerr) {
		t.Fatalf("expect *client.Error, got %T", err)
	}
	if cerr.Kind() != client.KindTransport {
		t.Fatalf("expect transport kind, got %s", cerr.Kind())
	}
	terr, ok := cerr.Transport()
	if !ok || terr == nil {
		t.Fatal("expect the concrete transport error to be preserved")
	}
}

func TestEndToEndStaleID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Answer for a call nobody made.
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":4242,"result":0}`)
	}))
	defer srv.Close()

	arith := newArithClient(t, srv.URL)

	_, err := arith.Add(context.Background(), 1, 2)
	if !errors.Is(err, client.ErrIDMismatch) {
		t.Fatalf("expect id mismatch, got %v", err)
	}
}
