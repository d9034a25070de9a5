package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/srrd-research/srrd-mcp/internal/dispatcher"
	"github.com/srrd-research/srrd-mcp/internal/resolver"
)

// upgrader performs no remote-address check: it upgrades every request
// that reaches the listener. Origin checking is skipped since this is not
// a browser-facing cross-origin endpoint; the bind address itself
// (mcp_host, default 127.0.0.1) is the only boundary.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketServer listens on host:port and speaks one JSON-RPC message per
// frame to each connection. Every connection gets its own context override
// and session slot — never shared, per spec.md §4.2 and §4.9.
type WebSocketServer struct {
	Dispatcher *dispatcher.Dispatcher
	Logger     *slog.Logger

	httpServer *http.Server
}

// Serve starts listening and blocks until ctx is canceled or the listener
// fails. addr is "host:port" (e.g. "127.0.0.1:8765").
func (w *WebSocketServer) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", w.handleConn)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	w.httpServer = &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- w.httpServer.Serve(ln) }()

	select {
	case <-ctx.Done():
		w.httpServer.Close()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (w *WebSocketServer) handleConn(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		if w.Logger != nil {
			w.Logger.Warn("websocket: upgrade failed", "error", err)
		}
		return
	}
	defer conn.Close()

	override := &resolver.Override{}
	session := &resolver.SessionSlot{}
	ctx := r.Context()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return // connection closed or errored — nothing in flight survives
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var req dispatcher.Request
		if err := json.Unmarshal(data, &req); err != nil {
			w.writeError(conn, dispatcher.CodeParseError, "parse_error", "malformed JSON-RPC frame: "+err.Error())
			continue
		}

		resp := w.Dispatcher.Handle(ctx, override, session, req)
		if resp == nil {
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			if w.Logger != nil {
				w.Logger.Warn("websocket: writing reply failed", "error", err)
			}
			return
		}
	}
}

func (w *WebSocketServer) writeError(conn *websocket.Conn, code int, kind, message string) {
	resp := dispatcher.Response{
		JSONRPC: "2.0",
		Error: &dispatcher.RPCError{
			Code:    code,
			Message: message,
			Data:    dispatcher.ErrorData{Kind: kind},
		},
	}
	if err := conn.WriteJSON(resp); err != nil && w.Logger != nil {
		w.Logger.Warn("websocket: writing parse_error reply failed", "error", err)
	}
}
