// Package transport adapts wire framing to the shared Dispatcher: one
// goroutine reads newline-delimited JSON from stdin (stdio transport), and
// one upgraded HTTP connection per client reads one JSON message per frame
// (WebSocket transport). Neither transport duplicates dispatch logic.
package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/srrd-research/srrd-mcp/internal/dispatcher"
	"github.com/srrd-research/srrd-mcp/internal/resolver"
)

// initialScannerBuffer and maxScannerBuffer size bufio.Scanner's buffer up
// generously: tool payloads (rendered LaTeX bodies, bibliographies) can be
// much larger than bufio's 64KiB default line limit.
const (
	initialScannerBuffer = 64 * 1024
	maxScannerBuffer     = 16 * 1024 * 1024
)

// Stdio runs the stdio transport: one JSON object per line on r, one per
// line on w. It blocks until r is exhausted (EOF, typically the host
// process closing stdin) or ctx is canceled. Each stdio session owns its
// own resolver.Override and resolver.SessionSlot — they are never shared
// with WebSocket connections.
func Stdio(ctx context.Context, d *dispatcher.Dispatcher, r io.Reader, w io.Writer, logger *slog.Logger) error {
	override := &resolver.Override{}
	session := &resolver.SessionSlot{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initialScannerBuffer), maxScannerBuffer)

	enc := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req dispatcher.Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := dispatcher.Response{
				JSONRPC: "2.0",
				Error: &dispatcher.RPCError{
					Code:    dispatcher.CodeParseError,
					Message: "malformed JSON-RPC frame: " + err.Error(),
					Data:    dispatcher.ErrorData{Kind: "parse_error"},
				},
			}
			if err := enc.Encode(resp); err != nil && logger != nil {
				logger.Warn("stdio: writing parse_error reply failed", "error", err)
			}
			continue
		}

		resp := d.Handle(ctx, override, session, req)
		if resp == nil {
			continue // notification — no reply
		}
		if err := enc.Encode(resp); err != nil {
			if logger != nil {
				logger.Warn("stdio: writing reply failed", "error", err)
			}
			return err
		}
	}

	return scanner.Err()
}
