// srrd-server: the Scientific Research Requirements & Discovery MCP server.
//
// A Model Context Protocol server that exposes Socratic questioning,
// methodology guidance, novel-theory validation, progress analytics, and
// document generation tools to a conversational research assistant.
//
// Usage:
//
//	srrd-server serve    # start the MCP server (stdio + WebSocket)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/server"
	"github.com/srrd-research/srrd-mcp/internal/transport"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("srrd-server v%s\n", server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configPath = os.Args[i+1]
		}
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	d, cleanup, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := transport.Stdio(ctx, d, os.Stdin, os.Stdout, logger); err != nil {
			errCh <- fmt.Errorf("stdio transport: %w", err)
		}
	}()

	ws := &transport.WebSocketServer{Dispatcher: d, Logger: logger}
	addr := fmt.Sprintf("%s:%d", cfg.MCPHost, cfg.MCPPort)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := ws.Serve(ctx, addr); err != nil {
			errCh <- fmt.Errorf("websocket transport: %w", err)
		}
	}()

	logger.Info("srrd-server listening", "websocket_addr", addr, "version", server.Version)

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(explicitPath string) (*config.ServerConfig, error) {
	return config.LoadServerConfig(explicitPath)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `srrd-server v%s — Scientific Research Requirements & Discovery MCP Server

Usage:
  srrd-server serve [--config path]   Start the MCP server (stdio + WebSocket)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "srrd": {
        "command": "srrd-server",
        "args": ["serve"]
      }
    }
  }

Server settings (mcp_port, mcp_host, log_level, features.*, embedding_model,
global_home_project) are read from srrd.toml (or the path given by --config
or SRRD_CONFIG), then overridden by SRRD_MCP_PORT, SRRD_LATEX_INSTALLED,
SRRD_VECTOR_DB_INSTALLED, and SRRD_PROJECT_PATH.
`, server.Version)
}
