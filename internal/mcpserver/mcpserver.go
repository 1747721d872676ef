// Package mcpserver exposes internal/booster over the Model Context
// Protocol (spec.md §6.2): apply_edit and apply_edit_batch, whose JSON
// schemas mirror EditRequest/EditResult exactly. Handlers call straight
// into the core with no additional logic, so the core's determinism and
// no-I/O guarantees extend unmodified to MCP clients.
package mcpserver

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/agent-booster/internal/booster"
)

// Server wraps a booster.Engine behind an MCP stdio server.
type Server struct {
	engine *booster.Engine
	mcp    *server.MCPServer
}

// New builds a Server around engine, registering both tools.
func New(engine *booster.Engine) *Server {
	mcpServer := server.NewMCPServer(
		"agent-booster-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddApplyEditTool(mcpServer, engine)
	AddApplyEditBatchTool(mcpServer, engine)

	return &Server{engine: engine, mcp: mcpServer}
}

// Serve blocks on stdio until the process receives SIGINT/SIGTERM or the
// transport errors out. Matches spec.md §5's note that the core defines
// no cancellation of its own — cancellation here is purely a transport
// concern, same as the CLI's watch loop.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("agent-booster-mcp: serving on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("agent-booster-mcp: shutdown signal received")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
