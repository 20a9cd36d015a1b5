// Package mcpserver serves the relief tools over the Model Context Protocol.
package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"reliefctl/internal/api/tools"
	"reliefctl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const subsystem = "MCPServer"

// Transport selects how the server is exposed.
type Transport string

const (
	TransportStdio          Transport = "stdio"
	TransportSSE            Transport = "sse"
	TransportStreamableHTTP Transport = "streamable-http"
)

// Config holds the listener settings for the HTTP transports.
type Config struct {
	Host      string
	Port      int
	Transport Transport
}

// Server wraps an MCP server exposing a relief tool set.
type Server struct {
	config Config
	mcp    *server.MCPServer
	tools  *tools.ReliefTools

	mu         sync.Mutex
	sseServer  *server.SSEServer
	httpServer *server.StreamableHTTPServer
	running    bool
}

// NewServer creates a server for the given tools. version is reported to
// clients during the handshake.
func NewServer(config Config, rt *tools.ReliefTools, version string) *Server {
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 8090
	}
	if config.Transport == "" {
		config.Transport = TransportStreamableHTTP
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := server.NewMCPServer(
		"reliefctl",
		version,
		server.WithToolCapabilities(true),
	)
	mcpServer.AddTools(rt.ServerTools()...)

	return &Server{
		config: config,
		mcp:    mcpServer,
		tools:  rt,
	}
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// GetTools returns the tools the server offers.
func (s *Server) GetTools() []mcp.Tool {
	return s.tools.GetTools()
}

// Addr returns the host:port the HTTP transports listen on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// GetEndpoint returns the URL clients connect to.
func (s *Server) GetEndpoint() string {
	switch s.config.Transport {
	case TransportSSE:
		return fmt.Sprintf("http://%s/sse", s.Addr())
	case TransportStreamableHTTP:
		return fmt.Sprintf("http://%s/mcp", s.Addr())
	default:
		return ""
	}
}

// Serve runs the server until ctx is done or the listener fails. The stdio
// transport returns when stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	if s.config.Transport == TransportStdio {
		logging.Info(subsystem, "Serving %d tools over stdio", len(s.GetTools()))
		return server.ServeStdio(s.mcp)
	}

	errCh := make(chan error, 1)
	if err := s.start(errCh); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) start(errCh chan<- error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("mcp server already started")
	}

	addr := s.Addr()
	var startFn func(string) error
	switch s.config.Transport {
	case TransportSSE:
		s.sseServer = server.NewSSEServer(
			s.mcp,
			server.WithBaseURL("http://"+addr),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		startFn = s.sseServer.Start
	case TransportStreamableHTTP:
		s.httpServer = server.NewStreamableHTTPServer(s.mcp)
		startFn = s.httpServer.Start
	default:
		return fmt.Errorf("unsupported transport %q", s.config.Transport)
	}

	s.running = true
	logging.Info(subsystem, "Starting MCP server on %s (%s)", addr, s.config.Transport)
	go func() {
		if err := startFn(addr); err != nil && err != http.ErrServerClosed {
			logging.Error(subsystem, err, "MCP server error")
			errCh <- err
		}
	}()
	return nil
}

// Stop shuts the HTTP listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("mcp server not started")
	}
	sseServer, httpServer := s.sseServer, s.httpServer
	s.sseServer, s.httpServer, s.running = nil, nil, false
	s.mu.Unlock()

	logging.Info(subsystem, "Stopping MCP server")
	if sseServer != nil {
		if err := sseServer.Shutdown(ctx); err != nil {
			logging.Error(subsystem, err, "Error shutting down SSE server")
			return err
		}
	}
	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			logging.Error(subsystem, err, "Error shutting down streamable-http server")
			return err
		}
	}
	return nil
}
