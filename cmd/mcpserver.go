package cmd

import (
	"fmt"

	"reliefctl/internal/mcpserver"

	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpHost      string
	mcpPort      int
)

// mcpServerCmd serves the relief tools over MCP
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Serve the relief operations as MCP tools",
	Long: `Serves the relief client operations as Model Context Protocol tools so
AI assistants can list inventory, reports, stations and supplies, and add,
delete, file or request on the user's behalf.

Transports:
  stdio            - Speak MCP on stdin/stdout (default; for editor integrations)
  streamable-http  - Listen on --host/--port at /mcp
  sse              - Listen on --host/--port at /sse

A session is opened first when a name or password is configured. Other reliefctl
commands can use a running HTTP server with --endpoint.`,
	Args: cobra.NoArgs,
	RunE: runMCPServer,
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	transport := mcpserver.Transport(mcpTransport)
	switch transport {
	case mcpserver.TransportStdio, mcpserver.TransportSSE, mcpserver.TransportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport %q (use stdio, streamable-http or sse)", mcpTransport)
	}

	application, err := newApplication(cmd, "")
	if err != nil {
		return err
	}
	return application.ServeMCP(commandContext(cmd), mcpserver.Config{
		Host:      mcpHost,
		Port:      mcpPort,
		Transport: transport,
	})
}

func init() {
	rootCmd.AddCommand(mcpServerCmd)

	mcpServerCmd.Flags().StringVar(&mcpTransport, "transport", string(mcpserver.TransportStdio), "Transport (stdio, streamable-http, sse)")
	mcpServerCmd.Flags().StringVar(&mcpHost, "host", "localhost", "Listen host for HTTP transports")
	mcpServerCmd.Flags().IntVar(&mcpPort, "port", 8090, "Listen port for HTTP transports")
}
