package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const defaultTimeout = 30 * time.Second

// CLIClient provides a simplified MCP client for CLI commands. It talks
// either to a remote reliefctl MCP server or to one running in-process.
type CLIClient struct {
	endpoint string
	local    *server.MCPServer
	client   client.MCPClient
	timeout  time.Duration
}

// NewCLIClientWithEndpoint creates a client for a remote streamable-http endpoint
func NewCLIClientWithEndpoint(endpoint string) *CLIClient {
	return &CLIClient{
		endpoint: endpoint,
		timeout:  defaultTimeout,
	}
}

// NewInProcessCLIClient creates a client bound to srv without any transport
func NewInProcessCLIClient(srv *server.MCPServer) *CLIClient {
	return &CLIClient{
		local:   srv,
		timeout: defaultTimeout,
	}
}

// SetTimeout overrides the per-call timeout.
func (c *CLIClient) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Connect establishes the MCP session
func (c *CLIClient) Connect(ctx context.Context) error {
	var (
		mcpClient *client.Client
		err       error
		kind      string
	)
	switch {
	case c.local != nil:
		kind = "in-process"
		mcpClient, err = client.NewInProcessClient(c.local)
	case c.endpoint != "":
		kind = "streamable-http"
		mcpClient, err = client.NewStreamableHttpClient(c.endpoint)
	default:
		return fmt.Errorf("no MCP server configured")
	}
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", kind, err)
	}
	c.client = mcpClient

	if err := mcpClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start %s client: %w", kind, err)
	}

	if err := c.initialize(ctx); err != nil {
		mcpClient.Close()
		c.client = nil
		return fmt.Errorf("initialization failed: %w", err)
	}

	return nil
}

// CallTool executes a tool and returns the result
func (c *CLIClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}

	return result, nil
}

// CallToolSimple executes a tool and returns the text content as a string
func (c *CLIClient) CallToolSimple(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	result, err := c.CallTool(ctx, name, args)
	if err != nil {
		return "", err
	}

	texts := resultTexts(result)
	if result.IsError {
		return "", fmt.Errorf("%s", strings.Join(texts, "\n"))
	}
	if len(texts) == 0 {
		return "", nil
	}
	return texts[0], nil
}

// CallToolJSON executes a tool and returns the result as parsed JSON
func (c *CLIClient) CallToolJSON(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	textResult, err := c.CallToolSimple(ctx, name, args)
	if err != nil {
		return nil, err
	}

	var jsonResult interface{}
	if err := json.Unmarshal([]byte(textResult), &jsonResult); err != nil {
		// If it's not JSON, return the text as-is
		return textResult, nil
	}

	return jsonResult, nil
}

// Close closes the connection
func (c *CLIClient) Close() error {
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// initialize performs the MCP protocol handshake
func (c *CLIClient) initialize(ctx context.Context) error {
	var req mcp.InitializeRequest
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "reliefctl-cli",
		Version: "1.0.0",
	}
	req.Params.Capabilities = mcp.ClientCapabilities{}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}

func resultTexts(result *mcp.CallToolResult) []string {
	var out []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			out = append(out, textContent.Text)
		}
	}
	return out
}
