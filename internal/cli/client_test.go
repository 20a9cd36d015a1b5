package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"reliefctl/internal/api"
	"reliefctl/internal/api/tools"
	"reliefctl/internal/mcpserver"
	"reliefctl/internal/testing/fakeapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConnectedClient serves the government and public tools in-process over
// a fake backend.
func newConnectedClient(t *testing.T) (*CLIClient, *fakeapi.Server) {
	t.Helper()
	backend := fakeapi.New()
	t.Cleanup(backend.Close)

	c, err := api.NewClient(api.Options{BaseURL: backend.URL})
	require.NoError(t, err)
	srv := mcpserver.NewServer(mcpserver.Config{}, tools.NewReliefTools(c, c), "test")

	client := NewInProcessCLIClient(srv.MCPServer())
	require.NoError(t, client.Connect(context.Background()))
	t.Cleanup(func() { client.Close() })
	return client, backend
}

func TestNewCLIClientWithEndpoint(t *testing.T) {
	endpoint := "http://localhost:8090/mcp"
	client := NewCLIClientWithEndpoint(endpoint)

	assert.NotNil(t, client)
	assert.Equal(t, endpoint, client.endpoint)
	assert.Equal(t, 30*time.Second, client.timeout)
}

func TestCLIClient_SetTimeout(t *testing.T) {
	client := NewCLIClientWithEndpoint("http://localhost:8090/mcp")
	client.SetTimeout(0)
	assert.Equal(t, 30*time.Second, client.timeout)
	client.SetTimeout(time.Second)
	assert.Equal(t, time.Second, client.timeout)
}

func TestCLIClient_ConnectWithoutServer(t *testing.T) {
	client := &CLIClient{timeout: defaultTimeout}
	err := client.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no MCP server configured")
}

func TestCLIClient_CallToolNotConnected(t *testing.T) {
	client := NewCLIClientWithEndpoint("http://localhost:8090/mcp")
	_, err := client.CallTool(context.Background(), "inventory_list", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not connected")
}

func TestCLIClient_CallToolSimple(t *testing.T) {
	client, backend := newConnectedClient(t)
	backend.Stations = []string{"Camp A"}

	out, err := client.CallToolSimple(context.Background(), "station_delete", map[string]interface{}{"name": "Camp A"})
	require.NoError(t, err)
	assert.Equal(t, "Deleted aid centre 'Camp A'", out)
}

func TestCLIClient_CallToolSimpleToolError(t *testing.T) {
	client, backend := newConnectedClient(t)
	backend.Fail("/api/add-station", fakeapi.Failure{Status: http.StatusBadRequest, Message: "Station already exists."})

	_, err := client.CallToolSimple(context.Background(), "station_add", map[string]interface{}{"name": "Camp A"})
	require.Error(t, err)
	assert.Equal(t, "Station already exists.", err.Error())
}

func TestCLIClient_CallToolJSON(t *testing.T) {
	client, backend := newConnectedClient(t)
	backend.Stations = []string{"Camp A", "Camp B"}

	data, err := client.CallToolJSON(context.Background(), "stations_list", nil)
	require.NoError(t, err)

	obj, ok := data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), obj["total"])
}

func TestCLIClient_Close(t *testing.T) {
	client, _ := newConnectedClient(t)
	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())

	_, err := client.CallTool(context.Background(), "inventory_list", nil)
	assert.Error(t, err)
}

func newExecutor(t *testing.T, format OutputFormat, quiet bool) (*ToolExecutor, *fakeapi.Server, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	client, backend := newConnectedClient(t)
	var out, errOut bytes.Buffer
	e := NewToolExecutor(client, ExecutorOptions{Format: format, Quiet: quiet, Out: &out, ErrOut: &errOut})
	return e, backend, &out, &errOut
}
