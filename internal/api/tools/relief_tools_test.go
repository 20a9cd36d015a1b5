package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"reliefctl/internal/api"
	"reliefctl/internal/testing/fakeapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTools(t *testing.T) (*ReliefTools, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	c, err := api.NewClient(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	return NewReliefTools(c, c), srv
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	if args == nil {
		args = map[string]interface{}{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestGetTools(t *testing.T) {
	rt := NewReliefTools(nil, nil)
	assert.Empty(t, rt.GetTools())

	tools, _ := newTestTools(t)
	toolNames := make(map[string]bool)
	for _, tool := range tools.GetTools() {
		toolNames[tool.Name] = true
	}
	assert.Len(t, toolNames, 12)

	// Government tools
	assert.True(t, toolNames["inventory_list"])
	assert.True(t, toolNames["reports_list"])
	assert.True(t, toolNames["stations_list"])
	assert.True(t, toolNames["supply_add"])
	assert.True(t, toolNames["station_add"])
	assert.True(t, toolNames["station_delete"])
	assert.True(t, toolNames["report_delete"])

	// Public tools
	assert.True(t, toolNames["supplies_list"])
	assert.True(t, toolNames["help_stations_list"])
	assert.True(t, toolNames["aid_request"])
	assert.True(t, toolNames["report_file"])
	assert.True(t, toolNames["mental_health_check"])
}

func TestServerTools_HaveHandlers(t *testing.T) {
	rt, _ := newTestTools(t)
	for _, st := range rt.ServerTools() {
		assert.NotNil(t, st.Handler, st.Tool.Name)
		assert.NotEmpty(t, st.Tool.Description, st.Tool.Name)
	}
}

func TestHandleInventoryList(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Inventory = []api.Supply{{Name: "WATER", Quantity: 12, Unit: "litres"}, {Name: "BLANKETS", Quantity: 3}}

	result, err := rt.HandleInventoryList(context.Background(), callRequest("inventory_list", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var out struct {
		Inventory []api.Supply `json:"inventory"`
		Total     int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, srv.Inventory, out.Inventory)
}

func TestHandleInventoryList_EmptyIsArray(t *testing.T) {
	rt, _ := newTestTools(t)

	result, err := rt.HandleInventoryList(context.Background(), callRequest("inventory_list", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"inventory": [], "total": 0}`, resultText(t, result))
}

func TestHandleReportsList_IncludesRefs(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Reports = []api.Report{
		{DisasterType: "FLOOD", Name: "Ann", Details: "river"},
		{ID: "r-9", DisasterType: "FIRE", Name: "Ben", Details: "forest"},
	}

	result, err := rt.HandleReportsList(context.Background(), callRequest("reports_list", nil))
	require.NoError(t, err)

	var out struct {
		Reports []ReportEntry `json:"reports"`
		Total   int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	require.Len(t, out.Reports, 2)
	assert.Equal(t, "1", out.Reports[0].Ref)
	assert.Equal(t, "r-9", out.Reports[1].Ref)
	assert.Equal(t, "FIRE", out.Reports[1].DisasterType)
}

func TestHandleHelpStationsList(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Stations = []string{"Camp A", "Camp B"}

	result, err := rt.HandleHelpStationsList(context.Background(), callRequest("help_stations_list", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.JSONEq(t, `{"help_stations": ["Camp A", "Camp B"], "total": 2}`, resultText(t, result))
}

func TestHandleStationsList_BackendFailure(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Fail("/api/stations", fakeapi.Failure{Status: http.StatusInternalServerError})

	result, err := rt.HandleStationsList(context.Background(), callRequest("stations_list", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Failed to list aid centres")
}

func TestHandleSupplyAdd(t *testing.T) {
	rt, srv := newTestTools(t)

	result, err := rt.HandleSupplyAdd(context.Background(), callRequest("supply_add", map[string]interface{}{
		"supply":   "WATER",
		"quantity": float64(5),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Added 5 of 'WATER' to the inventory", resultText(t, result))
	require.Len(t, srv.CallsTo("/api/add-supplies"), 1)
	assert.JSONEq(t, `{"supply":"WATER","quantity":5}`, srv.CallsTo("/api/add-supplies")[0].Body)
}

func TestHandleSupplyAdd_MissingArguments(t *testing.T) {
	rt, srv := newTestTools(t)

	result, err := rt.HandleSupplyAdd(context.Background(), callRequest("supply_add", map[string]interface{}{
		"quantity": float64(5),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "supply is required")

	result, err = rt.HandleSupplyAdd(context.Background(), callRequest("supply_add", map[string]interface{}{
		"supply": "WATER",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "quantity is required")
	assert.Empty(t, srv.CallsTo("/api/add-supplies"))
}

func TestHandleStationAdd_ServerMessage(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Stations = []string{"Camp A"}

	result, err := rt.HandleStationAdd(context.Background(), callRequest("station_add", map[string]interface{}{
		"name": "Camp A",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Station already exists.", resultText(t, result))
}

func TestHandleStationDelete(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Stations = []string{"Camp A", "Camp B"}

	result, err := rt.HandleStationDelete(context.Background(), callRequest("station_delete", map[string]interface{}{
		"name": "Camp A",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, []string{"Camp B"}, srv.Stations)
}

func TestHandleReportDelete(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Reports = []api.Report{{DisasterType: "FLOOD"}, {DisasterType: "FIRE"}}

	result, err := rt.HandleReportDelete(context.Background(), callRequest("report_delete", map[string]interface{}{
		"ref": "2",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Deleted report 2", resultText(t, result))
	require.Len(t, srv.Reports, 1)
	assert.Equal(t, "FLOOD", srv.Reports[0].DisasterType)
}

func TestHandleAidRequest(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Available = []api.Supply{{Name: "WATER", Quantity: 5, Unit: "bottles"}}

	result, err := rt.HandleAidRequest(context.Background(), callRequest("aid_request", map[string]interface{}{
		"supply":   "WATER",
		"quantity": float64(2),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Truck 1 dispatched.", resultText(t, result))
	require.Len(t, srv.CallsTo("/api/request-aid"), 1)
}

func TestHandleAidRequest_MatchesSupplyIgnoringCase(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Available = []api.Supply{{Name: "water", Quantity: 5}}

	result, err := rt.HandleAidRequest(context.Background(), callRequest("aid_request", map[string]interface{}{
		"supply":   "Water",
		"quantity": float64(2),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError, resultText(t, result))

	calls := srv.CallsTo("/api/request-aid")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"supply":"water","quantity":2}`, calls[0].Body)
	assert.Equal(t, 3, srv.Available[0].Quantity)
}

func TestQuantityMustBeWholeNumber(t *testing.T) {
	rt, srv := newTestTools(t)
	srv.Available = []api.Supply{{Name: "WATER", Quantity: 5}}
	ctx := context.Background()

	result, err := rt.HandleAidRequest(ctx, callRequest("aid_request", map[string]interface{}{
		"supply":   "WATER",
		"quantity": 2.7,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "quantity must be a whole number, got 2.7", resultText(t, result))

	result, err = rt.HandleSupplyAdd(ctx, callRequest("supply_add", map[string]interface{}{
		"supply":   "WATER",
		"quantity": "1.5",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "quantity must be a whole number, got 1.5", resultText(t, result))

	assert.Empty(t, srv.CallsTo("/api/request-aid"))
	assert.Empty(t, srv.CallsTo("/api/add-supplies"))
}

func TestHandleAidRequest_QuantityOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		quantity interface{}
	}{
		{name: "zero", quantity: float64(0)},
		{name: "above available", quantity: float64(6)},
		{name: "negative", quantity: float64(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, srv := newTestTools(t)
			srv.Available = []api.Supply{{Name: "WATER", Quantity: 5}}

			result, err := rt.HandleAidRequest(context.Background(), callRequest("aid_request", map[string]interface{}{
				"supply":   "WATER",
				"quantity": tt.quantity,
			}))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, "Please enter a valid quantity (1-5).", resultText(t, result))
			assert.Empty(t, srv.CallsTo("/api/request-aid"))
		})
	}
}

func TestHandleAidRequest_UnknownSupply(t *testing.T) {
	rt, srv := newTestTools(t)

	result, err := rt.HandleAidRequest(context.Background(), callRequest("aid_request", map[string]interface{}{
		"supply":   "TENTS",
		"quantity": float64(1),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Supply 'TENTS' is not available", resultText(t, result))
	assert.Empty(t, srv.CallsTo("/api/request-aid"))
}

func TestHandleReportFile(t *testing.T) {
	rt, srv := newTestTools(t)

	result, err := rt.HandleReportFile(context.Background(), callRequest("report_file", map[string]interface{}{
		"disaster_type": " flood ",
		"details":       "river burst",
		"city":          "Leeds",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	calls := srv.CallsTo("/api/file-report")
	require.Len(t, calls, 1)
	assert.JSONEq(t,
		`{"disaster_type":"flood","details":"river burst","address":"","city":"Leeds","country":""}`,
		calls[0].Body)
}

func TestHandleReportFile_RequiresType(t *testing.T) {
	rt, srv := newTestTools(t)

	result, err := rt.HandleReportFile(context.Background(), callRequest("report_file", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Empty(t, srv.CallsTo("/api/file-report"))
}

func TestHandleMentalHealthCheck(t *testing.T) {
	rt, _ := newTestTools(t)

	result, err := rt.HandleMentalHealthCheck(context.Background(), callRequest("mental_health_check", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"available": true, "configured": false}`, resultText(t, result))
}
