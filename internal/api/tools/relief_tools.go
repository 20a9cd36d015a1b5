package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"reliefctl/internal/api"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ReliefTools provides MCP tools backed by the relief API.
type ReliefTools struct {
	gov    api.GovernmentAPI
	public api.PublicAPI
}

// NewReliefTools creates the tool set. Either API may be nil, in which case
// its tools are not offered.
func NewReliefTools(gov api.GovernmentAPI, public api.PublicAPI) *ReliefTools {
	return &ReliefTools{gov: gov, public: public}
}

// GetTools returns the definitions of every offered tool.
func (rt *ReliefTools) GetTools() []mcp.Tool {
	var tools []mcp.Tool
	for _, st := range rt.ServerTools() {
		tools = append(tools, st.Tool)
	}
	return tools
}

// ServerTools pairs each offered tool with its handler.
func (rt *ReliefTools) ServerTools() []server.ServerTool {
	var out []server.ServerTool
	if rt.gov != nil {
		out = append(out, rt.governmentTools()...)
	}
	if rt.public != nil {
		out = append(out, rt.publicTools()...)
	}
	return out
}

// Government tools
func (rt *ReliefTools) governmentTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("inventory_list",
				mcp.WithDescription("List the government supply inventory"),
			),
			Handler: rt.HandleInventoryList,
		},
		{
			Tool: mcp.NewTool("reports_list",
				mcp.WithDescription("List filed disaster reports with the reference used to delete them"),
			),
			Handler: rt.HandleReportsList,
		},
		{
			Tool: mcp.NewTool("stations_list",
				mcp.WithDescription("List registered aid centres"),
			),
			Handler: rt.HandleStationsList,
		},
		{
			Tool: mcp.NewTool("supply_add",
				mcp.WithDescription("Add supplies to the inventory"),
				mcp.WithString("supply",
					mcp.Required(),
					mcp.Description("Supply name"),
				),
				mcp.WithNumber("quantity",
					mcp.Required(),
					mcp.Description("Quantity to add"),
				),
			),
			Handler: rt.HandleSupplyAdd,
		},
		{
			Tool: mcp.NewTool("station_add",
				mcp.WithDescription("Register an aid centre"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Aid centre name"),
				),
			),
			Handler: rt.HandleStationAdd,
		},
		{
			Tool: mcp.NewTool("station_delete",
				mcp.WithDescription("Remove an aid centre"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Aid centre name"),
				),
			),
			Handler: rt.HandleStationDelete,
		},
		{
			Tool: mcp.NewTool("report_delete",
				mcp.WithDescription("Delete a disaster report"),
				mcp.WithString("ref",
					mcp.Required(),
					mcp.Description("Report reference as listed by reports_list"),
				),
			),
			Handler: rt.HandleReportDelete,
		},
	}
}

// Public tools
func (rt *ReliefTools) publicTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("supplies_list",
				mcp.WithDescription("List supplies available to request"),
			),
			Handler: rt.HandleSuppliesList,
		},
		{
			Tool: mcp.NewTool("help_stations_list",
				mcp.WithDescription("List help stations"),
			),
			Handler: rt.HandleHelpStationsList,
		},
		{
			Tool: mcp.NewTool("aid_request",
				mcp.WithDescription("Request an available supply"),
				mcp.WithString("supply",
					mcp.Required(),
					mcp.Description("Supply name as listed by supplies_list"),
				),
				mcp.WithNumber("quantity",
					mcp.Required(),
					mcp.Description("Quantity, between 1 and the available amount"),
				),
			),
			Handler: rt.HandleAidRequest,
		},
		{
			Tool: mcp.NewTool("report_file",
				mcp.WithDescription("File a disaster report"),
				mcp.WithString("disaster_type",
					mcp.Required(),
					mcp.Description("Kind of disaster, e.g. flood"),
				),
				mcp.WithString("details", mcp.Description("What happened")),
				mcp.WithString("address", mcp.Description("Street address")),
				mcp.WithString("city", mcp.Description("City")),
				mcp.WithString("country", mcp.Description("Country")),
			),
			Handler: rt.HandleReportFile,
		},
		{
			Tool: mcp.NewTool("mental_health_check",
				mcp.WithDescription("Report whether mental-health support is available and configured"),
			),
			Handler: rt.HandleMentalHealthCheck,
		},
	}
}

// ReportEntry is a report as returned by reports_list.
type ReportEntry struct {
	Ref          string `json:"ref"`
	DisasterType string `json:"disaster_type"`
	Name         string `json:"name"`
	Timestamp    string `json:"timestamp,omitempty"`
	Details      string `json:"details"`
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func listResult[T any](key string, items []T) *mcp.CallToolResult {
	if items == nil {
		items = []T{}
	}
	return jsonResult(map[string]interface{}{
		key:     items,
		"total": len(items),
	})
}

// requireQuantity reads a whole-number quantity argument. JSON numbers arrive
// as float64, so fractions are rejected rather than truncated.
func requireQuantity(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	q, err := req.RequireFloat("quantity")
	if err != nil {
		return 0, mcp.NewToolResultError("quantity is required")
	}
	if math.IsInf(q, 0) || q != math.Trunc(q) {
		return 0, mcp.NewToolResultError(fmt.Sprintf("quantity must be a whole number, got %v", q))
	}
	return int(q), nil
}

// backendError turns an API failure into a tool error, preferring the
// backend's own message.
func backendError(action string, err error) *mcp.CallToolResult {
	if msg, ok := api.ServerMessage(err); ok {
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err))
}

// HandleInventoryList handles the inventory_list tool call
func (rt *ReliefTools) HandleInventoryList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := rt.gov.ListInventory(ctx)
	if err != nil {
		return backendError("list inventory", err), nil
	}
	return listResult("inventory", items), nil
}

// HandleReportsList handles the reports_list tool call
func (rt *ReliefTools) HandleReportsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reports, err := rt.gov.ListReports(ctx)
	if err != nil {
		return backendError("list reports", err), nil
	}
	entries := make([]ReportEntry, 0, len(reports))
	for i, r := range reports {
		ref, _ := api.ReportRef(reports, i)
		entries = append(entries, ReportEntry{
			Ref:          ref,
			DisasterType: r.DisasterType,
			Name:         r.Name,
			Timestamp:    r.Timestamp,
			Details:      r.Details,
		})
	}
	return listResult("reports", entries), nil
}

// HandleStationsList handles the stations_list tool call
func (rt *ReliefTools) HandleStationsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := rt.gov.ListStations(ctx)
	if err != nil {
		return backendError("list aid centres", err), nil
	}
	return listResult("stations", items), nil
}

// HandleSupplyAdd handles the supply_add tool call
func (rt *ReliefTools) HandleSupplyAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	supply, err := req.RequireString("supply")
	if err != nil || strings.TrimSpace(supply) == "" {
		return mcp.NewToolResultError("supply is required"), nil
	}
	quantity, errResult := requireQuantity(req)
	if errResult != nil {
		return errResult, nil
	}
	if err := rt.gov.AddSupplies(ctx, strings.TrimSpace(supply), quantity); err != nil {
		return backendError("add supplies", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %d of '%s' to the inventory", quantity, strings.TrimSpace(supply))), nil
}

// HandleStationAdd handles the station_add tool call
func (rt *ReliefTools) HandleStationAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	name = strings.TrimSpace(name)
	if err := rt.gov.AddStation(ctx, name); err != nil {
		return backendError("add aid centre", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added aid centre '%s'", name)), nil
}

// HandleStationDelete handles the station_delete tool call
func (rt *ReliefTools) HandleStationDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	if err := rt.gov.DeleteStation(ctx, name); err != nil {
		return backendError("delete aid centre", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted aid centre '%s'", name)), nil
}

// HandleReportDelete handles the report_delete tool call
func (rt *ReliefTools) HandleReportDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("ref")
	if err != nil || strings.TrimSpace(ref) == "" {
		return mcp.NewToolResultError("ref is required"), nil
	}
	if err := rt.gov.DeleteReport(ctx, strings.TrimSpace(ref)); err != nil {
		return backendError("delete report", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted report %s", strings.TrimSpace(ref))), nil
}

// HandleSuppliesList handles the supplies_list tool call
func (rt *ReliefTools) HandleSuppliesList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := rt.public.ListAvailableSupplies(ctx)
	if err != nil {
		return backendError("list supplies", err), nil
	}
	return listResult("supplies", items), nil
}

// HandleHelpStationsList handles the help_stations_list tool call
func (rt *ReliefTools) HandleHelpStationsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := rt.public.ListHelpStations(ctx)
	if err != nil {
		return backendError("list help stations", err), nil
	}
	return listResult("help_stations", items), nil
}

// HandleAidRequest handles the aid_request tool call. The quantity is checked
// against the currently available amount before the request is sent.
func (rt *ReliefTools) HandleAidRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	supply, err := req.RequireString("supply")
	if err != nil || strings.TrimSpace(supply) == "" {
		return mcp.NewToolResultError("supply is required"), nil
	}
	supply = strings.TrimSpace(supply)
	quantity, errResult := requireQuantity(req)
	if errResult != nil {
		return errResult, nil
	}

	available, err := rt.public.ListAvailableSupplies(ctx)
	if err != nil {
		return backendError("list supplies", err), nil
	}
	// The backend stores supply names lowercased; send the listed spelling.
	max := -1
	for _, s := range available {
		if strings.EqualFold(s.Name, supply) {
			supply = s.Name
			max = s.Quantity
			break
		}
	}
	if max < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("Supply '%s' is not available", supply)), nil
	}
	if _, err := api.ValidateAidQuantity(strconv.Itoa(quantity), max); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := rt.public.RequestAid(ctx, supply, quantity)
	if err != nil {
		return backendError("request aid", err), nil
	}
	if strings.TrimSpace(msg) == "" {
		msg = fmt.Sprintf("Requested %d of '%s'", quantity, supply)
	}
	return mcp.NewToolResultText(msg), nil
}

// HandleReportFile handles the report_file tool call
func (rt *ReliefTools) HandleReportFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	disasterType, err := req.RequireString("disaster_type")
	if err != nil || strings.TrimSpace(disasterType) == "" {
		return mcp.NewToolResultError("disaster_type is required"), nil
	}
	report := api.ReportSubmission{
		DisasterType: strings.TrimSpace(disasterType),
		Details:      strings.TrimSpace(req.GetString("details", "")),
		Address:      strings.TrimSpace(req.GetString("address", "")),
		City:         strings.TrimSpace(req.GetString("city", "")),
		Country:      strings.TrimSpace(req.GetString("country", "")),
	}
	if err := rt.public.FileReport(ctx, report); err != nil {
		return backendError("file report", err), nil
	}
	return mcp.NewToolResultText("Report filed successfully"), nil
}

// HandleMentalHealthCheck handles the mental_health_check tool call
func (rt *ReliefTools) HandleMentalHealthCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := rt.public.CheckMentalHealth(ctx)
	if err != nil {
		return backendError("check mental health support", err), nil
	}
	return jsonResult(status), nil
}
