package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use table, json or yaml)", s)
	}
}

// ToolError is a failure reported by the tool itself. Its message has
// already been written to ErrOut.
type ToolError struct {
	Message string
}

func (e *ToolError) Error() string { return e.Message }

// ExecutorOptions contains options for tool execution
type ExecutorOptions struct {
	Format OutputFormat
	Quiet  bool
	Out    io.Writer
	ErrOut io.Writer
}

// ToolExecutor provides high-level tool execution functionality
type ToolExecutor struct {
	client  *CLIClient
	options ExecutorOptions
}

// NewToolExecutor creates a new tool executor
func NewToolExecutor(client *CLIClient, options ExecutorOptions) *ToolExecutor {
	if options.Format == "" {
		options.Format = OutputFormatTable
	}
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.ErrOut == nil {
		options.ErrOut = os.Stderr
	}
	return &ToolExecutor{
		client:  client,
		options: options,
	}
}

// Connect establishes connection to the MCP server
func (e *ToolExecutor) Connect(ctx context.Context) error {
	return e.client.Connect(ctx)
}

// Close closes the connection
func (e *ToolExecutor) Close() error {
	return e.client.Close()
}

// Execute executes a tool and formats the output
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, arguments map[string]interface{}) error {
	result, err := e.client.CallTool(ctx, toolName, arguments)
	if err != nil {
		return fmt.Errorf("failed to execute tool %s: %w", toolName, err)
	}

	if result.IsError {
		return e.formatError(result)
	}

	return e.formatOutput(result)
}

// ExecuteJSON executes a tool and returns the result as parsed JSON
func (e *ToolExecutor) ExecuteJSON(ctx context.Context, toolName string, args map[string]interface{}) (interface{}, error) {
	return e.client.CallToolJSON(ctx, toolName, args)
}

// formatError formats error output
func (e *ToolExecutor) formatError(result *mcp.CallToolResult) error {
	errorMsg := strings.Join(resultTexts(result), "\n")
	fmt.Fprintf(e.options.ErrOut, "Error: %s\n", errorMsg)
	return &ToolError{Message: errorMsg}
}

// formatOutput formats the tool output according to the specified format
func (e *ToolExecutor) formatOutput(result *mcp.CallToolResult) error {
	texts := resultTexts(result)
	if len(texts) == 0 {
		if !e.options.Quiet {
			fmt.Fprintln(e.options.Out, "No results")
		}
		return nil
	}
	body := texts[0]

	// Plain confirmations from mutation tools
	if !json.Valid([]byte(body)) {
		if !e.options.Quiet {
			fmt.Fprintln(e.options.Out, body)
		}
		return nil
	}

	switch e.options.Format {
	case OutputFormatJSON:
		fmt.Fprintln(e.options.Out, body)
		return nil
	case OutputFormatYAML:
		return e.outputYAML(body)
	case OutputFormatTable:
		return e.outputTable(body)
	default:
		return fmt.Errorf("unsupported output format: %s", e.options.Format)
	}
}

// Render writes v in the configured format.
func (e *ToolExecutor) Render(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	switch e.options.Format {
	case OutputFormatJSON:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(e.options.Out, string(pretty))
		return nil
	case OutputFormatYAML:
		return e.outputYAML(string(data))
	default:
		return e.outputTable(string(data))
	}
}

// outputYAML converts JSON to YAML and prints it
func (e *ToolExecutor) outputYAML(jsonData string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}

	fmt.Fprint(e.options.Out, string(yamlData))
	return nil
}

// outputTable formats data as a table
func (e *ToolExecutor) outputTable(jsonData string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		fmt.Fprintln(e.options.Out, jsonData)
		return nil
	}

	switch d := data.(type) {
	case map[string]interface{}:
		return e.formatTableFromObject(d)
	case []interface{}:
		return e.formatTableFromArray("", d)
	default:
		fmt.Fprintln(e.options.Out, jsonData)
		return nil
	}
}

// formatTableFromObject handles object data that might contain arrays
func (e *ToolExecutor) formatTableFromObject(data map[string]interface{}) error {
	// Wrapped lists look like {"inventory": [...], "total": N}
	arrayKey := e.findArrayKey(data)
	if arrayKey != "" {
		arr := data[arrayKey].([]interface{})
		if err := e.formatTableFromArray(arrayKey, arr); err != nil {
			return err
		}
		if total, ok := data["total"]; ok && len(arr) > 0 {
			fmt.Fprintf(e.options.Out, "\n%s %v %s\n",
				text.FgHiBlue.Sprint("Total:"),
				text.FgHiWhite.Sprint(total),
				e.pluralize(resourceNoun(arrayKey)))
		}
		return nil
	}

	return e.formatKeyValueTable(data)
}

// findArrayKey looks for the known collection keys in wrapped objects
func (e *ToolExecutor) findArrayKey(data map[string]interface{}) string {
	arrayKeys := []string{"inventory", "reports", "stations", "help_stations", "supplies", "resources", "items", "results"}

	for _, key := range arrayKeys {
		if value, exists := data[key]; exists {
			if _, isArray := value.([]interface{}); isArray {
				return key
			}
		}
	}
	return ""
}

// emptyMessages mirror the dashboard empty states.
var emptyMessages = map[string]string{
	"inventory":     "No supplies in inventory.",
	"reports":       "No reports filed yet.",
	"stations":      "No aid centres registered.",
	"help_stations": "No help stations registered yet.",
	"supplies":      "No supplies available at this time.",
}

// formatTableFromArray creates a table from an array of objects
func (e *ToolExecutor) formatTableFromArray(resource string, data []interface{}) error {
	if len(data) == 0 {
		msg, ok := emptyMessages[resource]
		if !ok {
			msg = "No items found"
		}
		fmt.Fprintln(e.options.Out, text.FgYellow.Sprint(msg))
		return nil
	}

	firstObj, ok := data[0].(map[string]interface{})
	if !ok {
		return e.formatSimpleList(resource, data)
	}

	columns := e.optimizeColumns(resource, firstObj)

	t := e.newTable()
	headers := make(table.Row, len(columns))
	for i, col := range columns {
		headers[i] = text.FgHiCyan.Sprint(strings.ToUpper(col))
	}
	t.AppendHeader(headers)

	for _, item := range data {
		if itemMap, ok := item.(map[string]interface{}); ok {
			row := make(table.Row, len(columns))
			for i, col := range columns {
				row[i] = e.formatCellValue(col, itemMap[col])
			}
			t.AppendRow(row)
		}
	}

	t.Render()
	return nil
}

func (e *ToolExecutor) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(e.options.Out)
	t.SetStyle(table.StyleRounded)
	return t
}

// optimizeColumns picks and orders the columns for a resource
func (e *ToolExecutor) optimizeColumns(resource string, sample map[string]interface{}) []string {
	var allKeys []string
	for key := range sample {
		allKeys = append(allKeys, key)
	}
	sort.Strings(allKeys)

	priorityColumns := map[string][]string{
		"inventory": {"name", "quantity", "unit"},
		"supplies":  {"name", "quantity", "unit"},
		"reports":   {"ref", "disaster_type", "name", "timestamp", "details"},
		"resources": {"resource", "total", "error"},
	}

	if priorities, exists := priorityColumns[resource]; exists {
		var columns []string
		for _, col := range priorities {
			if e.keyExists(sample, col) {
				columns = append(columns, col)
			}
		}
		return columns
	}

	// Default: use first 5 keys to avoid wrapping
	if len(allKeys) > 5 {
		return allKeys[:5]
	}
	return allKeys
}

// formatCellValue formats individual cell values with appropriate styling
func (e *ToolExecutor) formatCellValue(column string, value interface{}) interface{} {
	if value == nil {
		return text.FgHiBlack.Sprint("-")
	}

	strValue := fmt.Sprintf("%v", value)

	switch strings.ToLower(column) {
	case "available", "configured":
		return e.formatAvailableStatus(value)
	case "disaster_type":
		return text.FgCyan.Sprint(strValue)
	case "details":
		return e.formatDescription(strValue)
	case "error":
		if strValue == "" {
			return text.FgHiBlack.Sprint("-")
		}
		return text.FgRed.Sprint(strValue)
	case "unit":
		if strValue == "" {
			return text.FgHiBlack.Sprint("units")
		}
		return strValue
	default:
		return runewidth.Truncate(strValue, 30, "...")
	}
}

// formatAvailableStatus formats boolean availability
func (e *ToolExecutor) formatAvailableStatus(value interface{}) interface{} {
	switch v := value.(type) {
	case bool:
		if v {
			return text.FgGreen.Sprint("✅ Yes")
		}
		return text.FgRed.Sprint("❌ No")
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatDescription truncates long free text by display width
func (e *ToolExecutor) formatDescription(desc string) interface{} {
	if runewidth.StringWidth(desc) <= 50 {
		return desc
	}
	return runewidth.Truncate(desc, 45, "") + text.FgHiBlack.Sprint("...")
}

// formatKeyValueTable formats an object as key-value pairs
func (e *ToolExecutor) formatKeyValueTable(data map[string]interface{}) error {
	t := e.newTable()
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("PROPERTY"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	var keys []string
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		t.AppendRow(table.Row{
			text.FgYellow.Sprint(key),
			e.formatCellValue(key, data[key]),
		})
	}

	t.Render()
	return nil
}

// formatSimpleList formats an array of simple values as a one-column table
func (e *ToolExecutor) formatSimpleList(resource string, data []interface{}) error {
	header := "NAME"
	if resource != "" && resource != "stations" && resource != "help_stations" {
		header = strings.ToUpper(resourceNoun(resource))
	}
	t := e.newTable()
	t.AppendHeader(table.Row{text.FgHiCyan.Sprint(header)})
	for _, item := range data {
		t.AppendRow(table.Row{fmt.Sprintf("%v", item)})
	}
	t.Render()
	return nil
}

func (e *ToolExecutor) keyExists(data map[string]interface{}, key string) bool {
	_, exists := data[key]
	return exists
}

func (e *ToolExecutor) pluralize(word string) string {
	if strings.HasSuffix(word, "s") {
		return word
	}
	return word + "s"
}

// resourceNoun names one entry of a wrapped collection.
func resourceNoun(key string) string {
	switch key {
	case "inventory":
		return "supply lines"
	case "stations":
		return "aid centre"
	case "help_stations":
		return "help station"
	case "supplies":
		return "supplies"
	case "reports":
		return "report"
	default:
		return key
	}
}
