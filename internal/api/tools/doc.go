// Package tools exposes the relief client operations as MCP tools.
//
// Every list tool answers with a JSON object holding the collection under a
// resource key and a "total" count, for example:
//
//	{
//	  "help_stations": ["Camp A", "Camp B"],
//	  "total": 2
//	}
//
// Mutation tools answer with a short confirmation text. Backend failures and
// rejected arguments are reported as tool error results, never as protocol
// errors, so MCP clients can show the backend's own message.
//
// Tool Categories:
//
//   - Government: inventory_list, reports_list, stations_list, supply_add,
//     station_add, station_delete, report_delete
//   - Public: supplies_list, help_stations_list, aid_request, report_file,
//     mental_health_check
package tools
