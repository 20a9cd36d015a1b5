package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var getFlags toolFlags

// getResources maps the resource names accepted by 'get' to list tools.
var getResources = map[string]string{
	"inventory":     "inventory_list",
	"reports":       "reports_list",
	"stations":      "stations_list",
	"supplies":      "supplies_list",
	"help-stations": "help_stations_list",
	"mental-health": "mental_health_check",
}

func resourceNames() []string {
	names := make([]string, 0, len(getResources))
	for name := range getResources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getCmd lists a relief resource
var getCmd = &cobra.Command{
	Use:   "get <resource>",
	Short: "List a relief resource",
	Long: `List a relief resource from the backend.

Resources:
  inventory      - Government supply inventory
  reports        - Filed disaster reports, with the reference used by delete-report
  stations       - Aid centres managed by government users
  supplies       - Supplies the public can request
  help-stations  - Help stations shown to the public
  mental-health  - Availability of mental-health support`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: resourceNames(),
	RunE:      runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	resource := strings.ToLower(args[0])
	tool, ok := getResources[resource]
	if !ok {
		return fmt.Errorf("unknown resource %q (use one of: %s)", args[0], strings.Join(resourceNames(), ", "))
	}
	return runTool(cmd, &getFlags, tool, nil)
}

func init() {
	rootCmd.AddCommand(getCmd)
	getFlags.register(getCmd, false)
}
