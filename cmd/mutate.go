package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	mutateFlags toolFlags
	deleteYes   bool

	reportType    string
	reportDetails string
	reportAddress string
	reportCity    string
	reportCountry string
)

// addSupplyCmd adds supplies to the inventory
var addSupplyCmd = &cobra.Command{
	Use:   "add-supply <supply> <quantity>",
	Short: "Add supplies to the government inventory",
	Long: `Add a quantity of a supply to the government inventory.

A value starting with "-" is read as a flag; put "--" before the arguments
to pass one through, e.g. 'reliefctl add-supply -- WATER -5'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := parseQuantity(args[1])
		if err != nil {
			return err
		}
		return runTool(cmd, &mutateFlags, "supply_add", map[string]interface{}{
			"supply":   args[0],
			"quantity": quantity,
		})
	},
}

// addStationCmd registers an aid centre
var addStationCmd = &cobra.Command{
	Use:   "add-station <name>",
	Short: "Register an aid centre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, &mutateFlags, "station_add", map[string]interface{}{
			"name": args[0],
		})
	},
}

// deleteStationCmd removes an aid centre
var deleteStationCmd = &cobra.Command{
	Use:   "delete-station <name>",
	Short: "Remove an aid centre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDelete(cmd, fmt.Sprintf("Delete aid centre '%s'?", args[0])) {
			return nil
		}
		return runTool(cmd, &mutateFlags, "station_delete", map[string]interface{}{
			"name": args[0],
		})
	},
}

// deleteReportCmd deletes a disaster report
var deleteReportCmd = &cobra.Command{
	Use:   "delete-report <ref>",
	Short: "Delete a disaster report",
	Long: `Delete a disaster report by the reference shown in the REF column of
'reliefctl get reports'. When the backend assigns no ids the reference is
the report's position, which is only valid until the list changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDelete(cmd, fmt.Sprintf("Delete report %s?", args[0])) {
			return nil
		}
		return runTool(cmd, &mutateFlags, "report_delete", map[string]interface{}{
			"ref": args[0],
		})
	},
}

// requestAidCmd requests an available supply
var requestAidCmd = &cobra.Command{
	Use:   "request-aid <supply> <quantity>",
	Short: "Request an available supply",
	Long: `Request a supply listed by 'reliefctl get supplies'. The quantity must
be between 1 and the amount currently available; other values are rejected
without contacting the backend's request endpoint. Supply names are matched
without regard to case.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := parseQuantity(args[1])
		if err != nil {
			return err
		}
		return runTool(cmd, &mutateFlags, "aid_request", map[string]interface{}{
			"supply":   args[0],
			"quantity": quantity,
		})
	},
}

// fileReportCmd files a disaster report
var fileReportCmd = &cobra.Command{
	Use:   "file-report",
	Short: "File a disaster report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, &mutateFlags, "report_file", map[string]interface{}{
			"disaster_type": reportType,
			"details":       reportDetails,
			"address":       reportAddress,
			"city":          reportCity,
			"country":       reportCountry,
		})
	},
}

// quantityFlagError reports "request-aid WATER -1" as a bad quantity instead
// of pflag's "unknown shorthand flag: '1' in -1".
func quantityFlagError(cmd *cobra.Command, err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown shorthand flag") {
		return err
	}
	i := strings.LastIndex(msg, " in -")
	if i < 0 {
		return err
	}
	arg := msg[i+len(" in "):]
	if _, convErr := strconv.ParseFloat(arg, 64); convErr != nil {
		return err
	}
	return fmt.Errorf("invalid quantity %q: must be a positive whole number", arg)
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: must be a whole number", s)
	}
	return n, nil
}

// confirmDelete asks on stdin unless --yes was given.
func confirmDelete(cmd *cobra.Command, prompt string) bool {
	if deleteYes {
		return true
	}
	return askYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
}

func askYesNo(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(out, "Aborted.")
		return false
	}
}

func init() {
	mutations := []*cobra.Command{
		addSupplyCmd,
		addStationCmd,
		deleteStationCmd,
		deleteReportCmd,
		requestAidCmd,
		fileReportCmd,
	}
	for _, c := range mutations {
		rootCmd.AddCommand(c)
		mutateFlags.register(c, false)
	}

	addSupplyCmd.SetFlagErrorFunc(quantityFlagError)
	requestAidCmd.SetFlagErrorFunc(quantityFlagError)

	deleteStationCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	deleteReportCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	fileReportCmd.Flags().StringVar(&reportType, "type", "", "Kind of disaster, e.g. flood")
	fileReportCmd.Flags().StringVar(&reportDetails, "details", "", "What happened")
	fileReportCmd.Flags().StringVar(&reportAddress, "address", "", "Street address")
	fileReportCmd.Flags().StringVar(&reportCity, "city", "", "City")
	fileReportCmd.Flags().StringVar(&reportCountry, "country", "", "Country")
	_ = fileReportCmd.MarkFlagRequired("type")
}
