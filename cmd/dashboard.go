package cmd

import (
	"reliefctl/internal/app"

	"github.com/spf13/cobra"
)

var dashboardAs string

// dashboardCmd logs in and opens the dashboard matching the user type.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Log in and open the matching interactive dashboard",
	Long: `Logs in with the configured name and password and opens the
government dashboard for government users or the public dashboard otherwise.

Credentials come from --name/--password, RELIEFCTL_NAME/RELIEFCTL_PASSWORD
or session.name in the configuration file. Public users need only a name.
Use --as to force a view.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := app.ParseDashboardChoice(dashboardAs)
		if err != nil {
			return err
		}
		return runDashboard(cmd, choice)
	},
}

// govCmd opens the government dashboard directly.
var govCmd = &cobra.Command{
	Use:   "gov",
	Short: "Open the government dashboard",
	Long: `Opens the government dashboard with tabs for the supply inventory,
adding supplies, disaster reports and aid centres. A session is opened first
when a name or password is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, app.DashboardGovernment)
	},
}

// publicCmd opens the public dashboard directly.
var publicCmd = &cobra.Command{
	Use:   "public",
	Short: "Open the public dashboard",
	Long: `Opens the public dashboard with tabs for filing a disaster report,
requesting aid, listing help stations and mental-health support. A session is
opened first when a name or password is configured, so reports and aid
requests carry the user's name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, app.DashboardPublic)
	},
}

func runDashboard(cmd *cobra.Command, choice app.DashboardChoice) error {
	application, err := newApplication(cmd, choice)
	if err != nil {
		return err
	}
	return application.Run(commandContext(cmd))
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(govCmd)
	rootCmd.AddCommand(publicCmd)

	dashboardCmd.Flags().StringVar(&dashboardAs, "as", string(app.DashboardAuto), "Dashboard to open (auto, gov, public)")
}
