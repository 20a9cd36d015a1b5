package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reliefctl/internal/app"
	"reliefctl/internal/cli"

	"github.com/spf13/cobra"
)

// Global connection flags shared by every command that talks to the backend.
var (
	rootConfigPath string
	rootBaseURL    string
	rootName       string
	rootPassword   string
	rootDebug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reliefctl",
	Short: "Disaster-relief dashboards and tools for the terminal",
	Long: `reliefctl connects to a disaster-relief backend and offers two
interactive dashboards: a government view for inventory, disaster reports
and aid centres, and a public view for filing reports, requesting aid,
finding help stations and talking to mental-health support.

The same operations are available as scriptable commands and as MCP tools.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed requests)
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "reliefctl version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Tool errors were already printed by the executor
		var toolErr *cli.ToolError
		if !errors.As(err, &toolErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// newApplication builds the application from the global flags.
func newApplication(cmd *cobra.Command, dashboard app.DashboardChoice) (*app.Application, error) {
	cfg := app.NewConfig(rootConfigPath, rootDebug)
	cfg.BaseURL = rootBaseURL
	cfg.Name = rootName
	cfg.Password = rootPassword
	cfg.Version = rootCmd.Version
	if dashboard != "" {
		cfg.Dashboard = dashboard
	}

	application, err := app.NewApplication(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

// commandContext returns the command's context, defaulting to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Additional config file merged over ~/.config/reliefctl and ./.reliefctl")
	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "base-url", "", "Relief backend URL (overrides backend.baseURL)")
	rootCmd.PersistentFlags().StringVar(&rootName, "name", "", "User name to log in with")
	rootCmd.PersistentFlags().StringVar(&rootPassword, "password", "", "Password to log in with (prefer RELIEFCTL_PASSWORD)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
}
