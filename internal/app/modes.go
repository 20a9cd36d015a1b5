package app

import (
	"context"
	"fmt"

	"reliefctl/internal/api"
	"reliefctl/internal/cli"
	"reliefctl/internal/mcpserver"
	"reliefctl/internal/tui/controller"
	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/model"
	"reliefctl/pkg/logging"
)

// resolveDashboard maps the selector and the session's user type to a view.
func resolveDashboard(choice DashboardChoice, loggedIn bool, userType api.UserType) (model.Dashboard, error) {
	switch choice {
	case DashboardGovernment:
		return model.DashboardGovernment, nil
	case DashboardPublic:
		return model.DashboardPublic, nil
	case DashboardAuto, "":
		if !loggedIn {
			return 0, fmt.Errorf("cannot pick a dashboard without logging in")
		}
		if userType == api.UserTypeGovernment {
			return model.DashboardGovernment, nil
		}
		return model.DashboardPublic, nil
	default:
		return 0, fmt.Errorf("unknown dashboard %q", choice)
	}
}

// runTUIMode executes the interactive terminal UI mode
func runTUIMode(ctx context.Context, config *Config, services *Services) error {
	rc := config.ReliefConfig

	var err error
	if config.Dashboard == DashboardAuto || config.Dashboard == "" {
		err = services.Login(ctx, rc.Session.Name, rc.Session.Password)
	} else {
		err = services.LoginIfConfigured(ctx, config)
	}
	if err != nil {
		return err
	}

	kind, err := resolveDashboard(config.Dashboard, services.LoggedIn, services.UserType)
	if err != nil {
		return err
	}

	logging.Info("CLI", "Starting %s...", kind)
	design.Initialize(string(rc.UI.ColorMode))

	// Switch logging to channel-based system for TUI integration
	logLevel, err := logging.ParseLevel(rc.Logging.Level)
	if err != nil {
		logLevel = logging.LevelInfo
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	p, err := controller.NewProgram(model.Options{
		Kind:           kind,
		UserName:       rc.Session.Name,
		Gov:            services.Client,
		Public:         services.Client,
		Ctx:            ctx,
		DebugMode:      config.Debug,
		ConfirmDeletes: rc.UI.ShouldConfirmDeletes(),
		NoticeTimeout:  rc.UI.NoticeTimeout,
		RequestTimeout: rc.Backend.Timeout,
		LogChannel:     logChan,
	})
	if err != nil {
		logging.Error("TUI-Lifecycle", err, "Error creating TUI program")
		return err
	}

	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")

	return nil
}

// NewToolExecutor returns a connected executor. With an endpoint it talks to
// a running reliefctl MCP server; otherwise it logs in when credentials are
// configured and serves the tools in-process.
func (a *Application) NewToolExecutor(ctx context.Context, endpoint string, opts cli.ExecutorOptions) (*cli.ToolExecutor, error) {
	var client *cli.CLIClient
	if endpoint != "" {
		client = cli.NewCLIClientWithEndpoint(endpoint)
	} else {
		if err := a.services.LoginIfConfigured(ctx, a.config); err != nil {
			return nil, err
		}
		srv := a.services.NewMCPServer(a.config, mcpserver.Config{Transport: mcpserver.TransportStdio})
		client = cli.NewInProcessCLIClient(srv.MCPServer())
	}
	client.SetTimeout(a.config.ReliefConfig.Backend.Timeout * 3)

	executor := cli.NewToolExecutor(client, opts)
	if err := executor.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server: %w", err)
	}
	return executor, nil
}

// ServeMCP logs in when credentials are configured and serves the tools
// until ctx is done.
func (a *Application) ServeMCP(ctx context.Context, serverCfg mcpserver.Config) error {
	if err := a.services.LoginIfConfigured(ctx, a.config); err != nil {
		return err
	}
	srv := a.services.NewMCPServer(a.config, serverCfg)
	if serverCfg.Transport != mcpserver.TransportStdio {
		logging.Info("MCPServer", "Serving relief tools at %s", srv.GetEndpoint())
	}
	return srv.Serve(ctx)
}
