package app

import (
	"context"
	"fmt"
	"strings"

	"reliefctl/internal/api"
	"reliefctl/internal/api/tools"
	"reliefctl/internal/config"
	"reliefctl/internal/mcpserver"
	"reliefctl/pkg/logging"
)

// Services holds the backend client and the tool set built on it
type Services struct {
	Client   *api.Client
	Tools    *tools.ReliefTools
	UserType api.UserType
	LoggedIn bool
}

// InitializeServices creates the relief client and tool set
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.ReliefConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	backend := cfg.ReliefConfig.Backend

	client, err := api.NewClient(api.Options{
		BaseURL:   backend.BaseURL,
		Timeout:   backend.Timeout,
		UserAgent: backend.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create relief client: %w", err)
	}

	return &Services{
		Client: client,
		Tools:  tools.NewReliefTools(client, client),
	}, nil
}

// Login opens a backend session. The password may be empty: the backend
// decides the user type, and public users log in by name alone.
func (s *Services) Login(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("a user name is required to log in")
	}

	userType, err := s.Client.Login(ctx, name, password)
	if err != nil {
		if msg, ok := api.ServerMessage(err); ok {
			return fmt.Errorf("login failed: %s", msg)
		}
		return fmt.Errorf("login failed: %w", err)
	}
	s.UserType = userType
	s.LoggedIn = true
	logging.Info("Session", "Logged in as %s (%s)", name, userType)
	return nil
}

// LoginIfConfigured logs in when a password or a non-default name is
// configured and is a no-op otherwise.
func (s *Services) LoginIfConfigured(ctx context.Context, cfg *Config) error {
	session := cfg.ReliefConfig.Session
	name := strings.TrimSpace(session.Name)
	if session.Password == "" && (name == "" || name == config.DefaultSessionName) {
		logging.Debug("Session", "No credentials configured, continuing without a session")
		return nil
	}
	return s.Login(ctx, session.Name, session.Password)
}

// NewMCPServer builds an MCP server over the tool set.
func (s *Services) NewMCPServer(cfg *Config, serverCfg mcpserver.Config) *mcpserver.Server {
	return mcpserver.NewServer(serverCfg, s.Tools, cfg.Version)
}
