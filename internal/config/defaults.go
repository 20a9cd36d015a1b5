package config

import "time"

const (
	DefaultBaseURL       = "http://localhost:5000"
	DefaultTimeout       = 10 * time.Second
	DefaultUserAgent     = "reliefctl"
	DefaultNoticeTimeout = 4 * time.Second
	DefaultRepository    = "reliefctl/reliefctl"
	DefaultSessionName   = "User"
)

// GetDefaultConfig returns the built-in configuration every layer is merged onto.
func GetDefaultConfig() ReliefConfig {
	return ReliefConfig{
		Backend: BackendConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		Session: SessionConfig{
			Name: DefaultSessionName,
		},
		UI: UIConfig{
			ColorMode:     ColorModeAuto,
			NoticeTimeout: DefaultNoticeTimeout,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Update: UpdateConfig{
			Repository: DefaultRepository,
		},
	}
}
