// Package config provides configuration management for reliefctl.
//
// Configuration is loaded and merged in the following order, later layers
// overriding earlier ones:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. User configuration (~/.config/reliefctl/config.yaml)
//  3. Project configuration (./.reliefctl/config.yaml)
//  4. An explicit file passed with --config
//  5. Environment variables (RELIEFCTL_BASE_URL, RELIEFCTL_NAME,
//     RELIEFCTL_PASSWORD, RELIEFCTL_LOG_LEVEL)
//
// Command line flags are applied by the cmd package on top of the result.
//
// # Configuration Structure
//
//	backend:
//	  baseURL: "http://localhost:5000"
//	  timeout: 10s
//	  userAgent: "reliefctl"
//	session:
//	  name: "Field Team 3"
//	ui:
//	  colorMode: "auto"      # auto, dark, light or none
//	  noticeTimeout: 4s
//	  confirmDeletes: true
//	logging:
//	  level: "info"
//	update:
//	  repository: "reliefctl/reliefctl"
//
// The login password is deliberately not part of the YAML schema.
package config
