package controller

import (
	"fmt"

	"reliefctl/internal/tui/model"
	"reliefctl/pkg/logging"
)

const controllerSubsystem = "Controller"

// LogInfo logs an informational message.
func LogInfo(subsystem string, format string, a ...interface{}) {
	logging.Info(subsystem, format, a...)
}

// LogDebug logs a debug-level message when the dashboard runs in debug mode.
func LogDebug(m *model.Model, subsystem string, format string, a ...interface{}) {
	if m != nil && m.DebugMode {
		logging.Debug(subsystem, format, a...)
	}
}

// LogWarn logs a warning message.
func LogWarn(subsystem string, format string, a ...interface{}) {
	logging.Warn(subsystem, format, a...)
}

// LogError logs an error message together with its cause.
func LogError(subsystem string, err error, format string, a ...interface{}) {
	logging.Error(subsystem, err, format, a...)
}

// formatLogEntry renders an entry the way the activity log shows it.
func formatLogEntry(entry logging.LogEntry) string {
	line := fmt.Sprintf("%s [%s] [%s] %s",
		entry.Timestamp.Format("15:04:05"),
		entry.Level.String(),
		entry.Subsystem,
		entry.Message,
	)
	if entry.Err != nil {
		line += ": " + entry.Err.Error()
	}
	return line
}

func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) *model.Model {
	model.AddRawLineToActivityLog(m, formatLogEntry(msg.Entry))
	return m
}
