package logger

import (
	"os"
)

const (
	defaultLogFilePath = "stderr"
	defaultLogLevel    = "info"
	envLogLevel        = "LIMITRUN_LOG_LEVEL"
	envLogFilePath     = "LIMITRUN_LOG_FILE"
)

// Configuration stores the config for the logger
type Configuration struct {
	LogLevel    string
	LogLocation string
}

// LoadLogConfig returns the log configuration from the environment
func LoadLogConfig() *Configuration {
	return &Configuration{
		LogLevel:    GetLogLevel(),
		LogLocation: GetLogLocation(),
	}
}

// GetLogLocation returns the log file path
func GetLogLocation() string {
	logFilePath := os.Getenv(envLogFilePath)
	if logFilePath == "" {
		logFilePath = defaultLogFilePath
	}
	return logFilePath
}

// GetLogLevel returns the log level
func GetLogLevel() string {
	logLevel := os.Getenv(envLogLevel)
	if logLevel == "" {
		return defaultLogLevel
	}
	return logLevel
}
