// Package logger is the structured logger shared by the supervisor, the cgroup
// controllers and the command line tools.
package logger

import (
	"sync"
)

var (
	mu  sync.Mutex
	log Logger
)

// Fields Type to pass when we want to call WithFields for structured logging
type Fields map[string]interface{}

// Logger is our contract for the logger
type Logger interface {
	Debugf(format string, args ...interface{})

	Infof(format string, args ...interface{})

	Warnf(format string, args ...interface{})

	Warn(format string)

	Errorf(format string, args ...interface{})

	WithFields(keyValues Fields) Logger
}

// Get returns the process wide logger, creating one from the environment on first use
func Get() Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = LoadLogConfig().newZapLogger()
	}
	return log
}

// New creates a logger from the configuration and installs it as the process wide logger
func New(inputLogConfig *Configuration) Logger {
	l := inputLogConfig.newZapLogger()
	mu.Lock()
	log = l
	mu.Unlock()
	return l
}
