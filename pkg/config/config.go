// Package config loads the runtime configuration of limited-run: built-in
// defaults, then an optional TOML file, then LIMITRUN_* environment variables.
package config

import (
	"bytes"
	"os"
	"strconv"
	"time"

	"github.com/criyle/limited-run/pkg/cgroup"
	"github.com/criyle/limited-run/pkg/logger"
	"github.com/criyle/limited-run/pkg/supervisor"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultPath is read when no path is given, it is fine for it to be missing
	DefaultPath = "/etc/limited-run.toml"

	envConfig          = "LIMITRUN_CONFIG"
	envCgroupRoot      = "LIMITRUN_CGROUP_ROOT"
	envAppName         = "LIMITRUN_APP_NAME"
	envV2Limits        = "LIMITRUN_V2_LIMITS"
	envTeardownTimeout = "LIMITRUN_TEARDOWN_TIMEOUT"
	envLogLevel        = "LIMITRUN_LOG_LEVEL"
	envLogFile         = "LIMITRUN_LOG_FILE"
)

// Config is the complete runtime configuration
type Config struct {
	Cgroup     Cgroup     `toml:"cgroup"`
	Supervisor Supervisor `toml:"supervisor"`
	Log        Log        `toml:"log"`
}

// Cgroup configures the controllers
type Cgroup struct {
	Root            string   `toml:"root"`
	AppName         string   `toml:"app_name"`
	V2Limits        bool     `toml:"v2_limits"`
	PollInterval    Duration `toml:"poll_interval"`
	TeardownTimeout Duration `toml:"teardown_timeout"` // 0 waits forever
	KillStrays      bool     `toml:"kill_strays"`      // SIGKILL descendants left in cgroup.procs
}

// Supervisor configures the wait loop
type Supervisor struct {
	PollInterval Duration `toml:"poll_interval"`
}

// Log configures the process wide logger
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // stderr, stdout or a path rotated by lumberjack
}

// Duration is a time.Duration written as a string ("10ms") in TOML
type Duration time.Duration

// UnmarshalText parses the duration with time.ParseDuration
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration with time.Duration.String
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Cgroup: Cgroup{
			Root:         "/sys/fs/cgroup",
			AppName:      cgroup.DefaultAppName,
			PollInterval: Duration(cgroup.DefaultPollInterval),
			KillStrays:   true,
		},
		Supervisor: Supervisor{
			PollInterval: Duration(supervisor.DefaultPollInterval),
		},
		Log: Log{
			Level: "info",
			File:  "stderr",
		},
	}
}

// Load builds the configuration. An empty path falls back to $LIMITRUN_CONFIG
// and then to DefaultPath, only the latter may be missing.
func Load(path string) (*Config, error) {
	c := Default()

	optional := false
	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path == "" {
		path, optional = DefaultPath, true
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := c.decode(b); err != nil {
			return nil, errors.Wrapf(err, "config %s", path)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, errors.Wrap(err, "config")
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) decode(b []byte) error {
	d := toml.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	return d.Decode(c)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envCgroupRoot); v != "" {
		c.Cgroup.Root = v
	}
	if v := os.Getenv(envAppName); v != "" {
		c.Cgroup.AppName = v
	}
	if v := os.Getenv(envV2Limits); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", envV2Limits)
		}
		c.Cgroup.V2Limits = b
	}
	if v := os.Getenv(envTeardownTimeout); v != "" {
		if err := c.Cgroup.TeardownTimeout.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrapf(err, "%s", envTeardownTimeout)
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(envLogFile); v != "" {
		c.Log.File = v
	}
	return nil
}

// Validate rejects values the controllers cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Cgroup.Root == "":
		return errors.New("config: cgroup.root is empty")
	case c.Cgroup.AppName == "":
		return errors.New("config: cgroup.app_name is empty")
	case c.Cgroup.PollInterval <= 0:
		return errors.Errorf("config: cgroup.poll_interval must be positive, got %v", c.Cgroup.PollInterval)
	case c.Cgroup.TeardownTimeout < 0:
		return errors.Errorf("config: cgroup.teardown_timeout must not be negative, got %v", c.Cgroup.TeardownTimeout)
	case c.Supervisor.PollInterval <= 0:
		return errors.Errorf("config: supervisor.poll_interval must be positive, got %v", c.Supervisor.PollInterval)
	}
	return nil
}

// CgroupOptions returns the controller options
func (c *Config) CgroupOptions() cgroup.Options {
	return cgroup.Options{
		Root:         c.Cgroup.Root,
		AppName:      c.Cgroup.AppName,
		V2Limits:     c.Cgroup.V2Limits,
		PollInterval: time.Duration(c.Cgroup.PollInterval),
		Timeout:      time.Duration(c.Cgroup.TeardownTimeout),
		KillStrays:   c.Cgroup.KillStrays,
	}
}

// SupervisorOptions returns the supervisor options
func (c *Config) SupervisorOptions() supervisor.Options {
	return supervisor.Options{
		PollInterval: time.Duration(c.Supervisor.PollInterval),
		V2Limits:     c.Cgroup.V2Limits,
	}
}

// LoggerConfig returns the logger configuration
func (c *Config) LoggerConfig() *logger.Configuration {
	return &logger.Configuration{
		LogLevel:    c.Log.Level,
		LogLocation: c.Log.File,
	}
}
