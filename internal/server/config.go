package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skeldnet/skeld/internal/core/protocol"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "100ms" or "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`

	// Transport selects the network transport: "websocket" or "quic".
	Transport string `yaml:"transport"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// MaxSessions caps concurrent client sessions. Zero means no cap.
	MaxSessions int `yaml:"max_sessions"`

	// SyncInterval is how often dirty task state is broadcast.
	SyncInterval Duration `yaml:"sync_interval"`

	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	KeepAlive    Duration `yaml:"keep_alive"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:7777",
		Transport:    "websocket",
		LogLevel:     "info",
		MaxSessions:  16,
		SyncInterval: Duration(100 * time.Millisecond),
		ReadTimeout:  Duration(30 * time.Second),
		WriteTimeout: Duration(10 * time.Second),
		KeepAlive:    Duration(15 * time.Second),
	}
}

// LoadConfig reads a YAML config, filling unset fields from the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()

	if err := yaml.NewDecoder(r).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// LoadConfigFile reads a YAML config from path. An empty path returns the
// defaults.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return LoadConfig(f)
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Transport {
	case "websocket", "quic":
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.SyncInterval <= 0 {
		return fmt.Errorf("sync_interval must be positive")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must not be negative")
	}
	return nil
}

// protocolConfig maps the server settings onto the transport config.
func (c Config) protocolConfig() protocol.Config {
	pc := protocol.DefaultConfig()
	pc.ReadTimeout = c.ReadTimeout.Std()
	pc.WriteTimeout = c.WriteTimeout.Std()
	pc.KeepAlive = c.KeepAlive.Std()
	return pc
}
