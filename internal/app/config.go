package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	SecretSourceConfig = "config"
	SecretSourceRedis  = "redis"

	defaultLogName  = "data.csv"
	defaultPassword = "admin123"
)

type Config struct {
	Store struct {
		Path string `toml:"path"`
		CRLF bool   `toml:"crlf"`
	} `toml:"store"`

	Admin struct {
		Source    string `toml:"source"`
		Password  string `toml:"password"`
		RedisURL  string `toml:"redis_url"`
		SecretKey string `toml:"secret_key"`
	} `toml:"admin"`

	Viewer struct {
		Command string   `toml:"command"`
		Args    []string `toml:"args"`
	} `toml:"viewer"`

	Metrics struct {
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

// DefaultConfig keeps the grade log beside the executable and gates it
// with the stock admin password.
func DefaultConfig() *Config {
	var config Config

	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	config.Store.Path = filepath.Join(dir, defaultLogName)
	config.Admin.Source = SecretSourceConfig
	config.Admin.Password = defaultPassword
	config.Viewer.Command = defaultViewer()

	return &config
}

func defaultViewer() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "less"
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	config.Store.Path = anchorPath(filepath.Dir(path), config.Store.Path)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger.Debug.Printf("Loaded config from %s, grade log at %s", path, config.Store.Path)

	return config, nil
}

// anchorPath resolves a relative log location against the config file directory,
// keeping an optional scheme prefix.
func anchorPath(dir, dsn string) string {
	if dsn == "" {
		return dsn
	}
	scheme, p, ok := strings.Cut(dsn, "://")
	if !ok {
		p = dsn
	}
	if filepath.IsAbs(p) {
		return dsn
	}
	p = filepath.Join(dir, p)
	if ok {
		return scheme + "://" + p
	}
	return p
}

func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("Store path is not specified in config, use a value like \"data.csv\"")
	}

	switch c.Admin.Source {
	case SecretSourceConfig:
		if c.Admin.Password == "" {
			return fmt.Errorf("Admin password is empty, set [admin] password")
		}
	case SecretSourceRedis:
		if c.Admin.RedisURL == "" || c.Admin.SecretKey == "" {
			return fmt.Errorf("Redis secret source needs both [admin] redis_url and secret_key")
		}
	default:
		return fmt.Errorf("unknown admin secret source %q, use %q or %q",
			c.Admin.Source, SecretSourceConfig, SecretSourceRedis)
	}

	if c.Viewer.Command == "" {
		return fmt.Errorf("Viewer command is empty")
	}

	return nil
}
