// Package config loads biobank settings from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/biobank/internal/logging"
	"github.com/mesh-intelligence/biobank/internal/paths"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// EnvPrefix prefixes every environment override, e.g. BIOBANK_LISTEN_ADDR.
	EnvPrefix = "BIOBANK"
)

// Config keys.
const (
	KeyDataDir         = "data_dir"
	KeyDatabaseURL     = "database_url"
	KeyAPIPrefix       = "api_prefix"
	KeyListenAddr      = "listen_addr"
	KeyCORSOrigins     = "cors_origins"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyDefaultPageSize = "default_page_size"
	KeyMaxPageSize     = "max_page_size"
	KeyMaxOpenConns    = "max_open_conns"
	KeyMaxIdleConns    = "max_idle_conns"
	KeyConnMaxLifetime = "conn_max_lifetime"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# biobank configuration
# Every key can be overridden with a BIOBANK_<KEY> environment variable;
# database_url also honours DATABASE_URL.

# Store location. Defaults to a sqlite file in the data directory.
# database_url: postgres://biobank@localhost/biobank?sslmode=disable
# data_dir:

api_prefix: /api
listen_addr: ":8000"
cors_origins:
  - http://localhost:5173
  - http://localhost:3000

log_level: info
log_format: json

default_page_size: 100
max_page_size: 1000
`

// Settings is the resolved configuration of one process.
type Settings struct {
	ConfigDir       string
	DataDir         string
	DatabaseURL     string
	APIPrefix       string
	ListenAddr      string
	CORSOrigins     []string
	LogLevel        string
	LogFormat       string
	DefaultPageSize int
	MaxPageSize     int
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Settings validation errors.
var (
	ErrPageSize   = errors.New("default_page_size must be positive and not exceed max_page_size")
	ErrAPIPrefix  = errors.New("api_prefix must start with /")
	ErrListenAddr = errors.New("listen_addr must not be empty")
)

// Load reads config.yaml from configDir, creating the directory and a default
// file on first run, and applies environment overrides. dataDirFlag is the
// --data-dir flag value and wins over data_dir in the file.
func Load(configDir, dataDirFlag string) (*Settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyDatabaseURL, EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(KeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	databaseURL := v.GetString(KeyDatabaseURL)
	if databaseURL == "" {
		databaseURL = paths.DefaultDatabaseURL(dataDir)
	}

	s := &Settings{
		ConfigDir:       configDir,
		DataDir:         dataDir,
		DatabaseURL:     databaseURL,
		APIPrefix:       strings.TrimSuffix(v.GetString(KeyAPIPrefix), "/"),
		ListenAddr:      v.GetString(KeyListenAddr),
		CORSOrigins:     v.GetStringSlice(KeyCORSOrigins),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
		DefaultPageSize: v.GetInt(KeyDefaultPageSize),
		MaxPageSize:     v.GetInt(KeyMaxPageSize),
		MaxOpenConns:    v.GetInt(KeyMaxOpenConns),
		MaxIdleConns:    v.GetInt(KeyMaxIdleConns),
		ConnMaxLifetime: v.GetDuration(KeyConnMaxLifetime),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIPrefix, "/api")
	v.SetDefault(KeyListenAddr, ":8000")
	v.SetDefault(KeyCORSOrigins, []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatJSON)
	v.SetDefault(KeyDefaultPageSize, 100)
	v.SetDefault(KeyMaxPageSize, 1000)
	v.SetDefault(KeyMaxOpenConns, 0)
	v.SetDefault(KeyMaxIdleConns, 0)
	v.SetDefault(KeyConnMaxLifetime, time.Duration(0))
}

// Validate checks the settings the store does not check itself.
func (s *Settings) Validate() error {
	if s.DefaultPageSize <= 0 || s.MaxPageSize < s.DefaultPageSize {
		return ErrPageSize
	}
	if s.APIPrefix != "" && !strings.HasPrefix(s.APIPrefix, "/") {
		return ErrAPIPrefix
	}
	if s.ListenAddr == "" {
		return ErrListenAddr
	}
	return s.Store().Validate()
}

// Store returns the connection parameters for storage.Backend.Attach.
func (s *Settings) Store() types.Config {
	return types.Config{
		DatabaseURL:     s.DatabaseURL,
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	}
}

// Logging returns the logger options.
func (s *Settings) Logging() logging.Options {
	return logging.Options{Level: s.LogLevel, Format: s.LogFormat}
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
