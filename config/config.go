package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MEASURE_DATABASE_HOST.
const EnvPrefix = "MEASURE"

var mu sync.Mutex

// Config represents the configuration implementation.
type Config struct {
	AppName   string
	RunMode   string
	Server    *Server
	Logger    *Logger
	Observes  *Observes
	Database  *Database
	Aggregate *Aggregate
	Write     *Write
	Ingest    *Ingest
	Catalog   *Catalog
	Viper     *viper.Viper
	path      string
}

// Server http server config struct
type Server struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port" validate:"gte=0,lte=65535"`
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig loads the configuration from configPath, or from config.* in
// the usual search paths when configPath is empty. A missing file in the
// search paths is not an error: defaults and environment overrides apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/measure")
		v.AddConfigPath("$HOME/.measure")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := FromViper(v)
	if err != nil {
		return nil, err
	}
	cfg.path = configPath
	return cfg, nil
}

// FromViper builds and validates a configuration from v.
func FromViper(v *viper.Viper) (*Config, error) {
	db, err := getDatabaseConfig(v)
	if err != nil {
		return nil, err
	}
	catalog, err := getCatalogConfig(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Server: &Server{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Logger:    getLoggerConfig(v),
		Observes:  getObservesConfig(v),
		Database:  db,
		Aggregate: getAggregateConfig(v),
		Write:     getWriteConfig(v),
		Ingest:    getIngestConfig(v),
		Catalog:   catalog,
		Viper:     v,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "measure")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("database.driver", DriverInflux)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 8086)
}

// Watch reloads the configuration when its file changes and hands the new
// configuration to callback. Invalid edits are reported to onError and the
// previous configuration stays in effect.
func Watch(cfg *Config, callback func(*Config), onError func(error)) {
	v := cfg.Viper
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		next, err := FromViper(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		next.path = cfg.path
		callback(next)
	})
	v.WatchConfig()
}
