// Package config defines the application configuration loaded from a YAML
// file, with sane defaults when no file is present.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	// Workdir is the base directory for data files and logs.
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
}

type LoggerConfig struct {
	// Mode selects the zap preset: "development" or "production".
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type StoreConfig struct {
	ProductsFile string `yaml:"products_file" json:"products_file"`
	ClientsFile  string `yaml:"clients_file" json:"clients_file"`
	OrdersFile   string `yaml:"orders_file" json:"orders_file"`

	// AutosaveSpec is a cron expression for periodic flushes of all
	// collections, e.g. "@every 5m". Empty disables autosave; the
	// collections are always flushed on shutdown regardless.
	AutosaveSpec string `yaml:"autosave_spec" json:"autosave_spec"`
}

type AppConfig struct {
	System SystemConfig `yaml:"system" json:"system"`
	Logger LoggerConfig `yaml:"logger" json:"logger"`
	Store  StoreConfig  `yaml:"store" json:"store"`
}

// DataDir returns the directory holding the persisted collections.
func (c *AppConfig) DataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

// ProductsPath returns the absolute products file location.
func (c *AppConfig) ProductsPath() string {
	return filepath.Join(c.DataDir(), c.Store.ProductsFile)
}

// ClientsPath returns the absolute clients file location.
func (c *AppConfig) ClientsPath() string {
	return filepath.Join(c.DataDir(), c.Store.ClientsFile)
}

// OrdersPath returns the absolute orders file location.
func (c *AppConfig) OrdersPath() string {
	return filepath.Join(c.DataDir(), c.Store.OrdersFile)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Workdir:  ".",
			Location: "Local",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "storecore.log",
		},
		Store: StoreConfig{
			ProductsFile: "products.txt",
			ClientsFile:  "clients.txt",
			OrdersFile:   "orders.txt",
		},
	}
}

// LoadConfig reads the YAML configuration at path on top of the defaults. A
// missing file is not an error: the defaults apply. The STORECORE_WORKDIR
// environment variable overrides the configured workdir.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		}
	}

	if workdir := os.Getenv("STORECORE_WORKDIR"); workdir != "" {
		cfg.System.Workdir = workdir
	}
	return cfg, nil
}
