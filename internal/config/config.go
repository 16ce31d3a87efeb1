//-------------------------------------------------------------------------
//
// pgEdge E-commerce Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-ecomload.
// Configuration is loaded from a config file, a .env file and environment
// variables. CLI flags take precedence over all of them, followed by the
// environment, the config file and finally the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables recognised for database access.
const (
	EnvConnection = "DATABASE_URL"
	EnvDBName     = "DB_NAME"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config holds all configuration for pgedge-ecomload.
type Config struct {
	// Connection is a full PostgreSQL connection string. When set it
	// overrides the discrete Database parameters.
	Connection string `mapstructure:"connection"`

	// Database holds discrete connection parameters.
	Database DatabaseConfig `mapstructure:"database"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Names holds configuration for the names subcommand.
	Names NamesConfig `mapstructure:"names"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// DatabaseConfig holds discrete PostgreSQL connection parameters.
type DatabaseConfig struct {
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
}

// LoadConfig holds configuration for the CSV loader.
type LoadConfig struct {
	// CSVFile is the path of the input dataset.
	CSVFile string `mapstructure:"csv_file"`

	// SchemaFile is an optional SQL script used instead of the built-in
	// schema when the tables do not exist yet.
	SchemaFile string `mapstructure:"schema_file"`

	// BatchSize is the number of rows sent per insert statement.
	BatchSize int `mapstructure:"batch_size"`
}

// NamesConfig holds configuration for the name synthesizer.
type NamesConfig struct {
	// Seed makes generated names reproducible. Zero seeds from the clock.
	Seed uint64 `mapstructure:"seed"`

	// Customers enables the customer name section.
	Customers bool `mapstructure:"customers"`

	// Products enables the product name section.
	Products bool `mapstructure:"products"`
}

// SampleConfig holds configuration for synthetic dataset generation.
type SampleConfig struct {
	Rows   int    `mapstructure:"rows"`
	Output string `mapstructure:"output"`
	Seed   uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Name: "ecommerce",
			User: "postgres",
			Host: "localhost",
			Port: 5432,
		},
		Load: LoadConfig{
			CSVFile:   "data/ecommerce_data.csv",
			BatchSize: 1000,
		},
		Names: NamesConfig{
			Customers: true,
			Products:  true,
		},
		Sample: SampleConfig{
			Rows:   1000,
			Output: "data/ecommerce_data.csv",
		},
	}
}

// Load reads configuration from the config file and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-ecomload.yaml
// 3. ~/.config/pgedge-ecomload/pgedge-ecomload.yaml
//
// A .env file in the working directory is read first; variables already
// set in the process environment are not overwritten by it.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("pgedge-ecomload")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-ecomload"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	setDefaults(v, DefaultConfig())
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("connection", d.Connection)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("load.csv_file", d.Load.CSVFile)
	v.SetDefault("load.schema_file", d.Load.SchemaFile)
	v.SetDefault("load.batch_size", d.Load.BatchSize)
	v.SetDefault("names.seed", d.Names.Seed)
	v.SetDefault("names.customers", d.Names.Customers)
	v.SetDefault("names.products", d.Names.Products)
	v.SetDefault("sample.rows", d.Sample.Rows)
	v.SetDefault("sample.output", d.Sample.Output)
	v.SetDefault("sample.seed", d.Sample.Seed)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"connection":        EnvConnection,
		"database.name":     EnvDBName,
		"database.user":     EnvDBUser,
		"database.password": EnvDBPassword,
		"database.host":     EnvDBHost,
		"database.port":     EnvDBPort,
		"log_level":         EnvLogLevel,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate checks that the database settings are usable.
func (c *Config) Validate() error {
	if c.Connection != "" {
		return nil
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Load.CSVFile == "" {
		return fmt.Errorf("csv file is required for load")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ValidateNames checks configuration required for the names command.
func (c *Config) ValidateNames() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.Names.Customers && !c.Names.Products {
		return fmt.Errorf("at least one of customers or products must be enabled")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Sample.Output == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}
