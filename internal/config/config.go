// Package config handles loading and parsing application configuration.
// Sources, in priority order:
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: values come from the environment alone, falling back to
//     env-default tags, so the program runs with no setup at all.
//
// A .env file in the working directory is loaded first; variables that
// are already set are never overridden by it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Backend names accepted in storage.backend / STORAGE_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendXLSX   = "xlsx"
)

// defaultPaths is used when storage.path is left empty.
var defaultPaths = map[string]string{
	BackendJSON:   "Enrollments.json",
	BackendSQLite: "Enrollments.db",
	BackendXLSX:   "Enrollments.xlsx",
}

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by
// the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// Storage is embedded so cfg.Backend and cfg.Path work directly.
	Storage `yaml:"storage"`
}

// Storage selects where the enrollment list lives.
type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"json" validate:"oneof=json sqlite xlsx"`

	// Path of the data file. Empty means "Enrollments" plus the
	// backend's usual extension, in the working directory.
	Path string `yaml:"path" env:"STORAGE_PATH"`
}

// Load reads the configuration. args are the command-line arguments
// without the program name.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.NewFlagSet("enrollments", flag.ContinueOnError)
		flags.StringVar(&configPath, "config", "", "Path to the configuration YAML file")
		if err := flags.Parse(args); err != nil {
			return nil, fmt.Errorf("config.Load: parse flags: %w", err)
		}
	}

	var cfg Config
	if configPath != "" {
		// Verify the file exists first to give a clear message rather
		// than a cryptic "open: no such file" later.
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.Path == "" {
		cfg.Path = defaultPaths[cfg.Backend]
	}

	return &cfg, nil
}

// MustLoad is Load for main: it exits the process on failure, so if it
// returns the config is valid.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}
