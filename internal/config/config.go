// Package config handles loading and parsing application configuration
// for both binaries in this repository.
//
// Sources, in priority order:
//  1. Environment variables (including a local .env file, if present)
//  2. The YAML file named by CONFIG_PATH or by the --config flag
//
// cmd/alunos-api loads a Config; cmd/alunos loads a ClientConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration of the API server.
//
// env-required:"true" means the server refuses to start if that value is
// missing; a wrong default database path is worse than a crash at boot.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// SeedPath optionally points at an .xlsx sheet imported on first
	// boot, when the students table is still empty.
	SeedPath string `yaml:"seed_path" env:"SEED_PATH"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "127.0.0.1:8000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"127.0.0.1:8000"`
}

// ClientConfig is the root configuration of the terminal client.
type ClientConfig struct {
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// LogPath is where the client writes its logs. The terminal itself
	// is owned by the UI, so an empty path discards logs.
	LogPath string `yaml:"log_path" env:"LOG_PATH"`

	API `yaml:"api"`
}

// API describes the remote student endpoint.
type API struct {
	// BaseURL is scheme://host[:port] of the server; the client appends
	// /api/alunos/ itself.
	BaseURL string `yaml:"base_url" env:"API_BASE_URL" env-default:"http://127.0.0.1:8000"`
}

// MustLoad reads, validates, and returns the server config.
// It exits the process on failure, so callers never see an invalid one.
func MustLoad() *Config {
	var cfg Config
	mustLoad(&cfg)
	return &cfg
}

// MustLoadClient is MustLoad for the terminal client.
func MustLoadClient() *ClientConfig {
	var cfg ClientConfig
	mustLoad(&cfg)
	return &cfg
}

func mustLoad(cfg any) {
	if err := loadDotEnv(".env"); err != nil {
		log.Fatalf("cannot read .env: %s", err.Error())
	}

	configPath, err := resolvePath(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("cannot parse flags: %s", err.Error())
	}
	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if err := Load(configPath, cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}
}

// resolvePath defines --config on fs and parses args, so the flag is
// accepted even when CONFIG_PATH is set. CONFIG_PATH wins over the flag.
func resolvePath(fs *flag.FlagSet, args []string) (string, error) {
	path := fs.String("config", "", "Path to the configuration YAML file")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env, nil
	}
	return *path, nil
}

// Load populates cfg from the YAML file at path, then applies
// environment overrides and defaults. cfg must be a pointer to Config or
// ClientConfig.
func Load(path string, cfg any) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	return nil
}

// loadDotEnv exports the variables of a .env file into the process
// environment. Variables already set are left alone. A missing file is
// not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
