// Package config loads the gateway configuration from ~/.wagate/config.toml
// with environment overrides. Values are fixed at process start.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds everything the gateway needs: where the bridge-owned message
// store lives, how to reach the bridge, and where to serve from.
type Config struct {
	StorePath  string `toml:"store_path"`
	BridgeURL  string `toml:"bridge_url"`
	ListenAddr string `toml:"listen_addr"`
	LogPath    string `toml:"log_path"`
	RunDir     string `toml:"run_dir"`
}

// Dir returns the gateway's home directory (~/.wagate).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wagate")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func defaults() Config {
	dir := Dir()
	return Config{
		StorePath:  filepath.Join(dir, "store", "messages.db"),
		BridgeURL:  "http://localhost:8080/api",
		ListenAddr: ":8081",
		LogPath:    filepath.Join(dir, "wagated.log"),
		RunDir:     dir,
	}
}

// Load reads config from path, falling back to defaults for unset fields. A
// missing file is not an error; environment variables override everything.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	if v := os.Getenv("WAGATE_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("WAGATE_BRIDGE_URL"); v != "" {
		cfg.BridgeURL = v
	}
	if v := os.Getenv("WAGATE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("WAGATE_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("WAGATE_RUN_DIR"); v != "" {
		cfg.RunDir = v
	}

	if cfg.StorePath == "" {
		return nil, fmt.Errorf("store_path must not be empty")
	}
	if cfg.BridgeURL == "" {
		return nil, fmt.Errorf("bridge_url must not be empty")
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
