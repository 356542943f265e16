// Package config manages the grepo configuration at ~/.config/grepo/config.toml.
//
// The config owns the persisted base directory and the ordered,
// deduplicated list of watched repositories. It is loaded once per
// invocation, mutated by the watch package, and saved back atomically.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Repo is a watched repository entry.
type Repo struct {
	Name string `toml:"name" json:"name"` // display name, typically the folder name
	Path string `toml:"path" json:"path"` // absolute path to the working tree
}

// Config holds the grepo configuration.
type Config struct {
	BaseDir string `toml:"base_dir"`
	Repos   []Repo `toml:"repos"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "grepo", "config.toml"), nil
}

// ValidatePath checks that the path is absolute or starts with ~.
// Returns an error if the path is relative (like "." or "..").
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // empty means not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
// Shells don't expand ~ inside config files, so we do.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads the config from ~/.config/grepo/config.toml.
// Returns Default() if the file doesn't exist (no error).
// If the file exists but is unparseable, returns Default() together
// with the parse error so the caller can warn and keep going.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := ValidatePath(cfg.BaseDir, "base_dir"); err != nil {
		return Default(), err
	}

	if cfg.BaseDir != "" {
		expanded, err := ExpandPath(cfg.BaseDir)
		if err != nil {
			return Default(), fmt.Errorf("expand base_dir: %w", err)
		}
		cfg.BaseDir = expanded
	}

	return cfg, nil
}

// Save writes the config to ~/.config/grepo/config.toml atomically.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to the given path atomically
// (write-temp-then-rename, so a crash can't corrupt the file).
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save config: %w", err)
	}

	return nil
}

// Contains reports whether a repo with the given absolute path is watched.
func (c *Config) Contains(path string) bool {
	for _, r := range c.Repos {
		if r.Path == path {
			return true
		}
	}
	return false
}

// Find looks up a watched repo by name or path.
func (c *Config) Find(nameOrPath string) (*Repo, bool) {
	for i := range c.Repos {
		if c.Repos[i].Name == nameOrPath || c.Repos[i].Path == nameOrPath {
			return &c.Repos[i], true
		}
	}
	return nil, false
}

const defaultConfig = `# grepo configuration

# Base directory under which watched repositories live.
# Must be an absolute path or start with ~ (no relative paths like "." or "..").
# Used to resolve repo names passed to "grepo watch add" and as the root
# for "grepo scan".
# base_dir = "~/repos"

# Watched repositories. Managed by "grepo watch add/remove" and
# "grepo scan"; editing by hand works too as long as paths stay unique.
#
# [[repos]]
# name = "my-service"
# path = "/home/you/repos/my-service"
`

// Init creates a commented default config file.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
