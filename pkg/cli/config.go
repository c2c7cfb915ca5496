package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gpspeech/gpspeech/pkg/storage"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".gpspeech"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the main configuration structure for a CLI app
type Config struct {
	// AppName is the application name (e.g., "gpspeech", "gpdecode")
	AppName string `yaml:"-"`

	// CurrentProfile is the name of the active profile
	CurrentProfile string `yaml:"current_profile,omitempty"`

	// Profiles maps profile name to settings
	Profiles map[string]*Profile `yaml:"profiles,omitempty"`

	configPath string
}

// Profile is a named set of defaults for the tools.
type Profile struct {
	Name string `yaml:"name"`

	// CatalogDir is the badger directory of the record catalog. Empty means
	// the app data directory.
	CatalogDir string `yaml:"catalog_dir,omitempty"`

	// OutputDir is where extract and decode write when no output is given.
	OutputDir string `yaml:"output_dir,omitempty"`

	// DefaultRate overrides the declared sample rate when decoding.
	DefaultRate int `yaml:"default_rate,omitempty"`

	// Storage is the default destination of dump.
	Storage storage.Config `yaml:"storage,omitempty"`
}

// LoadConfig loads or creates configuration for the specified app
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from a custom path
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultBaseDir, appName, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Profiles:   make(map[string]*Profile),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	cfg.AppName = appName
	cfg.configPath = configPath
	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddProfile adds or replaces a profile
func (c *Config) AddProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	p.Name = name
	c.Profiles[name] = p
	return c.Save()
}

// DeleteProfile removes a profile
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns a specific profile
func (c *Config) GetProfile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the current one if name is
// empty. With neither, it returns an empty profile so that every setting
// falls back to its default.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return &Profile{}, nil
	}
	return c.GetProfile(name)
}

// ListProfiles returns all profile names in sorted order
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Masked returns a copy of p with secrets masked for display.
func (p *Profile) Masked() *Profile {
	cp := *p
	cp.Storage.SecretKey = MaskSecret(cp.Storage.SecretKey)
	cp.Storage.AccessKey = MaskSecret(cp.Storage.AccessKey)
	return &cp
}

// MaskSecret masks a credential for display
func MaskSecret(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
