// Package config stores gateway profiles for the canvas. Each profile
// names a model plus credentials; the active profile decides which
// backend fills regions. The file lives at ~/.uisketch/config.json,
// overridable with UISKETCH_HOME.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultModel is used when a profile does not pin one. Tree generation
// needs JSON-mode support, so the default stays on a model that has it.
const DefaultModel = "gpt-4o-mini"

const envHome = "UISKETCH_HOME"

// Profile is one gateway endpoint. BaseURL is empty for the public
// OpenAI API and set for proxies or compatible local servers.
type Profile struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

// LoadConfig reads the profile file, creating a blank default profile on
// first run so `uisketch profile add` has somewhere to write.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.resolveActiveProfile(); err != nil {
		return nil, fmt.Errorf("failed to resolve active profile: %w", err)
	}

	return config, nil
}

// IsValid reports whether the active profile can reach a gateway. The
// canvas still runs without one; only generation is disabled.
func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

func getConfigPath() (string, error) {
	configDir := os.Getenv(envHome)
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}
	return filepath.Join(configDir, ".uisketch", "config.json"), nil
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {Model: DefaultModel},
		},
		ActiveProfile: "default",
	}
	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}
	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	// 0600: the file holds API keys.
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return saveConfig(c, configPath)
}

// resolveActiveProfile pins currentProfile. A dangling ActiveProfile
// name falls back to any existing profile rather than failing startup.
func (c *Config) resolveActiveProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			break
		}
	}

	c.currentProfile = &profile
	return nil
}
