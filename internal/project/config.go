package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxRecentProjects caps the recent-files menu.
const maxRecentProjects = 10

// Config holds user preferences persisted between sessions.
type Config struct {
	DetectorURL      string   `json:"detector_url"`
	Theme            string   `json:"theme"`
	DefaultCeilingFt float64  `json:"default_ceiling_ft"`
	RecentProjects   []string `json:"recent_projects"`
	LastExportDir    string   `json:"last_export_dir,omitempty"`
}

// DefaultConfig returns the configuration used on first run.
func DefaultConfig() Config {
	return Config{
		DetectorURL:      "http://localhost:8421",
		Theme:            "dark",
		DefaultCeilingFt: 8,
		RecentProjects:   []string{},
	}
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.floortrace/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".floortrace")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveConfig persists the config to the given path as JSON, creating any
// missing parent directories.
func SaveConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadConfig reads the config from the given path. If the file does not
// exist it returns DefaultConfig with no error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if config.DetectorURL == "" {
		config.DetectorURL = DefaultConfig().DetectorURL
	}
	return config, nil
}

// AddRecentProject moves the path to the front of the recent list,
// dropping duplicates and trimming to the cap.
func (c *Config) AddRecentProject(path string) {
	recent := make([]string, 0, len(c.RecentProjects)+1)
	recent = append(recent, path)
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}
