package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig is the host-side profile: canvas, cadence, outputs and the
// name of the widget profile holding the WidgetConfig itself.
type AppConfig struct {
	Name            string   `json:"name"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	RefreshInterval int      `json:"refresh_interval"` // milliseconds
	FontFamilies    []string `json:"font_families,omitempty"`
	OutputType      string   `json:"output_type"` // file, usb or both
	OutputFile      string   `json:"output_file,omitempty"`
	WidgetProfile   string   `json:"widget_profile,omitempty"`
	ListenAddr      string   `json:"listen_addr,omitempty"` // status server, empty disables
	EnableTray      bool     `json:"tray,omitempty"`
	LogFile         string   `json:"log_file,omitempty"`
}

func (c *AppConfig) GetWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	return 480
}

func (c *AppConfig) GetHeight() int {
	if c.Height > 0 {
		return c.Height
	}
	return 320
}

func (c *AppConfig) GetRefreshInterval() int {
	if c.RefreshInterval > 0 {
		return c.RefreshInterval
	}
	return 1000
}

func (c *AppConfig) GetOutputFile() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return "widget.png"
}

func (c *AppConfig) GetWidgetProfile() string {
	if c.WidgetProfile != "" {
		return c.WidgetProfile
	}
	return "widget"
}

type ConfigManager struct {
	configDir string
	configs   map[string]*AppConfig
}

func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir: configDir,
		configs:   make(map[string]*AppConfig),
	}
}

func (cm *ConfigManager) LoadConfig(configName string) (*AppConfig, error) {
	if config, exists := cm.configs[configName]; exists {
		return config, nil
	}

	configFile := filepath.Join(cm.configDir, configName+".json")

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}

	cm.configs[configName] = &config
	return &config, nil
}

func (cm *ConfigManager) ListConfigs() ([]string, error) {
	files, err := os.ReadDir(cm.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %v", err)
	}

	var configs []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			configs = append(configs, file.Name()[:len(file.Name())-5])
		}
	}

	return configs, nil
}

// ProfileDir is where widget profiles live, beside the app configs.
func (cm *ConfigManager) ProfileDir() string {
	return filepath.Join(cm.configDir, "profiles")
}
