package arm

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultConfigFile = "roboarm.json"

// Config holds the controller configuration.
type Config struct {
	Listen     string `json:"listen"`                // HTTP listen address
	SerialPort string `json:"serial_port,omitempty"` // line-command serial device, empty to disable
	Driver     string `json:"driver"`                // "sim" or "feetech"
	ServoPort  string `json:"servo_port,omitempty"`  // feetech bus device
	Joints     Joints `json:"joints"`
}

// DefaultConfig returns a config with the stock joint profile and a
// simulated driver.
func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		Driver: "sim",
		Joints: DefaultJoints(),
	}
}

// LoadConfig loads configuration from the default config file.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Joints.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists.
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
