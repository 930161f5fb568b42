package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config конфигурация usbnuke
type Config struct {
	Security struct {
		RequireRoot         bool     `yaml:"require_root"`
		RequireConfirmation bool     `yaml:"require_confirmation"`
		RemovableOnly       bool     `yaml:"removable_only"`
		ProtectedDevices    []string `yaml:"protected_devices"`
		MinDeviceSize       uint64   `yaml:"min_device_size"`
	} `yaml:"security"`

	Wipe struct {
		ChunkSize       int    `yaml:"chunk_size"`
		DefaultStandard string `yaml:"default_standard"`
		DefaultPasses   int    `yaml:"default_passes"`
		VerifyAfter     bool   `yaml:"verify_after"`
	} `yaml:"wipe"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`

	Reporting struct {
		Enabled   bool   `yaml:"enabled"`
		LocalPath string `yaml:"local_path"`
	} `yaml:"reporting"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{}

	cfg.Security.RequireRoot = true
	cfg.Security.RequireConfirmation = true
	cfg.Security.RemovableOnly = true
	cfg.Security.ProtectedDevices = []string{"/dev/sda", "/dev/nvme0n1", "/dev/mmcblk0"}
	cfg.Security.MinDeviceSize = 0

	cfg.Wipe.ChunkSize = 4 * 1024 * 1024 // 4MB
	cfg.Wipe.DefaultStandard = "random"
	cfg.Wipe.DefaultPasses = 1
	cfg.Wipe.VerifyAfter = false

	cfg.Logging.Level = "INFO"
	cfg.Logging.File = ""

	cfg.Reporting.Enabled = true
	cfg.Reporting.LocalPath = "./reports"

	return cfg
}

// Load загружает конфигурацию из файла.
// Пустой путь или отсутствующий файл — конфигурация по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет конфигурацию на валидность
func Validate(cfg *Config) error {
	if cfg.Wipe.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", cfg.Wipe.ChunkSize)
	}
	if cfg.Wipe.ChunkSize > 128*1024*1024 { // 128MB max
		return fmt.Errorf("chunk size too large (max 128MB), got %d", cfg.Wipe.ChunkSize)
	}

	if cfg.Wipe.DefaultPasses < 1 || cfg.Wipe.DefaultPasses > 100 {
		return fmt.Errorf("default passes must be between 1 and 100, got %d", cfg.Wipe.DefaultPasses)
	}

	validStandards := map[string]bool{
		"zeros":   true,
		"random":  true,
		"dod":     true,
		"gutmann": true,
	}
	if !validStandards[cfg.Wipe.DefaultStandard] {
		return fmt.Errorf("invalid default standard: %s", cfg.Wipe.DefaultStandard)
	}

	validLevels := map[string]bool{
		"DEBUG": true,
		"INFO":  true,
		"WARN":  true,
		"ERROR": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	for _, path := range cfg.Security.ProtectedDevices {
		if path == "" {
			return fmt.Errorf("empty protected device path")
		}
		if filepath.Clean(path) == "/" {
			return fmt.Errorf("invalid protected device path: %s", path)
		}
	}

	return nil
}

// Save сохраняет конфигурацию в файл
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
