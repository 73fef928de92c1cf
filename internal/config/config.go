package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Acmi1/MS-Dos-Simulator/internal/seed"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SnapshotConfig controls where SAVE and LOAD keep state.
type SnapshotConfig struct {
	Dir      string `yaml:"dir"`
	File     string `yaml:"file"`
	Autoload bool   `yaml:"autoload"`
	Autosave bool   `yaml:"autosave"`
}

// BatchConfig controls batch execution.
type BatchConfig struct {
	MaxDepth int    `yaml:"max_depth"`
	Echo     *bool  `yaml:"echo,omitempty"`
	Autoexec string `yaml:"autoexec"`
}

// SimulatorConfig is the content of dossim.yaml.
type SimulatorConfig struct {
	Drive       string            `yaml:"drive"`
	VolumeLabel string            `yaml:"volume_label"`
	Capacity    int64             `yaml:"capacity"`
	Prompt      string            `yaml:"prompt"`
	Color       *bool             `yaml:"color,omitempty"`
	Seed        string            `yaml:"seed"`
	Environment map[string]string `yaml:"environment"`
	EnvFile     string            `yaml:"env_file"`
	Snapshot    SnapshotConfig    `yaml:"snapshot"`
	Batch       BatchConfig       `yaml:"batch"`
}

const ConfigFileName = "dossim.yaml"

// Default returns the configuration used when no file is present.
func Default() *SimulatorConfig {
	cfg := &SimulatorConfig{}
	cfg.applyDefaults()
	return cfg
}

// Load reads dossim.yaml from sourcePath, fills defaults and validates it.
func Load(sourcePath string) (*SimulatorConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile is Load for an explicit file path.
func LoadFile(configPath string) (*SimulatorConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg SimulatorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

func (c *SimulatorConfig) applyDefaults() {
	if c.Drive == "" {
		c.Drive = "C"
	}
	c.Drive = strings.ToUpper(strings.TrimSuffix(c.Drive, ":"))
	if c.VolumeLabel == "" {
		c.VolumeLabel = dossim.DefaultVolumeLabel
	}
	if c.Capacity == 0 {
		c.Capacity = dossim.DefaultCapacity
	}
	if c.Prompt == "" {
		c.Prompt = dossim.DefaultPrompt
	}
	if c.Seed == "" {
		c.Seed = seed.Default
	}
	if c.Snapshot.File == "" {
		c.Snapshot.File = dossim.DefaultSnapshotFile
	}
	if c.Batch.MaxDepth == 0 {
		c.Batch.MaxDepth = dossim.DefaultMaxBatchDepth
	}
	if c.Batch.Autoexec == "" {
		c.Batch.Autoexec = "AUTOEXEC.BAT"
	}
}

// Validate reports the first invalid field.
func (c *SimulatorConfig) Validate() error {
	if len(c.Drive) != 1 || c.Drive[0] < 'A' || c.Drive[0] > 'Z' {
		return fmt.Errorf("drive must be a single letter, got %q", c.Drive)
	}
	if err := vfs.ValidateLabel(c.VolumeLabel); err != nil {
		return fmt.Errorf("volume_label: %w", err)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}
	if c.Batch.MaxDepth < 1 {
		return fmt.Errorf("batch.max_depth must be at least 1, got %d", c.Batch.MaxDepth)
	}
	if c.Seed != seed.None && !contains(seed.Templates(), c.Seed) {
		return fmt.Errorf("seed %q is not one of %s, %s", c.Seed, strings.Join(seed.Templates(), ", "), seed.None)
	}
	return nil
}

// DriveLetter returns the drive as a byte.
func (c *SimulatorConfig) DriveLetter() byte { return c.Drive[0] }

// EchoEnabled reports the initial batch echo state, on unless disabled.
func (c *SimulatorConfig) EchoEnabled() bool { return c.Batch.Echo == nil || *c.Batch.Echo }

// ColorOverride returns the configured color preference, if any.
func (c *SimulatorConfig) ColorOverride() (on bool, set bool) {
	if c.Color == nil {
		return false, false
	}
	return *c.Color, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
