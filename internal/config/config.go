// Package config holds the benchmark settings shared by every cell:
// stepping parameters, timing-protocol repeat counts, the calibration
// trajectory count, and comparison tolerances. Values mirror the
// reference benchmark setup so independently run backends measure the
// same problem.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odebench/internal/backend"
)

const (
	DefaultDataDir          = "data"
	DefaultModel            = "lorenz"
	DefaultPrecision        = "float32"
	DefaultCalibrationCount = 32768
	DefaultResidentRepeats  = 100
	DefaultTransferRepeats  = 10
	DefaultFixedDt          = 0.001
	DefaultAdaptiveAtol     = 1e-8
	DefaultAdaptiveRtol     = 1e-8
	DefaultAdaptiveDtMin    = 1e-9
	DefaultAdaptiveDtMax    = 0.1
	DefaultCompareRtol      = 1e-4
	DefaultCompareAtol      = 1e-6
)

type Config struct {
	DataDir          string         `yaml:"data_dir"`
	Model            string         `yaml:"model"`
	Precision        string         `yaml:"precision"`
	CalibrationCount int            `yaml:"calibration_count"`
	Repeats          RepeatsConfig  `yaml:"repeats"`
	Fixed            FixedConfig    `yaml:"fixed"`
	Adaptive         AdaptiveConfig `yaml:"adaptive"`
	Compare          CompareConfig  `yaml:"compare"`
}

// RepeatsConfig sets timed-trial counts per backend class.
type RepeatsConfig struct {
	Resident int `yaml:"resident"`
	Transfer int `yaml:"transfer"`
}

type FixedConfig struct {
	Dt float64 `yaml:"dt"`
}

type AdaptiveConfig struct {
	Dt    float64 `yaml:"dt"`
	Atol  float64 `yaml:"atol"`
	Rtol  float64 `yaml:"rtol"`
	DtMin float64 `yaml:"dt_min"`
	DtMax float64 `yaml:"dt_max"`
}

type CompareConfig struct {
	Rtol float64 `yaml:"rtol"`
	Atol float64 `yaml:"atol"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:          DefaultDataDir,
		Model:            DefaultModel,
		Precision:        DefaultPrecision,
		CalibrationCount: DefaultCalibrationCount,
		Repeats: RepeatsConfig{
			Resident: DefaultResidentRepeats,
			Transfer: DefaultTransferRepeats,
		},
		Fixed: FixedConfig{Dt: DefaultFixedDt},
		Adaptive: AdaptiveConfig{
			Dt:    DefaultFixedDt,
			Atol:  DefaultAdaptiveAtol,
			Rtol:  DefaultAdaptiveRtol,
			DtMin: DefaultAdaptiveDtMin,
			DtMax: DefaultAdaptiveDtMax,
		},
		Compare: CompareConfig{
			Rtol: DefaultCompareRtol,
			Atol: DefaultCompareAtol,
		},
	}
}

// Load reads a yaml config over the defaults, so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StepConfig builds the backend stepping configuration for a mode.
func (c *Config) StepConfig(mode backend.Mode) backend.StepConfig {
	if mode == backend.Adaptive {
		return backend.StepConfig{
			Mode:  backend.Adaptive,
			Dt:    c.Adaptive.Dt,
			Atol:  c.Adaptive.Atol,
			Rtol:  c.Adaptive.Rtol,
			DtMin: c.Adaptive.DtMin,
			DtMax: c.Adaptive.DtMax,
		}
	}
	return backend.StepConfig{Mode: backend.Fixed, Dt: c.Fixed.Dt}
}

// RepeatOverrides maps the configured repeat counts onto backend
// classes for the harness.
func (c *Config) RepeatOverrides() map[backend.Class]int {
	return map[backend.Class]int{
		backend.ClassResident: c.Repeats.Resident,
		backend.ClassTransfer: c.Repeats.Transfer,
	}
}
