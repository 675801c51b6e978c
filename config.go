package shadps4

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/jurealeksic/shadPS4/spirv"
)

// Environment variables overriding configuration files.
const (
	EnvSPIRVVersion = "SHADC_SPIRV_VERSION"
	EnvDebug        = "SHADC_DEBUG"
	EnvValidate     = "SHADC_VALIDATE"
	EnvLogLevel     = "SHADC_LOG_LEVEL"
)

// Config configures compilation. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// SPIRVVersion is the target version as major.minor (default: 1.3)
	SPIRVVersion string `yaml:"spirv_version"`

	// Debug emits OpName for named values and blocks
	Debug bool `yaml:"debug"`

	// Validate runs the IR validator before code generation
	Validate bool `yaml:"validate"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Profile lists the device features the output may rely on
	Profile ProfileConfig `yaml:"profile"`
}

// ProfileConfig is the YAML form of spirv.Profile.
type ProfileConfig struct {
	Float16                   bool `yaml:"float16"`
	Float64                   bool `yaml:"float64"`
	Int8                      bool `yaml:"int8"`
	Int16                     bool `yaml:"int16"`
	Int64                     bool `yaml:"int64"`
	FusedMultiplyAdd          bool `yaml:"fused_multiply_add"`
	ImageGatherExtended       bool `yaml:"image_gather_extended"`
	RuntimeDescriptorArray    bool `yaml:"runtime_descriptor_array"`
	NonUniformIndexing        bool `yaml:"non_uniform_indexing"`
	BufferDeviceAddress       bool `yaml:"buffer_device_address"`
	DemoteToHelperInvocation  bool `yaml:"demote_to_helper_invocation"`
	StorageImageWithoutFormat bool `yaml:"storage_image_without_format"`
}

// DefaultConfig returns sensible default options: SPIR-V 1.3, validation
// on and every device feature available.
func DefaultConfig() Config {
	return Config{
		SPIRVVersion: spirv.Version1_3.String(),
		Validate:     true,
		LogLevel:     "warn",
		Profile:      ProfileConfig(spirv.FullProfile()),
	}
}

// LoadConfig reads a YAML configuration file over the defaults and applies
// environment overrides. An empty path only applies the overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if _, err := cfg.Version(); err != nil {
		return Config{}, err
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the SHADC_* environment variables that
// are set.
func (c *Config) ApplyEnv() {
	c.SPIRVVersion = env.Str(EnvSPIRVVersion, c.SPIRVVersion)
	c.LogLevel = env.Str(EnvLogLevel, c.LogLevel)
	if env.Has(EnvDebug) {
		c.Debug = env.Bool(EnvDebug)
	}
	if env.Has(EnvValidate) {
		c.Validate = env.Bool(EnvValidate)
	}
}

// Version parses SPIRVVersion.
func (c Config) Version() (spirv.Version, error) {
	return ParseVersion(c.SPIRVVersion)
}

// SPIRVOptions converts the configuration to backend options.
func (c Config) SPIRVOptions(logger *slog.Logger) (spirv.Options, error) {
	v, err := c.Version()
	if err != nil {
		return spirv.Options{}, err
	}
	return spirv.Options{
		Version:    v,
		Profile:    spirv.Profile(c.Profile),
		Debug:      c.Debug,
		Validation: c.Validate,
		Logger:     logger,
	}, nil
}

var versions = map[string]spirv.Version{
	"1.0": spirv.Version1_0,
	"1.3": spirv.Version1_3,
	"1.4": spirv.Version1_4,
	"1.5": spirv.Version1_5,
	"1.6": spirv.Version1_6,
}

// ParseVersion parses a supported SPIR-V version written as major.minor.
func ParseVersion(s string) (spirv.Version, error) {
	v, ok := versions[strings.TrimSpace(s)]
	if !ok {
		return spirv.Version{}, fmt.Errorf("unsupported SPIR-V version %q", s)
	}
	return v, nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
