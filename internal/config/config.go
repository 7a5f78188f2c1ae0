// Package config handles the builder-generator YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"gopkg.in/yaml.v3"

	"builder-generator/internal/gen"
)

// CurrentVersion is the current version of the config file format.
const CurrentVersion = 1

// DefaultFile is the config file picked up from the working directory when
// no path is given.
const DefaultFile = "builder-generator.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the builder-generator.yaml configuration file.
type Config struct {
	Version       int                   `yaml:"version"`
	OptionalType  string                `yaml:"optional_type,omitempty"`
	BuilderSuffix string                `yaml:"builder_suffix,omitempty"`
	FactoryMethod string                `yaml:"factory_method,omitempty"`
	BuildMethod   string                `yaml:"build_method,omitempty"`
	SetterPrefix  string                `yaml:"setter_prefix,omitempty"`
	Output        string                `yaml:"output,omitempty"`
	Stages        []string              `yaml:"stages,omitempty"`
	Types         map[string]TypeConfig `yaml:"types,omitempty"`
}

// TypeConfig overrides naming for one struct. Empty values inherit the
// file-level setting.
type TypeConfig struct {
	BuilderSuffix string `yaml:"builder_suffix,omitempty"`
	FactoryMethod string `yaml:"factory_method,omitempty"`
	BuildMethod   string `yaml:"build_method,omitempty"`
	SetterPrefix  string `yaml:"setter_prefix,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOptional loads path, or DefaultFile when path is empty. A missing
// DefaultFile yields Default; a missing explicit path is an error.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	if _, err := os.Stat(DefaultFile); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return Load(DefaultFile)
}

// Parse parses YAML data into a Config and applies defaults.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for missing keys.
func applyDefaults(c *Config) {
	naming := gen.DefaultNaming()

	if c.Version == 0 {
		c.Version = CurrentVersion
	}

	if c.OptionalType == "" {
		c.OptionalType = "Option"
	}

	if c.BuilderSuffix == "" {
		c.BuilderSuffix = naming.BuilderSuffix
	}

	if c.FactoryMethod == "" {
		c.FactoryMethod = naming.FactoryMethod
	}

	if c.BuildMethod == "" {
		c.BuildMethod = naming.BuildMethod
	}

	if c.Output == "" {
		c.Output = gen.DefaultOutput
	}

	if len(c.Stages) == 0 {
		for _, st := range gen.AllStages {
			c.Stages = append(c.Stages, st.String())
		}
	}
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)

	return enc.Encode(c)
}

// Validate checks the configuration for supported versions, identifiers and stages.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported config version %d", ErrInvalidConfig, c.Version)
	}

	idents := map[string]string{
		"optional_type":  c.OptionalType,
		"builder_suffix": c.BuilderSuffix,
		"factory_method": c.FactoryMethod,
		"build_method":   c.BuildMethod,
	}
	if c.SetterPrefix != "" {
		idents["setter_prefix"] = c.SetterPrefix
	}

	for name, tc := range c.Types {
		for key, v := range map[string]string{
			"builder_suffix": tc.BuilderSuffix,
			"factory_method": tc.FactoryMethod,
			"build_method":   tc.BuildMethod,
			"setter_prefix":  tc.SetterPrefix,
		} {
			if v != "" {
				idents["types."+name+"."+key] = v
			}
		}
	}

	for key, v := range idents {
		if !token.IsIdentifier(v) {
			return fmt.Errorf("%w: %s %q is not a valid Go identifier", ErrInvalidConfig, key, v)
		}
	}

	stages, err := gen.ParseStages(c.Stages)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := gen.ValidateStages(stages); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// GeneratorConfig converts the file into generator settings.
// Call Validate first.
func (c *Config) GeneratorConfig() (gen.GeneratorConfig, error) {
	stages, err := gen.ParseStages(c.Stages)
	if err != nil {
		return gen.GeneratorConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	gc := gen.GeneratorConfig{
		Naming: gen.Naming{
			BuilderSuffix: c.BuilderSuffix,
			FactoryMethod: c.FactoryMethod,
			BuildMethod:   c.BuildMethod,
			SetterPrefix:  c.SetterPrefix,
		},
		Stages: stages,
		Output: c.Output,
	}

	if len(c.Types) > 0 {
		gc.Overrides = make(map[string]gen.Naming, len(c.Types))
		for name, tc := range c.Types {
			gc.Overrides[name] = gen.Naming{
				BuilderSuffix: tc.BuilderSuffix,
				FactoryMethod: tc.FactoryMethod,
				BuildMethod:   tc.BuildMethod,
				SetterPrefix:  tc.SetterPrefix,
			}
		}
	}

	return gc, nil
}

// OptionAware reports whether the option-aware stage is enabled.
func (c *Config) OptionAware() bool {
	for _, s := range c.Stages {
		if s == gen.StageOptionAware.String() {
			return true
		}
	}

	return false
}
