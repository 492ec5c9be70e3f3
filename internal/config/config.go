package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// Event sources a conversion can read markup through
const (
	SourceStream = "stream"
	SourceDOM    = "dom"
)

// Output formats for the converted tree
const (
	FormatTree = "tree"
	FormatYAML = "yaml"
)

type (
	// DocumentConfig controls how markup is read and how results are written
	DocumentConfig struct {
		// Source selects the event source: the streaming tokenizer or the
		// goquery document walk
		Source string `yaml:"source" validate:"required,oneof=stream dom"`

		// StylesheetPath names a style sheet applied after embedded <style>
		// blocks, so its rules win ties
		StylesheetPath string `yaml:"stylesheet_path,omitempty" validate:"omitempty,filepath"`

		OutputFormat string `yaml:"output_format" validate:"required,oneof=tree yaml"`
	}

	// Config holds configuration options for the conversion process
	Config struct {
		Version  int            `yaml:"version" validate:"eq=1"`
		Document DocumentConfig `yaml:"document"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// Default returns the built-in configuration. It matches the embedded
// config.yaml.
func Default() Config {
	return Config{
		Version: 1,
		Document: DocumentConfig{
			Source:       SourceStream,
			OutputFormat: FormatTree,
		},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: LevelNormal},
			FileLogger: LoggerConfig{
				Level:      LevelNone,
				Mode:       ModeOverwrite,
				MaxSize:    10,
				MaxBackups: 3,
			},
		},
	}
}

// DefaultYAML returns the embedded configuration file, comments included
func DefaultYAML() []byte {
	return bytes.Clone(defaultConfig)
}

func unmarshalConfig(data []byte, cfg *Config, validate bool) (*Config, error) {
	// unknown keys are errors, so yaml.Unmarshal is not enough
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if validate {
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkLogging)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// checkLogging requires a destination whenever the file logger is enabled
func checkLogging(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	file := cfg.Logging.FileLogger
	if file.Level != LevelNone && file.Destination == "" {
		sl.ReportError(file.Destination, "Logging.FileLogger.Destination", "Destination", "required_with_level", "")
	}
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the built-in defaults and validates the
// result. An empty path yields the defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0

	cfg, err := unmarshalConfig(defaultConfig, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Dump marshals cfg back to YAML
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
