package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"dsx/styles"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ExtractionConfig struct {
		Selection   string `yaml:"selection" validate:"required,oneof=all quick-format"`
		Flatten     bool   `yaml:"flatten"`
		KeyNaming   string `yaml:"key_naming" validate:"required,oneof=local qualified"`
		FontKeys    string `yaml:"font_keys" validate:"required,oneof=lift namespaced"`
		StylesPart  string `yaml:"styles_part" validate:"required"`
		MaxPartSize uint64 `yaml:"max_part_size" validate:"gt=0"`
	}

	OutputConfig struct {
		Format     string `yaml:"format" validate:"required,oneof=text json template"`
		Template   string `yaml:"template" validate:"required_if=Format template"`
		JSONIndent string `yaml:"json_indent"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Extraction ExtractionConfig `yaml:"extraction"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	OutputTemplateFieldName TemplateFieldName = "template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputTemplateFieldName)),
)

// Options converts extraction section to the form extractor expects.
func (conf *ExtractionConfig) Options() styles.Options {
	return styles.Options{
		Selection:   styles.Selection(conf.Selection),
		Flatten:     conf.Flatten,
		KeyNaming:   styles.KeyNaming(conf.KeyNaming),
		FontKeys:    styles.FontKeys(conf.FontKeys),
		StylesPart:  conf.StylesPart,
		MaxPartSize: conf.MaxPartSize,
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
