package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

var extensions = map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
	".toml": FormatTOML,
}

var decoders = map[Format]func(data []byte, cfg *pkgconfig.Config) error{
	FormatYAML: func(data []byte, cfg *pkgconfig.Config) error {
		return yaml.Unmarshal(data, cfg)
	},
	FormatJSON: func(data []byte, cfg *pkgconfig.Config) error {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		return decoder.Decode(cfg)
	},
	FormatTOML: func(data []byte, cfg *pkgconfig.Config) error {
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	},
}

// FormatFromPath detects the configuration format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	format, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported config file format: %q (supported: .yaml, .yml, .json, .toml)", ext)
	}

	return format, nil
}

// LoadFromFile reads a configuration file whose format follows from its extension.
// ${VAR} references are expanded from the environment before decoding.
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse([]byte(os.ExpandEnv(string(data))), format)
}

// Parse decodes configuration data, applies defaults and validates the result.
func Parse(data []byte, format Format) (*pkgconfig.Config, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	var cfg pkgconfig.Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", strings.ToUpper(string(format)), err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
