package projectconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const DefaultPath = ".vconkit/config.yaml"

type Config struct {
	Output   OutputDefaults   `yaml:"output"`
	Validate ValidateDefaults `yaml:"validate"`
	Hash     HashDefaults     `yaml:"hash"`
}

type OutputDefaults struct {
	// Dir is where commands write documents when no explicit -out is given.
	Dir    string `yaml:"dir"`
	Pretty bool   `yaml:"pretty"`
}

type ValidateDefaults struct {
	// Strict rejects format-version literals the library does not know.
	Strict bool `yaml:"strict"`
	// SchemaCheck runs the JSON Schema pre-check before model decode.
	SchemaCheck bool `yaml:"schema_check"`
}

type HashDefaults struct {
	Algorithm string `yaml:"algorithm"`
}

func Load(path string, allowMissing bool) (Config, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return Config{}, fmt.Errorf("project config path is required")
	}

	// #nosec G304 -- project config path is explicit local user input.
	content, err := os.ReadFile(trimmedPath)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read project config: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return Config{}, nil
	}

	var configuration Config
	if err := yaml.Unmarshal(content, &configuration); err != nil {
		return Config{}, fmt.Errorf("parse project config: %w", err)
	}
	configuration.normalize()
	return configuration, nil
}

func (configuration *Config) normalize() {
	configuration.Output.Dir = strings.TrimSpace(configuration.Output.Dir)
	configuration.Hash.Algorithm = strings.ToLower(strings.TrimSpace(configuration.Hash.Algorithm))
}
