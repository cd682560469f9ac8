package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelEntry is one backend model deployment from the model config file.
type ModelEntry struct {
	ModelName string            `yaml:"model_name"`
	Provider  string            `yaml:"provider"`
	Mode      string            `yaml:"mode"`
	Params    map[string]string `yaml:"params"`
}

// ModelConfig is the root of the model config file.
type ModelConfig struct {
	ModelList []ModelEntry `yaml:"model_list"`
}

// LoadModelConfig reads and parses the model endpoint list.
// An empty path yields an empty list: the proxy may run with only a CLI model.
func LoadModelConfig(path string) (ModelConfig, error) {
	if path == "" {
		return ModelConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ModelConfig{}, fmt.Errorf("read model config: %w", err)
	}

	var mc ModelConfig
	if err := yaml.Unmarshal(data, &mc); err != nil {
		return ModelConfig{}, fmt.Errorf("parse model config: %w", err)
	}

	for i, m := range mc.ModelList {
		if m.ModelName == "" {
			return ModelConfig{}, fmt.Errorf("model config: entry %d is missing model_name", i)
		}
	}

	return mc, nil
}
