package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from involve.yml.
type ProjectConfig struct {
	Root        string   `yaml:"root,omitempty"`
	Languages   []string `yaml:"languages,omitempty"`
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`
	SourceRoots []string `yaml:"sourceRoots,omitempty"`
	Verbose     bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read involve.yml or involve.yaml from the given
// directory. Returns a zero-value config (not an error) if no config
// file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"involve.yml", "involve.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
