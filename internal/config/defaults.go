package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the embedded default configuration. Panics
// only if the embedded YAML is broken, which a test catches at build time.
func DefaultMemoryConfig() MemoryConfig {
	var cfg MemoryConfig
	if err := yaml.Unmarshal(defaultMemoryYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}
