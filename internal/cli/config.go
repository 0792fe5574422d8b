package cli

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no
// explicit config path is given.
const DefaultConfigFile = "espalier.yaml"

// EntityDefaults are the declared defaults applied to fields omitted at
// create time.
type EntityDefaults struct {
	Tier                    string `yaml:"tier"`
	NumFilesPerMPCContainer int    `yaml:"num_files_per_mpc_container"`
	Concurrency             int    `yaml:"mpc_compute_concurrency"`
}

// Config is the CLI configuration. Values come from the YAML config
// file first, then environment variables override.
type Config struct {
	StorePath string         `yaml:"store_path" env:"ESPALIER_STORE_PATH"`
	RedisURL  string         `yaml:"redis_url" env:"ESPALIER_REDIS_URL"`
	Debug     bool           `yaml:"debug" env:"ESPALIER_DEBUG"`
	Defaults  EntityDefaults `yaml:"defaults"`
}

// LoadConfig reads the optional YAML file at path (missing files are
// fine) and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file; environment and flags carry everything.
	default:
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
