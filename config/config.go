package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v8"
	"gopkg.in/yaml.v3"
)

// ---------------------------

const DISTMAT_CONFIG = "DISTMAT_CONFIG"

type ConfigMap struct {
	// Global debug flag
	Debug bool `yaml:"debug"`
	// Pretty log output
	PrettyLogOutput bool `yaml:"prettyLogOutput"`
	// HTTP parameters
	HttpHost string `yaml:"httpHost"`
	HttpPort int    `yaml:"httpPort"`
	// Directory for the dataset store
	RootDir string `yaml:"rootDir"`
	// Path of the matrix cache file, empty for an in-memory cache
	CachePath string `yaml:"cachePath"`
	// Pairwise method used when a request does not specify one
	DefaultMethod string `yaml:"defaultMethod"`
	// Worker count for the rows method, zero means one per CPU
	NumWorkers int `yaml:"numWorkers"`
}

func defaultConfig() ConfigMap {
	return ConfigMap{
		HttpHost:      "localhost",
		HttpPort:      8081,
		RootDir:       "dump",
		DefaultMethod: "gram",
	}
}

// LoadConfig reads the yaml file pointed to by DISTMAT_CONFIG if set, then
// applies environment variable overrides with the DISTMAT_ prefix.
func LoadConfig() (ConfigMap, error) {
	configMap := defaultConfig()
	// Load the file path from the environment variable
	if cFilePath, ok := os.LookupEnv(DISTMAT_CONFIG); ok {
		cFile, err := os.Open(cFilePath)
		if err != nil {
			return configMap, fmt.Errorf("failed to open config file %s: %w", cFilePath, err)
		}
		defer cFile.Close()
		decoder := yaml.NewDecoder(cFile)
		if err := decoder.Decode(&configMap); err != nil {
			return configMap, fmt.Errorf("failed to parse config file %s: %w", cFilePath, err)
		}
	}
	// Then parse environment variables
	opts := env.Options{Prefix: "DISTMAT_", UseFieldNameByDefault: true}
	if err := env.ParseWithOptions(&configMap, opts); err != nil {
		return configMap, fmt.Errorf("failed to parse env: %w", err)
	}
	return configMap, nil
}
