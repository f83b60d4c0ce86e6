package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultConfigName is searched for in the working directory when no
// explicit file is given, as classweave.json, classweave.yaml or classweave.yml.
const DefaultConfigName = "classweave"

const envPrefix = "CLASSWEAVE"

type Config struct {
	Extract ExtractConfig `json:"extract" mapstructure:"extract"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
}

type ExtractConfig struct {
	Extensions []string `json:"extensions" mapstructure:"extensions"` // e.g. [".java"]; empty means every supported language
	Ignore     []string `json:"ignore" mapstructure:"ignore"`         // glob patterns relative to the extraction root
	Workers    int      `json:"workers" mapstructure:"workers"`
}

type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"` // "json" or "yaml"
}

func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			Extensions: []string{},
			Ignore: []string{
				".git/**",
				"**/node_modules/**",
				"**/target/**",
				"**/build/**",
			},
			Workers: 1,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// LoadConfig reads filename, or the default config file in the working
// directory when filename is empty. Environment variables such as
// CLASSWEAVE_OUTPUT_FORMAT override file values. A missing default file is
// not an error; a missing explicit file is.
func LoadConfig(filename string) (*Config, error) {
	v := viper.New()

	if filename != "" {
		v.SetConfigFile(filename)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if filename != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("extract.extensions", defaults.Extract.Extensions)
	v.SetDefault("extract.ignore", defaults.Extract.Ignore)
	v.SetDefault("extract.workers", defaults.Extract.Workers)
	v.SetDefault("output.format", defaults.Output.Format)
}

func (c *Config) Validate() error {
	if c.Extract.Workers < 1 {
		return fmt.Errorf("extract.workers must be at least 1, got %d", c.Extract.Workers)
	}

	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported output.format %q", c.Output.Format)
	}

	return nil
}
