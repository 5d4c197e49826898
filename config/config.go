package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "LMS"

	defaultLibraryName    = "City Central Library"
	defaultLibraryAddress = "123 Main St, Cityville"
	defaultLibrarianID    = "EMP001"
	defaultLibrarianName  = "John Smith"
	defaultLibrarianEmail = "john@library.com"
	defaultFinePerDay     = 1.0
	defaultLogLevel       = "info"
)

type (
	Config struct {
		Library struct {
			Name    string `mapstructure:"name"`
			Address string `mapstructure:"address"`
		} `mapstructure:"library"`

		Librarian struct {
			ID    string `mapstructure:"id"`
			Name  string `mapstructure:"name"`
			Email string `mapstructure:"email"`
		} `mapstructure:"librarian"`

		Fines struct {
			PerDay float64 `mapstructure:"per_day"`
		} `mapstructure:"fines"`

		Log struct {
			Level string `mapstructure:"level"`
			File  string `mapstructure:"file"`
		} `mapstructure:"log"`
	}
)

// NewConfig loads configuration from defaults, the optional file at path
// and LMS_* environment variables (LMS_FINES_PER_DAY, LMS_LOG_LEVEL, ...),
// later sources overriding earlier ones.
func NewConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("library.name", defaultLibraryName)
	v.SetDefault("library.address", defaultLibraryAddress)
	v.SetDefault("librarian.id", defaultLibrarianID)
	v.SetDefault("librarian.name", defaultLibrarianName)
	v.SetDefault("librarian.email", defaultLibrarianEmail)
	v.SetDefault("fines.per_day", defaultFinePerDay)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.file", "")
}

// Validate rejects settings the library cannot run with.
func (c *Config) Validate() error {
	if r := c.Fines.PerDay; math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("fines.per_day must be a finite non-negative amount, got %v", r)
	}
	if strings.TrimSpace(c.Library.Name) == "" {
		return errors.New("library.name must be set")
	}
	if strings.TrimSpace(c.Librarian.ID) == "" {
		return errors.New("librarian.id must be set")
	}
	return nil
}
