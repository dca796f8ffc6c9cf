package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/quote-feed/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// ConfigFiles are probed in order; the first one present is loaded.
var ConfigFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

var defaults = map[string]any{
	"http_port":        "8080",
	"app_env":          string(AppEnvProduction),
	"storage_driver":   string(StorageDriverSqlite),
	"database_path":    "./data/quotes.db",
	"storage_path":     "./data",
	"feed_title":       "Täglicher Spruch",
	"feed_description": "Jeden Tag ein neuer lustiger Spruch",
	"feed_item_title":  "Spruch vom %s",
	"seed_on_empty":    true,
}

type Config struct {
	HTTPPort        string        `koanf:"http_port" validate:"required,numeric"`
	AppEnv          AppEnv        `koanf:"app_env" validate:"enum"`
	StorageDriver   StorageDriver `koanf:"storage_driver" validate:"enum"`
	DatabasePath    string        `koanf:"database_path" validate:"required_if=StorageDriver sqlite"`
	StoragePath     string        `koanf:"storage_path" validate:"required_if=StorageDriver file"`
	FeedTitle       string        `koanf:"feed_title" validate:"required"`
	FeedDescription string        `koanf:"feed_description" validate:"required"`
	FeedItemTitle   string        `koanf:"feed_item_title" validate:"required,itemtitle"`
	SeedOnEmpty     bool          `koanf:"seed_on_empty"`
}

// Load reads the first config file found in the working directory, applies
// environment overrides and defaults, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	configFile, found := lo.Find(ConfigFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Unknown environments fall back to production
	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	driver, err := ParseStorageDriver(k.String("storage_driver"))
	if err != nil {
		return nil, oops.
			With("storage_driver", k.String("storage_driver"), "allowed", StorageDriverNames()).
			Wrap(errors.ErrUnsupportedStorage)
	}
	cfg.StorageDriver = driver

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		return oops.With("reason", err.Error()).Wrap(errors.ErrInvalidConfig)
	}
	return nil
}

// LogLevel is the stdout log level for the environment.
func (c *Config) LogLevel() slog.Level {
	switch c.AppEnv {
	case AppEnvLocal, AppEnvDevelopment:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func configValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ IsValid() bool })
		return ok && e.IsValid()
	})
	_ = v.RegisterValidation("itemtitle", func(fl validator.FieldLevel) bool {
		return validItemTitle(fl.Field().String())
	})
	return v
}

// validItemTitle accepts a format with exactly one %s for the display date
// and no other verbs; %% is allowed.
func validItemTitle(format string) bool {
	if strings.Count(format, "%s") != 1 {
		return false
	}
	rest := strings.ReplaceAll(format, "%%", "")
	rest = strings.Replace(rest, "%s", "", 1)
	return !strings.Contains(rest, "%")
}
